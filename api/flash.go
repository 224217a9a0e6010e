package api

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// flash is a one-shot notice carried over a redirect in a short-lived
// cookie, read and cleared by the next rendered page
type flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func setFlash(c *gin.Context, category, message string) {
	b, err := json.Marshal(flash{Category: category, Message: message})
	if err != nil {
		return
	}

	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(b), 60, "/", "", false, false)
}

func popFlash(c *gin.Context) *flash {
	v, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	c.SetCookie(flashCookie, "", -1, "/", "", false, false)

	b, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil
	}

	var f flash
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}

	return &f
}

// render wraps c.HTML so every page sees the pending flash notice and the
// logged in username when there is one
func (a *API) render(c *gin.Context, code int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if f := popFlash(c); f != nil {
		data["Flash"] = f
	}

	if v := c.GetString("username"); v != "" {
		data["Username"] = v
	}

	c.HTML(code, tmpl, data)
}
