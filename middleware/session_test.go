package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mailsift/spam-api/model"
	"mailsift/spam-api/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSessionTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("session.secret", "test-secret")
	viper.Set("session.max_age", 3600)

	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, d.AutoMigrate(&model.User{}))

	router := gin.New()
	router.GET("/dashboard", NewSessionMiddleware(d), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("username"))
	})

	return router, d
}

func TestSessionMiddlewareNoCookie(t *testing.T) {
	router, _ := setupSessionTest(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login?next=%2Fdashboard", w.Header().Get("Location"))
}

func TestSessionMiddlewareInvalidToken(t *testing.T) {
	router, _ := setupSessionTest(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Contains(t, w.Header().Get("Location"), "/login?next=")
}

func TestSessionMiddlewareValidToken(t *testing.T) {
	router, d := setupSessionTest(t)

	require.NoError(t, d.Create(&model.User{ID: "u1", Username: "alice", PasswordHash: "x"}).Error)

	token, err := security.MakeSessionToken("u1", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "alice", w.Body.String())
}

func TestSessionMiddlewareDeletedUser(t *testing.T) {
	router, _ := setupSessionTest(t)

	// Valid signature but the user row never existed
	token, err := security.MakeSessionToken("ghost", "ghost")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Contains(t, w.Header().Get("Location"), "/login?next=")
}
