package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// SessionClaims is what a valid session cookie carries
type SessionClaims struct {
	UserID   string
	Username string
}

// MakeSessionToken signs a session token for a freshly logged in user.
// Lifetime comes from session.max_age
func MakeSessionToken(userID, username string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Duration(viper.GetInt("session.max_age")) * time.Second).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("session.secret")))
}

// ParseSessionToken validates the signature and expiry of a session token
// and pulls out its claims
func ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("session.secret")), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("token invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("token invalid")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token missing user_id")
	}

	username, _ := claims["username"].(string)

	expRaw, ok := claims["exp"]
	if !ok {
		return nil, errors.New("token missing exp")
	}

	exp, ok := expRaw.(float64)
	if !ok {
		return nil, errors.New("token invalid")
	}

	if time.Now().Unix() >= int64(exp) {
		return nil, errors.New("token expired")
	}

	return &SessionClaims{UserID: userID, Username: username}, nil
}
