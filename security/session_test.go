package security

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	viper.Set("session.secret", "test-secret")
	viper.Set("session.max_age", 3600)

	token, err := MakeSessionToken("user123", "alice")
	require.NoError(t, err)

	claims, err := ParseSessionToken(token)
	require.NoError(t, err)
	require.Equal(t, "user123", claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestSessionTokenExpired(t *testing.T) {
	viper.Set("session.secret", "test-secret")
	viper.Set("session.max_age", -60)

	token, err := MakeSessionToken("user123", "alice")
	require.NoError(t, err)

	_, err = ParseSessionToken(token)
	require.Error(t, err)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	viper.Set("session.secret", "first-secret")
	viper.Set("session.max_age", 3600)

	token, err := MakeSessionToken("user123", "alice")
	require.NoError(t, err)

	viper.Set("session.secret", "other-secret")

	_, err = ParseSessionToken(token)
	require.Error(t, err)
}

func TestSessionTokenGarbage(t *testing.T) {
	viper.Set("session.secret", "test-secret")

	_, err := ParseSessionToken("definitely.not.a-token")
	require.Error(t, err)
}
