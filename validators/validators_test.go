package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsernameValidator(t *testing.T) {
	require.NoError(t, UsernameValidator("alice"))
	require.ErrorIs(t, UsernameValidator(""), ErrUsernameEmpty)
	require.ErrorIs(t, UsernameValidator("   "), ErrUsernameEmpty)
	require.ErrorIs(t, UsernameValidator(strings.Repeat("a", 65)), ErrUsernameTooLong)
}

func TestPasswordValidator(t *testing.T) {
	require.NoError(t, PasswordValidator("pw"))
	require.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	require.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}
