package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.txt", "report.txt"},
		{"my file!.txt", "my_file_.txt"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"/var/log/mail.docx", "mail.docx"},
		{".hidden", "hidden"},
		{"..", ""},
		{"", ""},
		{"///", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "abc", TruncateRunes("abc", 5))
	require.Equal(t, "abc", TruncateRunes("abcde", 3))
	require.Equal(t, "", TruncateRunes("abc", 0))

	// Multi-byte characters count as one rune, never get split
	require.Equal(t, "héllo", TruncateRunes("héllo wörld", 5))

	long := strings.Repeat("x", 5000)
	require.Len(t, TruncateRunes(long, 2000), 2000)
}

func TestRandStr(t *testing.T) {
	s := RandStr(10)
	require.Len(t, s, 10)
	require.NotEqual(t, s, RandStr(10))
}
