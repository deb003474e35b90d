package instagramimpl

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMediaIDFromShortcode(t *testing.T) {
	cases := []struct {
		shortcode string
		want      int64
	}{
		{"B", 1},
		{"BA", 64},
		{"CdE", 2*64*64 + 29*64 + 4},
		{"-_", 62*64 + 63},
	}
	for _, tc := range cases {
		got, err := MediaIDFromShortcode(tc.shortcode)
		require.NoError(t, err, tc.shortcode)
		require.Equal(t, tc.want, got, tc.shortcode)
	}
}

func TestShortcodeRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 63, 64, 4096, 2878233573136676178, math.MaxInt64} {
		shortcode := ShortcodeFromMediaID(id)
		require.NotEmpty(t, shortcode)

		back, err := MediaIDFromShortcode(shortcode)
		require.NoError(t, err)
		require.Equal(t, id, back)
	}
}

func TestMediaIDFromShortcodeRejectsInvalid(t *testing.T) {
	for _, shortcode := range []string{"", "abc!", "äbc", "a b"} {
		_, err := MediaIDFromShortcode(shortcode)
		require.Error(t, err, shortcode)
	}
}

func TestMediaIDFromShortcodeRejectsOverflow(t *testing.T) {
	_, err := MediaIDFromShortcode(strings.Repeat("_", 11))
	require.Error(t, err)
}
