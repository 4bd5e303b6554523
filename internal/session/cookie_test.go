package session

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec("test-secret")

	value := codec.Encode("sess-123")
	assert.True(t, strings.HasPrefix(value, "sess-123."))

	id, err := codec.Decode(value)
	assert.NoError(t, err)
	assert.Equal(t, "sess-123", id)
}

func TestCookieCodecRejectsTampering(t *testing.T) {
	codec := NewCookieCodec("test-secret")
	value := codec.Encode("sess-123")

	tests := []struct {
		name  string
		value string
	}{
		{"swapped session id", "sess-456." + strings.SplitN(value, ".", 2)[1]},
		{"mangled signature", "sess-123.AAAA"},
		{"no separator", "sess-123"},
		{"empty value", ""},
		{"signature only", "." + strings.SplitN(value, ".", 2)[1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.value)
			assert.Error(t, err)
		})
	}
}

func TestCookieCodecRejectsForeignSecret(t *testing.T) {
	value := NewCookieCodec("secret-a").Encode("sess-123")
	_, err := NewCookieCodec("secret-b").Decode(value)
	assert.Error(t, err)
}

func TestNewCookieAttributes(t *testing.T) {
	c := NewCookie("abc", true)
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int(TTL.Seconds()), c.MaxAge)

	dev := NewCookie("abc", false)
	assert.False(t, dev.Secure)
}

func TestExpiredCookieClearsSession(t *testing.T) {
	c := ExpiredCookie(false)
	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}
