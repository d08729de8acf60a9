package smtp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validates(t *testing.T) {
	_, err := New(Config{From: "no-reply@fintrack.local"})
	assert.Error(t, err)
	_, err = New(Config{Host: "localhost"})
	assert.Error(t, err)

	s, err := New(Config{Host: "localhost", From: "no-reply@fintrack.local"})
	require.NoError(t, err)
	assert.Equal(t, 587, s.cfg.Port)
}

func TestSender_Message(t *testing.T) {
	s, err := New(Config{Host: "localhost", Port: 2525, From: "no-reply@fintrack.local"})
	require.NoError(t, err)

	m, err := s.message("a@x.com", "Password reset code", "<p>123456</p>")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Subject: Password reset code")
	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "text/html")

	_, err = s.message("not an address", "s", "b")
	assert.Error(t, err)
}
