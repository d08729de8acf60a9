package logmail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/fintrack/pkg/logging"
)

func TestSender_LogsMessage(t *testing.T) {
	var buf bytes.Buffer
	s := New(logging.New(&buf, "info", "text"))

	require.NoError(t, s.Send(context.Background(), "a@x.com", "Password reset code", "123456"))

	out := buf.String()
	assert.Contains(t, out, "to=a@x.com")
	assert.Contains(t, out, "123456")
}
