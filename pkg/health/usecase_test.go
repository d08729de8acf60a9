package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func TestReady_AllUp(t *testing.T) {
	svc := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis"})

	report, err := svc.Ready(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{"postgres": "", "redis": ""}, report)
}

func TestReady_RunsEveryChecker(t *testing.T) {
	down := errors.New("connection refused")
	svc := NewService(stubChecker{name: "postgres", err: down}, stubChecker{name: "redis"})

	report, err := svc.Ready(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "postgres")
	assert.Equal(t, "connection refused", report["postgres"])
	assert.Equal(t, "", report["redis"])
}

func TestReady_NoCheckers(t *testing.T) {
	report, err := NewService().Ready(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report)
}
