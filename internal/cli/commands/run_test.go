package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAction_RequiresModule(t *testing.T) {
	executed := false
	action := &RunAction{
		ProjectDir:  t.TempDir(),
		Interpreter: "python3",
		exec: func(_ context.Context, _ string, _ ...string) error {
			executed = true
			return nil
		},
	}

	err := runAction(context.Background(), action)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "module")
	assert.False(t, executed, "the command must fail before any execution side effect")
}

func TestRunAction_ExecutesModule(t *testing.T) {
	var gotName string
	var gotArgs []string
	action := &RunAction{
		ProjectDir:  t.TempDir(),
		Interpreter: "python3",
		Module:      "mypkg.cli",
		exec: func(_ context.Context, name string, args ...string) error {
			gotName = name
			gotArgs = args
			return nil
		},
	}

	require.NoError(t, runAction(context.Background(), action))
	assert.Equal(t, "python3", gotName)
	assert.Equal(t, []string{"-m", "mypkg.cli"}, gotArgs)
}

func TestRunAction_WrapsExecutionFailure(t *testing.T) {
	cause := errors.New("exit status 3")
	action := &RunAction{
		ProjectDir:  t.TempDir(),
		Interpreter: "python3",
		Module:      "mypkg.cli",
		exec: func(_ context.Context, _ string, _ ...string) error {
			return cause
		},
	}

	err := runAction(context.Background(), action)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause, "the original failure is preserved")
	assert.Contains(t, err.Error(), "mypkg.cli")
}
