// Package commands implements the pymsdl build-lifecycle commands.
// Each command is a cobra front end over an Action, the three-phase
// lifecycle the packaging front end drives: initialize defaults,
// finalize (validate) parameters, then execute.
package commands

import (
	"context"
	"errors"
)

// ErrUsage marks a command invoked with missing or invalid parameters.
// The command never executes in that case.
var ErrUsage = errors.New("usage error")

// Action is one build-lifecycle command instance. A fresh instance is
// constructed per invocation; instances share no state.
type Action interface {
	// Initialize establishes option defaults.
	Initialize()
	// Finalize validates options after they have been set. A returned
	// error prevents execution.
	Finalize() error
	// Execute performs the command.
	Execute(ctx context.Context) error
}

// runAction drives an Action through its lifecycle.
func runAction(ctx context.Context, a Action) error {
	a.Initialize()
	if err := a.Finalize(); err != nil {
		return err
	}
	return a.Execute(ctx)
}
