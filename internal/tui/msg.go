package tui

import "github.com/runoshun/taskman/internal/controller"

// Msg is the interface for all TUI messages.
// This is a sealed interface - only types in this package implement it.
type Msg interface {
	sealed()
}

// MsgDispatched is sent after intents have been applied to the controller.
// Err is the first failure; the controller has already turned it into a notice.
type MsgDispatched struct {
	Err     error
	Intents []controller.Intent
}

func (MsgDispatched) sealed() {}
