// Package button implements the toggle used by call panels and direction indicators.
package button

import (
	"fmt"

	"liftsim/src/event"
)

// State is the read-only view of a button that panels hand out.
type State interface {
	Description() string
	IsActive() bool
	IsEnabled() bool
	CanExecute() bool
	Execute() bool
	String() string
}

type ActivityButton struct {
	description string
	active      bool
	enabled     bool
	action      func()
	changed     event.Signal
}

func New(description string, active, enabled bool, action func()) *ActivityButton {
	return &ActivityButton{
		description: description,
		active:      active,
		enabled:     enabled,
		action:      action,
	}
}

func (b *ActivityButton) Description() string {
	return b.description
}

func (b *ActivityButton) IsActive() bool {
	return b.active
}

func (b *ActivityButton) IsEnabled() bool {
	return b.enabled
}

func (b *ActivityButton) CanExecute() bool {
	return !b.active && b.enabled && b.action != nil
}

// OnChanged fires when the button is activated or deactivated.
func (b *ActivityButton) OnChanged(fn func()) event.Unsubscribe {
	return b.changed.Subscribe(fn)
}

func (b *ActivityButton) Activate() {
	if b.active {
		return
	}
	b.active = true
	b.changed.Emit()
}

func (b *ActivityButton) Deactivate() {
	if !b.active {
		return
	}
	b.active = false
	b.changed.Emit()
}

// Execute activates the button and runs its action once. It returns false,
// doing nothing, while the button is active, disabled or has no action.
func (b *ActivityButton) Execute() bool {
	if !b.CanExecute() {
		return false
	}
	b.Activate()
	b.action()
	return true
}

func (b *ActivityButton) String() string {
	desc := b.description
	if desc == "" {
		desc = "Unknown"
	}
	return fmt.Sprintf("'%s' activity set to %t", desc, b.active)
}
