// Package keytracker reports keys that went down since the previous poll.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker remembers the previous state of every key it has been asked about.
type KeyStateTracker struct {
	prevPressed map[ebiten.Key]bool
	isPressed   func(ebiten.Key) bool
}

// New creates a tracker reading the live keyboard
func New() *KeyStateTracker {
	return NewWithSource(ebiten.IsKeyPressed)
}

// NewWithSource creates a tracker reading key state from isPressed
func NewWithSource(isPressed func(ebiten.Key) bool) *KeyStateTracker {
	return &KeyStateTracker{
		prevPressed: make(map[ebiten.Key]bool),
		isPressed:   isPressed,
	}
}

// IsKeyJustPressed returns true if the key was not pressed last poll but is pressed now.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	pressed := k.isPressed(key)
	justPressed := pressed && !k.prevPressed[key]
	k.prevPressed[key] = pressed
	return justPressed
}
