package ui

import (
	tea "charm.land/bubbletea/v2"
)

// Test helpers for creating v2 KeyPressMsg values

// newKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func newKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// newTextKeyPressMsg creates a KeyPressMsg for text input
func newTextKeyPressMsg(text string) tea.KeyPressMsg {
	if len(text) == 0 {
		return tea.KeyPressMsg(tea.Key{})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{
		Code: r,
		Text: text,
	})
}

// Common special keys using the new API
var (
	testKeyUp     = newKeyPressMsg(tea.KeyUp)
	testKeyDown   = newKeyPressMsg(tea.KeyDown)
	testKeyEnter  = newKeyPressMsg(tea.KeyEnter)
	testKeyEsc    = newKeyPressMsg(tea.KeyEscape)
	testKeySpace  = newKeyPressMsg(tea.KeySpace)
	testKeyHome   = newKeyPressMsg(tea.KeyHome)
	testKeyEnd    = newKeyPressMsg(tea.KeyEnd)
	testKeyPgUp   = newKeyPressMsg(tea.KeyPgUp)
	testKeyPgDown = newKeyPressMsg(tea.KeyPgDown)
)

// Ctrl+X keys using modifier
func newCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

var testKeyCtrlC = newCtrlKeyPressMsg('c')
