// Package keys provides string constants for Bubble Tea v2 key press events.
//
// These constants are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String()
// and are guaranteed to match the actual runtime values. Using these constants
// instead of hardcoded strings prevents typo bugs (e.g., "escape" vs "esc").
//
// Single-character keys like "c", "q" are not included here because they
// are unambiguous and cannot be misspelled in a meaningful way.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}.String()   // "down"
	Home   = tea.KeyPressMsg{Code: tea.KeyHome}.String()   // "home"
	End    = tea.KeyPressMsg{Code: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter      = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                      // "enter"
	ShiftEnter = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}).String() // "shift+enter"
	AltEnter   = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModAlt}).String()   // "alt+enter"
	Tab        = tea.KeyPressMsg{Code: tea.KeyTab}.String()                        // "tab"
	ShiftTab   = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String()   // "shift+tab"
	Escape     = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                     // "esc"
)

// Ctrl combinations
var (
	CtrlC = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String() // "ctrl+c"
	CtrlL = (tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}).String() // "ctrl+l"
	CtrlO = (tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}).String() // "ctrl+o"
	CtrlT = (tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}).String() // "ctrl+t"
	CtrlU = (tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}).String() // "ctrl+u"
	CtrlX = (tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl}).String() // "ctrl+x"
	CtrlY = (tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}).String() // "ctrl+y"
	CtrlS = (tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}).String() // "ctrl+s"
)

// Function keys
var (
	F1 = tea.KeyPressMsg{Code: tea.KeyF1}.String() // "f1"
)
