// Package viz is the terminal frontend: a Braille sub-pixel canvas, a
// look-at projector for the scene, and a bubbletea program that drives
// the engine at 60fps and draws the HUD with lipgloss.
package viz
