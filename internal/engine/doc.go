// Package engine owns the frame loop: it drains queued UI intents,
// advances the simulation clock, hands the camera to whichever
// controller owns it this frame, steps every scene element in a fixed
// order, and pushes the result at the attached display surface.
//
// Display frontends (terminal, GUI) never mutate the scene directly;
// they enqueue commands and implement the Surface, UISink and
// EffectSink interfaces the scheduler notifies.
package engine
