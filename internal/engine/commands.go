package engine

import (
	"sync"

	"github.com/avelev/wormview/internal/mesh"
)

// Command is a UI intent applied at the top of the next tick. Input
// handlers run on their own goroutines (terminal event loop, GUI
// callbacks) and never touch the scene; they enqueue and the scheduler
// applies, so every mutation happens at a defined point in the frame.
type Command interface{ isCommand() }

// ToggleJourney starts the guided flight, or cancels it if one is in
// progress.
type ToggleJourney struct{}

// SetDistortion rebuilds the wormhole pinch from an absolute factor in
// [0,1].
type SetDistortion struct{ Factor float64 }

// SetKind switches the wormhole topology.
type SetKind struct{ Kind mesh.Kind }

// PointerMoved carries a pointer position normalized to [-1,1] per
// axis. It engages free-look when the journey is not flying.
type PointerMoved struct{ X, Y float64 }

// Resize requests a surface resize. Applied after a quiet period, so a
// drag-resize burst costs one reallocation instead of hundreds.
type Resize struct{ Width, Height int }

func (ToggleJourney) isCommand() {}
func (SetDistortion) isCommand() {}
func (SetKind) isCommand()       {}
func (PointerMoved) isCommand()  {}
func (Resize) isCommand()        {}

type commandQueue struct {
	mu   sync.Mutex
	cmds []Command
}

func (q *commandQueue) push(c Command) {
	q.mu.Lock()
	q.cmds = append(q.cmds, c)
	q.mu.Unlock()
}

// drain returns the queued commands in arrival order and empties the
// queue.
func (q *commandQueue) drain(buf []Command) []Command {
	q.mu.Lock()
	buf = append(buf[:0], q.cmds...)
	q.cmds = q.cmds[:0]
	q.mu.Unlock()
	return buf
}
