package compute

import (
	"math"
	"runtime"
	"sync"

	"github.com/avelev/wormview/internal/geom"
)

func sin(x float64) float64 { return math.Sin(x) }
func cos(x float64) float64 { return math.Cos(x) }

// parallelThreshold is the particle count above which the kernel is
// split across workers; below it goroutine overhead dominates.
const parallelThreshold = 4096

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{workers: runtime.NumCPU()}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) Offsets(dst, rest, freq []geom.Vec3, t, amplitude float64) {
	n := len(rest)
	if len(dst) < n || len(freq) < n {
		return
	}
	if n < parallelThreshold || c.workers < 2 {
		for i := 0; i < n; i++ {
			dst[i] = Oscillate(rest[i], freq[i], t, amplitude, i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + c.workers - 1) / c.workers
	for w := 0; w < c.workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				dst[i] = Oscillate(rest[i], freq[i], t, amplitude, i)
			}
		}(start, end)
	}
	wg.Wait()
}
