package compute

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/avelev/wormview/internal/geom"
)

// OpenGLBackend runs the particle kernel as a compute shader. It needs
// a live GL context, so the GUI creates and installs it after opening
// its window; everything else keeps using the CPU backend.
//
// Buffer layout: binding 0 holds per-particle constants (rest.xyz pad,
// freq.xyz pad), binding 1 receives positions (xyz pad). The pad keeps
// std430 vec4 alignment.
type OpenGLBackend struct {
	Program      uint32
	SSBOConst    uint32
	SSBOOut      uint32
	NumParticles int32
	Initialized  bool

	readback []float32
}

func NewOpenGLBackend(numParticles int) *OpenGLBackend {
	return &OpenGLBackend{NumParticles: int32(numParticles)}
}

func (c *OpenGLBackend) Name() string    { return "opengl" }
func (c *OpenGLBackend) Available() bool { return c.Initialized }

// Init compiles the compute shader and uploads the immutable particle
// constants. Must be called with a current GL context.
func (c *OpenGLBackend) Init(shaderPath string, rest, freq []geom.Vec3) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to init opengl: %v", err)
	}

	program, err := createComputeProgram(shaderPath)
	if err != nil {
		return err
	}
	c.Program = program

	n := int(c.NumParticles)
	consts := make([]float32, n*8)
	for i := 0; i < n && i < len(rest); i++ {
		consts[i*8+0] = float32(rest[i].X)
		consts[i*8+1] = float32(rest[i].Y)
		consts[i*8+2] = float32(rest[i].Z)
		consts[i*8+4] = float32(freq[i].X)
		consts[i*8+5] = float32(freq[i].Y)
		consts[i*8+6] = float32(freq[i].Z)
	}

	gl.GenBuffers(1, &c.SSBOConst)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOConst)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, n*8*4, gl.Ptr(consts), gl.STATIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, c.SSBOConst)

	gl.GenBuffers(1, &c.SSBOOut)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOOut)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, n*4*4, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, c.SSBOOut)

	c.readback = make([]float32, n*4)
	c.Initialized = true
	return nil
}

// Step dispatches the kernel for one frame.
func (c *OpenGLBackend) Step(t, amplitude float64) {
	if !c.Initialized {
		return
	}

	gl.UseProgram(c.Program)

	locT := gl.GetUniformLocation(c.Program, gl.Str("elapsed\x00"))
	gl.Uniform1f(locT, float32(t))

	locA := gl.GetUniformLocation(c.Program, gl.Str("amplitude\x00"))
	gl.Uniform1f(locA, float32(amplitude))

	locN := gl.GetUniformLocation(c.Program, gl.Str("numParticles\x00"))
	gl.Uniform1i(locN, c.NumParticles)

	numGroups := (c.NumParticles + 255) / 256
	gl.DispatchCompute(uint32(numGroups), 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)
}

// Offsets implements Backend by dispatching the kernel and reading the
// positions back for the caller. The GUI's draw path skips the readback
// and samples the SSBO directly.
func (c *OpenGLBackend) Offsets(dst, rest, freq []geom.Vec3, t, amplitude float64) {
	if !c.Initialized {
		NewCPUBackend().Offsets(dst, rest, freq, t, amplitude)
		return
	}
	c.Step(t, amplitude)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOOut)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(c.readback)*4, gl.Ptr(c.readback))
	n := len(dst)
	if m := int(c.NumParticles); m < n {
		n = m
	}
	for i := 0; i < n; i++ {
		dst[i] = geom.Vec3{
			X: float64(c.readback[i*4+0]),
			Y: float64(c.readback[i*4+1]),
			Z: float64(c.readback[i*4+2]),
		}
	}
}

func (c *OpenGLBackend) Cleanup() {
	if !c.Initialized {
		return
	}
	gl.DeleteBuffers(1, &c.SSBOConst)
	gl.DeleteBuffers(1, &c.SSBOOut)
	gl.DeleteProgram(c.Program)
	c.Initialized = false
}

func createComputeProgram(path string) (uint32, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content := string(source) + "\x00"

	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(content)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("failed to link compute program")
	}

	gl.DeleteShader(shader)
	return program, nil
}
