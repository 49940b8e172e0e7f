package graphics

import (
	"embed"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	ErrTypeShaderSource  = "graphics_shader_source"
	ErrTypeShaderCompile = "graphics_shader_compile"
	ErrTypeShaderLink    = "graphics_shader_link"
)

//go:embed shaders
var shaderFS embed.FS

// ShaderSource returns the GLSL source of the named vertex and fragment
// shaders bundled with the binary.
func ShaderSource(name string) (vertex, fragment string, err error) {
	v, err := shaderFS.ReadFile("shaders/" + name + ".vert")
	if err != nil {
		return "", "", errors.New("reading vertex shader failed").
			WithType(ErrTypeShaderSource).
			WithTag("shader", name).
			Wrap(err)
	}
	f, err := shaderFS.ReadFile("shaders/" + name + ".frag")
	if err != nil {
		return "", "", errors.New("reading fragment shader failed").
			WithType(ErrTypeShaderSource).
			WithTag("shader", name).
			Wrap(err)
	}
	return string(v), string(f), nil
}

// Shader represents an OpenGL shader program
type Shader struct {
	ID uint32
}

// LoadShader compiles the bundled shader pair called name.
func LoadShader(name string) (*Shader, error) {
	v, f, err := ShaderSource(name)
	if err != nil {
		return nil, err
	}
	s, err := NewShader(v, f)
	if err != nil {
		return nil, errors.New("building shader failed").
			WithTag("shader", name).
			Wrap(err)
	}
	return s, nil
}

// NewShader creates a new shader program from vertex and fragment sources.
func NewShader(vertexSrc, fragmentSrc string) (*Shader, error) {
	program, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Shader{ID: program}, nil
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete releases the program.
func (s *Shader) Delete() {
	if s != nil && s.ID != 0 {
		gl.DeleteProgram(s.ID)
		s.ID = 0
	}
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

// SetFloat sets a float uniform
func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.location(name), value)
}

// SetVector3 sets a vector3 uniform
func (s *Shader) SetVector3(name string, x, y, z float32) {
	gl.Uniform3f(s.location(name), x, y, z)
}

// SetMatrix4 sets a 4x4 matrix uniform
func (s *Shader) SetMatrix4(name string, value *float32) {
	gl.UniformMatrix4fv(s.location(name), 1, false, value)
}

func (s *Shader) location(name string) int32 {
	return gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, errors.New("linking program failed").
			WithType(ErrTypeShaderLink).
			WithTag("log", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
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
		gl.DeleteShader(shader)

		return 0, errors.New("compiling shader failed").
			WithType(ErrTypeShaderCompile).
			WithTag("log", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
