package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Shader is an OpenGL shader program.
type Shader struct {
	program    binder
	uniformFmt AttrFormat
	uniformLoc []int32
}

// NewShader compiles and links a shader program from the vertex and fragment
// sources. uniformFmt lists the uniforms later set through SetUniformAttr.
func NewShader(uniformFmt AttrFormat, vertexShader, fragmentShader string) (*Shader, error) {
	shader := &Shader{
		program: binder{
			restoreLoc: gl.CURRENT_PROGRAM,
			bindFunc: func(obj uint32) {
				gl.UseProgram(obj)
			},
		},
		uniformFmt: uniformFmt,
		uniformLoc: make([]int32, len(uniformFmt)),
	}

	vshader, err := compileShader(gl.VERTEX_SHADER, vertexShader)
	if err != nil {
		return nil, errors.Wrap(err, "error compiling vertex shader")
	}
	defer gl.DeleteShader(vshader)

	fshader, err := compileShader(gl.FRAGMENT_SHADER, fragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "error compiling fragment shader")
	}
	defer gl.DeleteShader(fshader)

	shader.program.obj = gl.CreateProgram()
	gl.AttachShader(shader.program.obj, vshader)
	gl.AttachShader(shader.program.obj, fshader)
	gl.LinkProgram(shader.program.obj)

	var success int32
	gl.GetProgramiv(shader.program.obj, gl.LINK_STATUS, &success)
	if success == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(shader.program.obj, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := make([]byte, logLen+1)
		gl.GetProgramInfoLog(shader.program.obj, logLen, nil, &infoLog[0])
		gl.DeleteProgram(shader.program.obj)
		return nil, errors.Errorf("error linking shader program: %s", gl.GoStr(&infoLog[0]))
	}

	for i, uniform := range uniformFmt {
		shader.uniformLoc[i] = gl.GetUniformLocation(shader.program.obj, gl.Str(uniform.Name+"\x00"))
	}

	runtime.SetFinalizer(shader, (*Shader).finalize)
	return shader, nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	src, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, src, nil)
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &infoLog[0])
		gl.DeleteShader(shader)
		return 0, errors.New(gl.GoStr(&infoLog[0]))
	}
	return shader, nil
}

func (s *Shader) finalize() {
	obj := s.program.obj
	mainthread.CallNonBlock(func() {
		gl.DeleteProgram(obj)
	})
}

// Delete releases the program right away. Must be called on the GL thread.
func (s *Shader) Delete() {
	if s.program.obj == 0 {
		return
	}
	runtime.SetFinalizer(s, nil)
	gl.DeleteProgram(s.program.obj)
	s.program.obj = 0
}

// ID returns the OpenGL ID of this Shader.
func (s *Shader) ID() uint32 {
	return s.program.obj
}

// SetUniformAttr sets the value of a uniform attribute of this Shader. The attribute is
// specified by the index in the Shader's uniform format.
//
// If the uniform attribute does not exist in the Shader, this method returns false.
//
// Supplied value must correspond to the type of the attribute. Correct types are these
// (right-hand is the type of the value):
//
//	Attr{Type: Int}:   int32
//	Attr{Type: Float}: float32
//	Attr{Type: Vec2}:  mgl32.Vec2
//	Attr{Type: Vec3}:  mgl32.Vec3
//	Attr{Type: Vec4}:  mgl32.Vec4
//	Attr{Type: Mat4}:  mgl32.Mat4
//
// No other types are supported.
//
// The Shader must be bound before calling this method.
func (s *Shader) SetUniformAttr(uniform int, value interface{}) bool {
	if uniform < 0 || uniform >= len(s.uniformLoc) || s.uniformLoc[uniform] < 0 {
		return false
	}
	loc := s.uniformLoc[uniform]

	switch s.uniformFmt[uniform].Type {
	case Int:
		gl.Uniform1i(loc, value.(int32))
	case UInt:
		gl.Uniform1ui(loc, value.(uint32))
	case Float:
		gl.Uniform1f(loc, value.(float32))
	case Vec2:
		v := value.(mgl32.Vec2)
		gl.Uniform2fv(loc, 1, &v[0])
	case Vec3:
		v := value.(mgl32.Vec3)
		gl.Uniform3fv(loc, 1, &v[0])
	case Vec4:
		v := value.(mgl32.Vec4)
		gl.Uniform4fv(loc, 1, &v[0])
	case Mat4:
		m := value.(mgl32.Mat4)
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	default:
		panic("set uniform attr: invalid attribute type")
	}
	return true
}

// SetUniformAttrByName is SetUniformAttr addressed by the uniform's name.
func (s *Shader) SetUniformAttrByName(name string, value interface{}) bool {
	return s.SetUniformAttr(s.uniformFmt.Index(name), value)
}

// Begin binds the Shader program. This is necessary before using the Shader.
func (s *Shader) Begin() {
	s.program.bind()
}

// End unbinds the Shader program and restores the previous one.
func (s *Shader) End() {
	s.program.restore()
}
