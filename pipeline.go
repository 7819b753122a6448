package main

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/stewi1014/fractals/views"
)

// pipeline owns the GL objects for one view: the shader program and the
// buffers holding the view's current draw list. It must only be used with
// the owning window's GL context current.
type pipeline struct {
	program          uint32
	uniformLocations map[string]int32

	vao, vbo, ebo uint32
	mode          uint32
	count         int32
	indexed       bool
}

// surfaceVertices is a single triangle that covers the viewport.
var surfaceVertices = []float32{
	-3, -2,
	0, 3,
	3, -2,
}

// loadView compiles and links the view's shaders and resolves the uniform
// locations named by the view's uniforms struct tags.
func (p *pipeline) loadView(v views.View, s views.Settings, viewport mgl32.Vec2) error {
	vertexShader, err := compileShader(v.VertexShader()+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return err
	}

	fragmentShader, err := compileShader(v.FragmentShader()+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	defer gl.DeleteShader(vertexShader)
	defer gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)

		infoLog := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(program, l, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return fmt.Errorf("failed to link program for %v: %v", v.Name(), infoLog)
	}

	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
	p.program = program
	gl.UseProgram(p.program)
	gl.BindFragDataLocation(p.program, 0, gl.Str("out_color\x00"))

	p.uniformLocations = make(map[string]int32)
	t := reflect.TypeOf(v.Uniforms(s, viewport))
	for i := 0; i < t.NumField(); i++ {
		name := strings.ToLower(t.Field(i).Tag.Get("uniform"))
		p.uniformLocations[name] = gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	}

	return nil
}

// upload replaces the pipeline's buffers with the given draw list. It builds
// a complete new vertex array first and swaps it in, so a draw call can never
// observe a half-updated binding; the old objects are deleted afterwards.
func (p *pipeline) upload(list views.DrawList) error {
	var vao, vbo, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	switch l := list.(type) {
	case views.LineLoop:
		gl.BufferData(gl.ARRAY_BUFFER, len(l.Vertices)*2*4, gl.Ptr(l.Vertices), gl.DYNAMIC_DRAW)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
		p.mode, p.count, p.indexed = gl.LINE_LOOP, int32(len(l.Vertices)), false

	case views.Lines:
		gl.BufferData(gl.ARRAY_BUFFER, len(l.Vertices)*4*4, gl.Ptr(l.Vertices), gl.DYNAMIC_DRAW)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, 4*4, 2*4)
		p.mode, p.count, p.indexed = gl.LINES, int32(len(l.Vertices)), false

	case views.Mesh:
		gl.BufferData(gl.ARRAY_BUFFER, len(l.Vertices)*2*4, gl.Ptr(l.Vertices), gl.DYNAMIC_DRAW)
		gl.GenBuffers(1, &ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(l.Indices)*4, gl.Ptr(l.Indices), gl.DYNAMIC_DRAW)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
		p.mode, p.count, p.indexed = gl.TRIANGLES, int32(len(l.Indices)), true

	case views.Surface:
		gl.BufferData(gl.ARRAY_BUFFER, len(surfaceVertices)*4, gl.Ptr(surfaceVertices), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
		p.mode, p.count, p.indexed = gl.TRIANGLES, 3, false

	default:
		gl.DeleteVertexArrays(1, &vao)
		gl.DeleteBuffers(1, &vbo)
		return fmt.Errorf("unknown draw list %T", list)
	}

	p.vao, vao = vao, p.vao
	p.vbo, vbo = vbo, p.vbo
	p.ebo, ebo = ebo, p.ebo
	if vao != 0 {
		gl.DeleteVertexArrays(1, &vao)
	}
	if vbo != 0 {
		gl.DeleteBuffers(1, &vbo)
	}
	if ebo != 0 {
		gl.DeleteBuffers(1, &ebo)
	}

	return nil
}

// draw issues the draw call for the current buffers.
func (p *pipeline) draw(v views.View, s views.Settings, viewport mgl32.Vec2) {
	gl.UseProgram(p.program)
	p.loadUniforms(v.Uniforms(s, viewport))
	gl.BindVertexArray(p.vao)
	if p.indexed {
		gl.DrawElementsWithOffset(p.mode, p.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(p.mode, 0, p.count)
	}
}

func (p *pipeline) delete() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.ebo != 0 {
		gl.DeleteBuffers(1, &p.ebo)
	}
	*p = pipeline{}
}

// loadUniforms walks the uniforms struct and uploads each tagged field based
// on its type. Arrays upload their whole backing memory in one call.
func (p *pipeline) loadUniforms(uniforms interface{}) {
	v := reflect.ValueOf(uniforms)
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	v = ptr.Elem()

	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)

		fieldPtr := f.Addr().UnsafePointer()
		loc := p.uniformLocations[strings.ToLower(v.Type().Field(i).Tag.Get("uniform"))]

		count := int32(1)

	SwitchElem:
		switch f.Type() {
		case reflect.TypeOf(mgl32.Vec2{}):
			gl.Uniform2fv(loc, count, (*float32)(fieldPtr))
			continue
		case reflect.TypeOf(mgl32.Vec3{}):
			gl.Uniform3fv(loc, count, (*float32)(fieldPtr))
			continue
		case reflect.TypeOf(mgl32.Vec4{}):
			gl.Uniform4fv(loc, count, (*float32)(fieldPtr))
			continue
		case reflect.TypeOf(mgl64.Vec2{}):
			gl.Uniform2dv(loc, count, (*float64)(fieldPtr))
			continue
		case reflect.TypeOf(mgl64.Vec3{}):
			gl.Uniform3dv(loc, count, (*float64)(fieldPtr))
			continue
		case reflect.TypeOf(mgl32.Mat4{}):
			gl.UniformMatrix4fv(loc, count, false, (*float32)(fieldPtr))
			continue
		case reflect.TypeOf(int32(0)):
			gl.Uniform1iv(loc, count, (*int32)(fieldPtr))
			continue
		case reflect.TypeOf(uint32(0)):
			gl.Uniform1uiv(loc, count, (*uint32)(fieldPtr))
			continue
		case reflect.TypeOf(float32(0)):
			gl.Uniform1fv(loc, count, (*float32)(fieldPtr))
			continue
		case reflect.TypeOf(float64(0)):
			gl.Uniform1dv(loc, count, (*float64)(fieldPtr))
			continue
		}

		if f.Kind() == reflect.Array {
			count = int32(f.Len())
			f = f.Index(0)
			goto SwitchElem
		}

		log.Printf("unsupported uniform type %v", f.Type())
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		infoLog := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, infoLog)
	}

	return shader, nil
}
