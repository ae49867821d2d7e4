package bmfont

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeDevice records every GPU call so tests can assert on them without a GL context.
type fakeDevice struct {
	compileErr error
	nextID     int
	shaders    []*fakeShader
	meshes     []*fakeMesh
	textures   []*fakeTexture
	events     []string
}

func (d *fakeDevice) id() int {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) CompileShader(vertexSource, fragmentSource string) (Shader, error) {
	if d.compileErr != nil {
		return nil, d.compileErr
	}
	if vertexSource == "" || fragmentSource == "" {
		return nil, errors.New("empty shader source")
	}
	s := &fakeShader{dev: d, id: d.id(), fragment: fragmentSource, uniforms: map[string]mgl32.Mat4{}}
	d.shaders = append(d.shaders, s)
	return s, nil
}

func (d *fakeDevice) NewQuadMesh(layout VertexLayout, vertices []float32, indices []uint32) Mesh {
	m := &fakeMesh{
		dev:      d,
		id:       d.id(),
		layout:   layout,
		vertices: append([]float32(nil), vertices...),
		indices:  append([]uint32(nil), indices...),
	}
	d.meshes = append(d.meshes, m)
	return m
}

func (d *fakeDevice) NewTexture(width, height int, pixels []uint8) Texture {
	t := &fakeTexture{dev: d, id: d.id(), width: width, height: height, pixels: len(pixels)}
	d.textures = append(d.textures, t)
	return t
}

func (d *fakeDevice) record(format string, args ...interface{}) {
	d.events = append(d.events, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) draws() []*fakeMesh {
	var drawn []*fakeMesh
	for _, m := range d.meshes {
		for i := 0; i < m.drawCount; i++ {
			drawn = append(drawn, m)
		}
	}
	return drawn
}

func (d *fakeDevice) totalDraws() int {
	return len(d.draws())
}

type fakeShader struct {
	dev      *fakeDevice
	id       int
	fragment string
	bound    bool
	deleted  int
	uniforms map[string]mgl32.Mat4
}

func (s *fakeShader) Begin() {
	s.bound = true
	s.dev.record("shader.begin")
}

func (s *fakeShader) End() {
	s.bound = false
	s.dev.record("shader.end")
}

func (s *fakeShader) SetUniformMat4(name string, value mgl32.Mat4) {
	if !s.bound {
		panic("uniform set on unbound shader")
	}
	s.uniforms[name] = value
	s.dev.record("uniform %s", name)
}

func (s *fakeShader) Delete() {
	s.deleted++
}

type fakeMesh struct {
	dev       *fakeDevice
	id        int
	layout    VertexLayout
	vertices  []float32
	indices   []uint32
	bound     bool
	drawCount int
	deleted   int
}

func (m *fakeMesh) Begin() {
	m.bound = true
	m.dev.record("mesh.begin")
}

func (m *fakeMesh) Draw() {
	if !m.bound {
		panic("draw on unbound mesh")
	}
	m.drawCount++
	m.dev.record("draw %d", len(m.indices))
}

func (m *fakeMesh) IndexCount() int {
	return len(m.indices)
}

func (m *fakeMesh) End() {
	m.bound = false
	m.dev.record("mesh.end")
}

func (m *fakeMesh) Delete() {
	m.deleted++
}

type fakeTexture struct {
	dev           *fakeDevice
	id            int
	width, height int
	pixels        int
	deleted       int
}

func (t *fakeTexture) Begin() {
	t.dev.record("texture.begin")
}

func (t *fakeTexture) End() {
	t.dev.record("texture.end")
}

func (t *fakeTexture) Delete() {
	t.deleted++
}
