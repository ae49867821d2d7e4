package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

type GlFloat float32

// VertexSlice is an indexed vertex array with a fixed vertex count. Each
// attribute of its format is bound to the location of its position in the
// format, matching `layout (location = i)` declarations in the shader.
//
// Note that you need to Begin a VertexSlice before updating it or drawing it.
// After you're done with it, you need to End it.
type VertexSlice struct {
	va  *vertexArray
	len int
}

// MakeIndexedVertexSlice allocates a vertex array for len vertices of the given format,
// drawn through indices.
func MakeIndexedVertexSlice(format AttrFormat, len int, indices []uint32) *VertexSlice {
	return &VertexSlice{
		va:  newIndexedVertexArray(format, len, indices),
		len: len,
	}
}

// Stride returns the number of float32 elements occupied by one vertex.
func (vs *VertexSlice) Stride() int {
	return vs.va.stride / SizeOfFloat32
}

// Len returns the number of vertices.
func (vs *VertexSlice) Len() int {
	return vs.len
}

// IndexCount returns the number of indices drawn by Draw.
func (vs *VertexSlice) IndexCount() int {
	return len(vs.va.indices)
}

// SetVertexData sets the contents of the VertexSlice.
//
// The data is a slice of floats, where each vertex attribute occupies a certain number of
// elements. Namely, Float occupies 1, Vec2 occupies 2, Vec3 occupies 3 and Vec4 occupies 4. The
// attributes in the data slice must be in the same order as in the vertex format.
//
// If the length of vertices does not match the length of the VertexSlice, this method panics.
func (vs *VertexSlice) SetVertexData(data []GlFloat) {
	if len(data) != vs.len*vs.Stride() {
		panic("set vertex data: wrong length of vertices")
	}
	vs.va.setVertexData(data)
}

// Draw draws the content of the VertexSlice.
func (vs *VertexSlice) Draw() {
	vs.va.draw()
}

// Begin binds the underlying vertex array. Calling this method is necessary before using the VertexSlice.
func (vs *VertexSlice) Begin() {
	vs.va.begin()
}

// End unbinds the underlying vertex array. Call this method when you're done with VertexSlice.
func (vs *VertexSlice) End() {
	vs.va.end()
}

// Delete releases the vertex array and its buffers right away. Must be called on the GL thread.
func (vs *VertexSlice) Delete() {
	vs.va.delete()
}

type vertexArray struct {
	vao, vbo      binder
	ibo           uint32
	cap           int
	format        AttrFormat
	stride        int
	offset        []int
	indices       []uint32
	primitiveType uint32
}

func newIndexedVertexArray(format AttrFormat, cap int, indices []uint32) *vertexArray {
	va := &vertexArray{
		primitiveType: gl.TRIANGLES,
		vao: binder{
			restoreLoc: gl.VERTEX_ARRAY_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindVertexArray(obj)
			},
		},
		vbo: binder{
			restoreLoc: gl.ARRAY_BUFFER_BINDING,
			bindFunc: func(obj uint32) {
				gl.BindBuffer(gl.ARRAY_BUFFER, obj)
			},
		},
		indices: indices,
		cap:     cap,
		format:  format,
		stride:  format.Size(),
		offset:  make([]int, len(format)),
	}

	offset := 0
	for i, attr := range va.format {
		switch attr.Type {
		case Float, Vec2, Vec3, Vec4:
		default:
			panic(errors.Errorf("failed to create vertex array: attribute %s is not a float type", attr.Name))
		}
		va.offset[i] = offset
		offset += attr.Type.Size()
	}

	gl.GenVertexArrays(1, &va.vao.obj)
	va.vao.bind()

	gl.GenBuffers(1, &va.vbo.obj)
	va.vbo.bind()
	gl.BufferData(gl.ARRAY_BUFFER, cap*va.stride, nil, gl.STATIC_DRAW)
	va.setAttributesForArray()

	// the element buffer binding is recorded in the VAO
	gl.GenBuffers(1, &va.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	va.vao.restore()
	va.vbo.restore()

	runtime.SetFinalizer(va, (*vertexArray).finalize)
	return va
}

func (va *vertexArray) setAttributesForArray() {
	for i, attr := range va.format {
		loc := uint32(i)
		gl.VertexAttribPointerWithOffset(
			loc,
			attr.Type.Components(),
			gl.FLOAT,
			false,
			int32(va.stride),
			uintptr(va.offset[i]),
		)
		gl.EnableVertexAttribArray(loc)
	}
}

func (va *vertexArray) finalize() {
	vao, vbo, ibo := va.vao.obj, va.vbo.obj, va.ibo
	mainthread.CallNonBlock(func() {
		gl.DeleteVertexArrays(1, &vao)
		gl.DeleteBuffers(1, &vbo)
		gl.DeleteBuffers(1, &ibo)
	})
}

func (va *vertexArray) delete() {
	if va.vao.obj == 0 {
		return
	}
	runtime.SetFinalizer(va, nil)
	gl.DeleteVertexArrays(1, &va.vao.obj)
	gl.DeleteBuffers(1, &va.vbo.obj)
	gl.DeleteBuffers(1, &va.ibo)
	va.vao.obj, va.vbo.obj, va.ibo = 0, 0, 0
}

func (va *vertexArray) begin() {
	va.vao.bind()
	va.vbo.bind()
}

func (va *vertexArray) end() {
	va.vbo.restore()
	va.vao.restore()
}

func (va *vertexArray) draw() {
	gl.DrawElements(va.primitiveType, int32(len(va.indices)), gl.UNSIGNED_INT, nil)
}

func (va *vertexArray) setVertexData(data []GlFloat) {
	if len(data) == 0 {
		// avoid setting 0 bytes of buffer data
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*SizeOfFloat32, gl.Ptr(data))
}
