package bmfont

import "github.com/go-gl/mathgl/mgl32"

// Device creates the GPU objects a BitmapFont needs. All methods must be
// called on the goroutine that owns the rendering context.
type Device interface {
	CompileShader(vertexSource, fragmentSource string) (Shader, error)
	// NewQuadMesh uploads interleaved vertex data laid out as described by layout.
	NewQuadMesh(layout VertexLayout, vertices []float32, indices []uint32) Mesh
	// NewTexture uploads RGBA8 pixels, rows ordered bottom-to-top.
	NewTexture(width, height int, pixels []uint8) Texture
}

type Shader interface {
	Begin()
	End()
	SetUniformMat4(name string, value mgl32.Mat4)
	Delete()
}

type Mesh interface {
	Begin()
	// Draw issues one indexed draw over all of the mesh's indices.
	Draw()
	End()
	IndexCount() int
	Delete()
}

type Texture interface {
	Begin()
	End()
	Delete()
}

// VertexAttr is one interleaved attribute. Components and Offset count floats.
type VertexAttr struct {
	Name       string
	Components int
	Offset     int
}

// VertexLayout lists attributes in location order: attribute i is bound to location i.
type VertexLayout []VertexAttr

// Stride is the number of floats per vertex.
func (l VertexLayout) Stride() int {
	stride := 0
	for _, attr := range l {
		if end := attr.Offset + attr.Components; end > stride {
			stride = end
		}
	}
	return stride
}
