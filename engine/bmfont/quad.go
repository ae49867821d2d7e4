package bmfont

import "github.com/go-gl/mathgl/mgl32"

const (
	// VertexStride is the number of floats per glyph vertex: position, color, uv.
	VertexStride = 8
	// QuadIndexCount is the number of indices drawn per glyph.
	QuadIndexCount = 6
)

// GlyphVertexLayout is the interleaved layout of every glyph quad.
var GlyphVertexLayout = VertexLayout{
	{Name: "position", Components: 3, Offset: 0},
	{Name: "color", Components: 3, Offset: 3},
	{Name: "texCoord", Components: 2, Offset: 6},
}

// Corners of a glyph quad, in vertex order.
const (
	TopRight = iota
	BottomRight
	BottomLeft
	TopLeft
)

var quadIndices = [QuadIndexCount]uint32{
	0, 1, 3, // first triangle
	1, 2, 3, // second triangle
}

var (
	texturedColor  = mgl32.Vec3{1, 1, 1}
	colorOnlyColor = mgl32.Vec3{1, 0, 1}
)

// QuadGeometry is the CPU side of a glyph mesh.
type QuadGeometry struct {
	Vertices [4 * VertexStride]float32
	Indices  [QuadIndexCount]uint32
}

func (q QuadGeometry) Position(corner int) mgl32.Vec3 {
	v := q.Vertices[corner*VertexStride:]
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func (q QuadGeometry) Color(corner int) mgl32.Vec3 {
	v := q.Vertices[corner*VertexStride+3:]
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func (q QuadGeometry) UV(corner int) mgl32.Vec2 {
	v := q.Vertices[corner*VertexStride+6:]
	return mgl32.Vec2{v[0], v[1]}
}

// GlyphQuad builds the quad for one atlas rectangle. The quad's top-left
// corner sits at the local origin and it extends right and down by the
// rectangle's size relative to the atlas. UVs flip V so that the atlas'
// top-left pixel origin lines up with bottom-up texture coordinates.
// Without textured the quad is solid magenta and UVs stay zero.
func GlyphQuad(imgW, imgH float32, rect AtlasRect, textured bool) QuadGeometry {
	relW := float32(rect.Width) / imgW
	relH := float32(rect.Height) / imgH

	var leftU, rightU, topV, bottomV float32
	color := colorOnlyColor
	if textured {
		color = texturedColor
		leftU = float32(rect.X) / imgW
		rightU = float32(rect.X+rect.Width) / imgW
		topV = 1 - float32(rect.Y)/imgH
		bottomV = 1 - float32(rect.Y+rect.Height)/imgH
	}

	corners := [4][4]float32{
		TopRight:    {relW, 0, rightU, topV},
		BottomRight: {relW, -relH, rightU, bottomV},
		BottomLeft:  {0, -relH, leftU, bottomV},
		TopLeft:     {0, 0, leftU, topV},
	}

	var q QuadGeometry
	for i, c := range corners {
		v := q.Vertices[i*VertexStride : (i+1)*VertexStride]
		v[0], v[1], v[2] = c[0], c[1], 0
		v[3], v[4], v[5] = color[0], color[1], color[2]
		v[6], v[7] = c[2], c[3]
	}
	q.Indices = quadIndices
	return q
}

// BuildGlyphMesh uploads the quad for rect to dev.
func BuildGlyphMesh(dev Device, imgW, imgH float32, rect AtlasRect, textured bool) Mesh {
	q := GlyphQuad(imgW, imgH, rect, textured)
	return dev.NewQuadMesh(GlyphVertexLayout, q.Vertices[:], q.Indices[:])
}
