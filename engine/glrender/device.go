// Package glrender implements bmfont.Device on top of engine/glhf.
package glrender

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/bmtext/engine/bmfont"
	"github.com/memmaker/bmtext/engine/glhf"
	"github.com/memmaker/bmtext/engine/util"
	"github.com/pkg/errors"
)

// GlyphUniforms are the uniforms every glyph shader has to declare.
var GlyphUniforms = glhf.AttrFormat{
	{Name: "model", Type: glhf.Mat4},
	{Name: "proj", Type: glhf.Mat4},
}

// Device creates glhf objects. It must only be used on the thread holding the GL context.
type Device struct {
	SmoothAtlas bool
}

func NewDevice() *Device {
	return &Device{SmoothAtlas: true}
}

func (d *Device) CompileShader(vertexSource, fragmentSource string) (bmfont.Shader, error) {
	shader, err := glhf.NewShader(GlyphUniforms, vertexSource, fragmentSource)
	if err != nil {
		util.LogGlError(fmt.Sprintf("SHADER: %s", err))
		return nil, err
	}
	util.LogGlDebug(fmt.Sprintf("glyph shader program %d", shader.ID()))
	return &glyphShader{Shader: shader}, nil
}

func (d *Device) NewQuadMesh(layout bmfont.VertexLayout, vertices []float32, indices []uint32) bmfont.Mesh {
	format, err := attrFormat(layout)
	if err != nil {
		panic(err)
	}
	data := make([]glhf.GlFloat, len(vertices))
	for i, v := range vertices {
		data[i] = glhf.GlFloat(v)
	}
	slice := glhf.MakeIndexedVertexSlice(format, len(vertices)/layout.Stride(), indices)
	slice.Begin()
	slice.SetVertexData(data)
	slice.End()
	util.LogGlDebug(fmt.Sprintf("quad mesh: %d vertices, %d indices", slice.Len(), slice.IndexCount()))
	return slice
}

func (d *Device) NewTexture(width, height int, pixels []uint8) bmfont.Texture {
	tex := glhf.NewTexture(width, height, d.SmoothAtlas, pixels)
	util.LogTextureDebug(fmt.Sprintf("uploaded %dx%d atlas as texture %d", tex.Width(), tex.Height(), tex.ID()))
	return tex
}

// attrFormat converts a float-count layout into a glhf format. glhf packs
// attributes in order, so the layout's offsets have to be contiguous.
func attrFormat(layout bmfont.VertexLayout) (glhf.AttrFormat, error) {
	format := make(glhf.AttrFormat, 0, len(layout))
	offset := 0
	for _, attr := range layout {
		if attr.Offset != offset {
			return nil, errors.Errorf("attribute %s at offset %d, expected %d", attr.Name, attr.Offset, offset)
		}
		var attrType glhf.AttrType
		switch attr.Components {
		case 1:
			attrType = glhf.Float
		case 2:
			attrType = glhf.Vec2
		case 3:
			attrType = glhf.Vec3
		case 4:
			attrType = glhf.Vec4
		default:
			return nil, errors.Errorf("attribute %s has %d components", attr.Name, attr.Components)
		}
		format = append(format, glhf.Attr{Name: attr.Name, Type: attrType})
		offset += attr.Components
	}
	return format, nil
}

type glyphShader struct {
	*glhf.Shader
}

func (s *glyphShader) SetUniformMat4(name string, value mgl32.Mat4) {
	if !s.SetUniformAttrByName(name, value) {
		util.LogGlWarning(fmt.Sprintf("shader has no uniform %q", name))
	}
}
