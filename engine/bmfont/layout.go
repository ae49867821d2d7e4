package bmfont

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/bmtext/engine/util"
)

// RenderContext is the virtual canvas text is positioned on, in pixels.
// It does not follow window resizes.
type RenderContext struct {
	Width  float32
	Height float32
}

// ToNDC maps a canvas pixel (origin top-left, y down) to normalized device coordinates.
func (c RenderContext) ToNDC(px, py float32) (float32, float32) {
	return px/c.Width*2 - 1, -py/c.Height*2 + 1
}

// GlyphProjection is the fixed projection uploaded as "proj" for every glyph.
// Glyph models are already in NDC, so it spans [-1, 1] on both axes.
func GlyphProjection() mgl32.Mat4 {
	return mgl32.Ortho2D(-1, 1, -1, 1)
}

// DrawCall is one glyph placed by Layout.
type DrawCall struct {
	Code byte
	Mesh Mesh
	// PenX, PenY is the pen position in canvas pixels before the glyph advanced it.
	PenX  float32
	PenY  float32
	Model mgl32.Mat4
}

// Layout places text with its pen starting at (x, y). Characters without a
// glyph, including every rune above 255, are reported and skipped without
// moving the pen. The pen only moves horizontally.
func Layout(font *BitmapFont, ctx RenderContext, x, y float32, text string) []DrawCall {
	penX, penY := x, y
	calls := make([]DrawCall, 0, len(text))
	for _, r := range text {
		glyph, ok := lookup(font, r)
		if !ok {
			util.LogTextWarning(fmt.Sprintf("do not have a glyph for '%c' (%d)", r, r))
			continue
		}
		ndcX, ndcY := ctx.ToNDC(penX+glyph.Metrics.OffsetX, penY+glyph.Metrics.OffsetY)
		calls = append(calls, DrawCall{
			Code:  byte(r),
			Mesh:  glyph.Mesh,
			PenX:  penX,
			PenY:  penY,
			Model: mgl32.Translate3D(ndcX, ndcY, 0),
		})
		penX += glyph.Metrics.AdvanceX
	}
	return calls
}

// MeasureText returns how far the pen moves when text is laid out.
func MeasureText(font *BitmapFont, text string) float32 {
	var width float32
	for _, r := range text {
		if glyph, ok := lookup(font, r); ok {
			width += glyph.Metrics.AdvanceX
		}
	}
	return width
}

func lookup(font *BitmapFont, r rune) (Glyph, bool) {
	if r < 0 || r > MaxGlyphID {
		return Glyph{}, false
	}
	return font.Glyph(byte(r))
}

// RenderText draws text with one indexed draw per glyph, pen starting at (x, y).
func RenderText(font *BitmapFont, ctx RenderContext, x, y float32, text string) {
	if font.shader == nil {
		util.LogTextError("cannot render text with an unloaded font")
		return
	}
	proj := GlyphProjection()
	for _, call := range Layout(font, ctx, x, y, text) {
		font.shader.Begin()
		if font.texture != nil {
			font.texture.Begin()
		}
		call.Mesh.Begin()

		font.shader.SetUniformMat4("model", call.Model)
		font.shader.SetUniformMat4("proj", proj)
		call.Mesh.Draw()

		call.Mesh.End()
		if font.texture != nil {
			font.texture.End()
		}
		font.shader.End()
	}
}
