package bmfont

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCanvas = RenderContext{Width: 800, Height: 800}

func loadTwoGlyphFont(t *testing.T) (*BitmapFont, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{}
	font := testLoader(dev).Load("atlas.png", "testdata/two_glyphs.txt")
	require.True(t, font.Ok(), "%v", font.Err)
	return font, dev
}

func TestToNDC(t *testing.T) {
	x, y := testCanvas.ToNDC(0, 0)
	assert.Equal(t, []float32{-1, 1}, []float32{x, y})
	x, y = testCanvas.ToNDC(800, 800)
	assert.Equal(t, []float32{1, -1}, []float32{x, y})
	x, y = testCanvas.ToNDC(400, 200)
	assert.Equal(t, []float32{0, 0.5}, []float32{x, y})
}

func TestLayoutSkipsMissingGlyphs(t *testing.T) {
	logged := captureLog(t)
	font, _ := loadTwoGlyphFont(t)

	calls := Layout(font, testCanvas, 10, 100, "AxB")

	require.Len(t, calls, 2)
	assert.Equal(t, byte('A'), calls[0].Code)
	assert.Equal(t, byte('B'), calls[1].Code)
	assert.Equal(t, float32(10), calls[0].PenX)
	assert.Equal(t, float32(21), calls[1].PenX, "x contributes no advance")
	assert.Equal(t, float32(100), calls[1].PenY, "pen y never moves")
	assert.Contains(t, logged.String(), "do not have a glyph for 'x' (120)")
}

func TestLayoutModelTranslatesToNDC(t *testing.T) {
	captureLog(t)
	font, _ := loadTwoGlyphFont(t)

	calls := Layout(font, testCanvas, 399, 198, "A")
	require.Len(t, calls, 1)

	// pen + offset = (400, 200)
	want := mgl32.Translate3D(0, 0.5, 0)
	assert.True(t, want.ApproxEqual(calls[0].Model), "got %v", calls[0].Model)
}

func TestLayoutIgnoresRunesAbove255(t *testing.T) {
	captureLog(t)
	font, _ := loadTwoGlyphFont(t)

	calls := Layout(font, testCanvas, 0, 0, "AŁB")
	require.Len(t, calls, 2)
	assert.Equal(t, float32(11), calls[1].PenX)
}

func TestLayoutEmptyText(t *testing.T) {
	font, _ := loadTwoGlyphFont(t)
	assert.Empty(t, Layout(font, testCanvas, 0, 0, ""))
}

func TestMeasureText(t *testing.T) {
	font, _ := loadTwoGlyphFont(t)
	assert.Equal(t, float32(21), MeasureText(font, "AxB"))
	assert.Equal(t, float32(0), MeasureText(font, "xyz"))
}

func TestRenderTextDrawsOncePerPresentGlyph(t *testing.T) {
	captureLog(t)
	font, dev := loadTwoGlyphFont(t)
	dev.events = nil

	RenderText(font, testCanvas, 10, 100, "AxB")

	drawn := dev.draws()
	require.Len(t, drawn, 2)
	a, _ := font.Glyph('A')
	b, _ := font.Glyph('B')
	assert.Same(t, a.Mesh.(*fakeMesh), drawn[0])
	assert.Same(t, b.Mesh.(*fakeMesh), drawn[1])

	perGlyph := []string{
		"shader.begin", "texture.begin", "mesh.begin",
		"uniform model", "uniform proj", "draw 6",
		"mesh.end", "texture.end", "shader.end",
	}
	assert.Equal(t, append(append([]string{}, perGlyph...), perGlyph...), dev.events)

	uniforms := dev.shaders[0].uniforms
	assert.Equal(t, GlyphProjection(), uniforms["proj"])
	ndcX, ndcY := testCanvas.ToNDC(21+0, 100+2)
	assert.True(t, mgl32.Translate3D(ndcX, ndcY, 0).ApproxEqual(uniforms["model"]))
}

func TestRenderTextColorOnlySkipsTexture(t *testing.T) {
	captureLog(t)
	dev := &fakeDevice{}
	font := testLoader(dev).Load("", "testdata/two_glyphs.txt")
	require.True(t, font.Ok())
	dev.events = nil

	RenderText(font, testCanvas, 0, 0, "A")
	assert.NotContains(t, dev.events, "texture.begin")
	assert.Equal(t, 1, dev.totalDraws())
}

func TestRenderTextUnloadedFontDrawsNothing(t *testing.T) {
	logged := captureLog(t)
	font, dev := loadTwoGlyphFont(t)
	font.Unload()

	RenderText(font, testCanvas, 0, 0, "AB")
	assert.Zero(t, dev.totalDraws())
	assert.Contains(t, logged.String(), "unloaded font")
}

func TestGlyphProjectionKeepsNDC(t *testing.T) {
	p := GlyphProjection().Mul4x1(mgl32.Vec4{0.25, -0.5, 0, 1})
	assert.True(t, p.ApproxEqual(mgl32.Vec4{0.25, -0.5, 0, 1}))
}
