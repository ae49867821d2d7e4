package bmfont

import (
	_ "embed"
	"fmt"
	"image"
	"os"

	"github.com/memmaker/bmtext/engine/util"
	"github.com/pkg/errors"
)

var (
	//go:embed shader/glyph.vert
	glyphVertexShaderSource string

	//go:embed shader/glyph.frag
	glyphFragmentShaderSource string

	//go:embed shader/glyph_color.frag
	glyphColorFragmentShaderSource string
)

// GlyphSlots is the size of a font's glyph table, one slot per 8-bit code.
const GlyphSlots = 256

type GlyphMetrics struct {
	OffsetX  float32
	OffsetY  float32
	AdvanceX float32
	Rect     AtlasRect
}

// Glyph is one slot of the glyph table. Mesh is only meaningful when Present is set.
type Glyph struct {
	Metrics GlyphMetrics
	Mesh    Mesh
	Present bool
}

// BitmapFont owns a glyph shader, an optional atlas texture and one mesh per
// loaded glyph. A font that failed to load still holds whatever it acquired
// before the failure; Unload releases it either way.
type BitmapFont struct {
	Status   Status
	Err      error
	FontSize float32
	ScaleW   int
	ScaleH   int

	shader  Shader
	texture Texture
	glyphs  [GlyphSlots]Glyph
}

func (f *BitmapFont) Ok() bool {
	return f.Status == Success
}

// Glyph returns the slot for code and whether a glyph is loaded there.
func (f *BitmapFont) Glyph(code byte) (Glyph, bool) {
	g := f.glyphs[code]
	return g, g.Present
}

// GlyphCount is the number of populated slots.
func (f *BitmapFont) GlyphCount() int {
	count := 0
	for _, g := range f.glyphs {
		if g.Present {
			count++
		}
	}
	return count
}

// Textured reports whether the font samples an atlas texture.
func (f *BitmapFont) Textured() bool {
	return f.texture != nil
}

func (f *BitmapFont) setGlyph(id int, metrics GlyphMetrics, mesh Mesh) {
	slot := &f.glyphs[id]
	if slot.Present {
		util.LogFontDebug(fmt.Sprintf("glyph %d defined twice, keeping the last one", id))
		slot.Mesh.Delete()
	}
	*slot = Glyph{Metrics: metrics, Mesh: mesh, Present: true}
}

// Unload releases the shader, the texture and every glyph mesh. Calling it
// again, or on a zero BitmapFont, does nothing.
func (f *BitmapFont) Unload() {
	if f.shader != nil {
		f.shader.Delete()
		f.shader = nil
	}
	if f.texture != nil {
		f.texture.Delete()
		f.texture = nil
	}
	for i := range f.glyphs {
		if f.glyphs[i].Present {
			f.glyphs[i].Mesh.Delete()
		}
		f.glyphs[i] = Glyph{}
	}
}

func (f *BitmapFont) fail(status Status, cause error) *BitmapFont {
	f.Status = status
	if errors.Cause(cause) == status.Err() {
		f.Err = cause
	} else {
		f.Err = &loadError{status: status, cause: cause}
	}
	util.LogFontError(f.Err.Error())
	return f
}

// Loader assembles BitmapFonts. The zero value is not usable; use NewLoader.
type Loader struct {
	Device         Device
	VertexShader   string
	FragmentShader string
	// ColorFragmentShader is used instead of FragmentShader for fonts without an atlas.
	ColorFragmentShader string
	ReadFile            func(path string) ([]byte, error)
	DecodeAtlas         func(path string) (*image.NRGBA, error)
}

func NewLoader(dev Device) *Loader {
	return &Loader{
		Device:              dev,
		VertexShader:        glyphVertexShaderSource,
		FragmentShader:      glyphFragmentShaderSource,
		ColorFragmentShader: glyphColorFragmentShaderSource,
		ReadFile:            os.ReadFile,
		DecodeAtlas: func(path string) (*image.NRGBA, error) {
			return util.LoadImageRGBA(path, true)
		},
	}
}

// LoadBitmapFont loads a font with the default collaborators of NewLoader.
func LoadBitmapFont(dev Device, atlasPath, descPath string) *BitmapFont {
	return NewLoader(dev).Load(atlasPath, descPath)
}

// Load compiles the glyph shader, uploads the atlas and builds one mesh per
// glyph described in descPath. An empty atlasPath loads a color-only font.
// The result always comes back non-nil; check its Status.
func (l *Loader) Load(atlasPath, descPath string) *BitmapFont {
	font := &BitmapFont{}
	textured := atlasPath != ""

	fragmentShader := l.FragmentShader
	if !textured {
		fragmentShader = l.ColorFragmentShader
	}
	shader, err := l.Device.CompileShader(l.VertexShader, fragmentShader)
	if err != nil {
		return font.fail(CannotLoadGlyphShader, err)
	}
	font.shader = shader

	if textured {
		atlas, err := l.DecodeAtlas(atlasPath)
		if err != nil {
			return font.fail(CannotLoadAtlasFile, err)
		}
		font.texture = l.Device.NewTexture(atlas.Rect.Dx(), atlas.Rect.Dy(), atlas.Pix)
	}

	data, err := l.ReadFile(descPath)
	if err != nil {
		util.LogIOError(fmt.Sprintf("could not read file: %s", descPath))
		return font.fail(CannotLoadDescFile, err)
	}
	desc, err := ParseDescription(data)
	if err != nil {
		return font.fail(InvalidDescription, err)
	}
	if desc.ScaleW <= 0 || desc.ScaleH <= 0 {
		return font.fail(InvalidDescription, errors.Wrapf(ErrInvalidDescription,
			"atlas size %dx%d", desc.ScaleW, desc.ScaleH))
	}

	font.FontSize = desc.FontSize
	font.ScaleW = desc.ScaleW
	font.ScaleH = desc.ScaleH
	imgW, imgH := float32(desc.ScaleW), float32(desc.ScaleH)
	for _, rec := range desc.Glyphs {
		mesh := BuildGlyphMesh(l.Device, imgW, imgH, rec.Rect, textured)
		font.setGlyph(rec.ID, GlyphMetrics{
			OffsetX:  rec.OffsetX,
			OffsetY:  rec.OffsetY,
			AdvanceX: rec.AdvanceX,
			Rect:     rec.Rect,
		}, mesh)
	}
	util.LogFontInfo(fmt.Sprintf("loaded %s: size %.0f, %d glyphs, %d skipped",
		descPath, font.FontSize, font.GlyphCount(), desc.Skipped))
	return font
}
