// Package bmfont loads pre-baked bitmap fonts (a glyph description text
// file plus a texture atlas) and draws strings with them, one textured
// quad per glyph.
//
// The package talks to the GPU only through the Device interface, so the
// parsing, mesh geometry and layout logic run without an OpenGL context.
// engine/glrender provides the OpenGL implementation.
package bmfont
