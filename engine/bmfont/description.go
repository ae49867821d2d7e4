package bmfont

import (
	"fmt"
	"math"
	"strings"

	"github.com/memmaker/bmtext/engine/util"
	"github.com/pkg/errors"
)

// Positional attribute contract of the description format. Values are read
// by the index of their '=' on the line, never by key name:
//
//	info   face=.. size=..                              -> size at 1
//	common lineHeight=.. base=.. scaleW=.. scaleH=..    -> scaleW at 2, scaleH at 3
//	(line 3 is skipped)
//	chars  count=..                                     -> count at 0
//	char   id x y width height xoffset yoffset xadvance -> 0..7
const (
	infoSizeAttr     = 1
	commonScaleWAttr = 2
	commonScaleHAttr = 3
	charsCountAttr   = 0
)

const (
	charIDAttr = iota
	charXAttr
	charYAttr
	charWidthAttr
	charHeightAttr
	charXOffsetAttr
	charYOffsetAttr
	charXAdvanceAttr
	charAttrCount
)

// MaxGlyphID is the largest character code a font can hold.
const MaxGlyphID = GlyphSlots - 1

// AtlasRect is a glyph's rectangle in atlas pixel space, origin top-left.
type AtlasRect struct {
	X, Y, Width, Height int
}

type GlyphRecord struct {
	ID       int
	Rect     AtlasRect
	OffsetX  float32
	OffsetY  float32
	AdvanceX float32
}

// Description is a fully parsed glyph description file.
type Description struct {
	FontSize      float32
	ScaleW        int
	ScaleH        int
	DeclaredCount int
	Glyphs        []GlyphRecord
	// Skipped counts glyph lines dropped because their id does not fit 8 bits.
	Skipped int
}

// ParseDescription parses the text description of a bitmap font atlas.
//
// Structural problems (wrong keyword on the info, common or chars line, or
// fewer attributes than the line type requires) fail with
// ErrInvalidDescription. Glyph ids above MaxGlyphID are logged and skipped.
// Glyph parsing ends early, without error, at the first line that is not a
// char line.
func ParseDescription(data []byte) (*Description, error) {
	lines := splitLines(string(data))
	desc := &Description{}

	info, err := headerLine(lines, 0, "info", infoSizeAttr+1)
	if err != nil {
		return nil, err
	}
	desc.FontSize = float32(info[infoSizeAttr])

	common, err := headerLine(lines, 1, "common", commonScaleHAttr+1)
	if err != nil {
		return nil, err
	}
	desc.ScaleW = common[commonScaleWAttr]
	desc.ScaleH = common[commonScaleHAttr]

	chars, err := headerLine(lines, 3, "chars", charsCountAttr+1)
	if err != nil {
		return nil, err
	}
	desc.DeclaredCount = chars[charsCountAttr]

	for i := 0; i < desc.DeclaredCount; i++ {
		lineIndex := 4 + i
		if lineIndex >= len(lines) || !HasKeyword(lines[lineIndex], "char") {
			break
		}
		values := LineAttrInts(lines[lineIndex])
		if len(values) < charAttrCount {
			return nil, tooFewAttrs(lineIndex, "char", charAttrCount, len(values))
		}
		id := values[charIDAttr]
		if id < 0 || id > MaxGlyphID {
			util.LogFontWarning(fmt.Sprintf("unsupported character outside range: %d", id))
			desc.Skipped++
			continue
		}
		desc.Glyphs = append(desc.Glyphs, GlyphRecord{
			ID: id,
			Rect: AtlasRect{
				X:      values[charXAttr],
				Y:      values[charYAttr],
				Width:  values[charWidthAttr],
				Height: values[charHeightAttr],
			},
			OffsetX:  float32(values[charXOffsetAttr]),
			OffsetY:  float32(values[charYOffsetAttr]),
			AdvanceX: float32(values[charXAdvanceAttr]),
		})
	}
	return desc, nil
}

func headerLine(lines []string, index int, keyword string, minAttrs int) ([]int, error) {
	if index >= len(lines) || !HasKeyword(lines[index], keyword) {
		util.LogFontError(fmt.Sprintf("invalid %s section", keyword))
		return nil, errors.Wrapf(ErrInvalidDescription, "line %d: expected %q", index+1, keyword)
	}
	values := LineAttrInts(lines[index])
	if len(values) < minAttrs {
		return nil, tooFewAttrs(index, keyword, minAttrs, len(values))
	}
	return values, nil
}

func tooFewAttrs(index int, keyword string, want, got int) error {
	util.LogFontError(fmt.Sprintf("%s line %d has %d attributes, want %d", keyword, index+1, got, want))
	return errors.Wrapf(ErrInvalidDescription, "line %d: %q needs %d attributes, found %d", index+1, keyword, want, got)
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// HasKeyword reports whether the text before the first space of line is exactly keyword.
func HasKeyword(line, keyword string) bool {
	head, _, _ := strings.Cut(line, " ")
	return head == keyword
}

// LineAttrInts returns the integer following every '=' on line, in order.
func LineAttrInts(line string) []int {
	var values []int
	for i := 0; i < len(line); i++ {
		if line[i] == '=' {
			values = append(values, leadingInt(line[i+1:]))
		}
	}
	return values
}

// leadingInt reads an optionally signed base-10 integer from the start of s,
// after leading blanks. Anything unparsable yields 0. Values beyond 32 bits
// saturate at math.MaxInt32 / -math.MaxInt32 instead of wrapping.
func leadingInt(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	negative := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		negative = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int(s[i] - '0')
		if n > (math.MaxInt32-d)/10 {
			n = math.MaxInt32
			continue
		}
		n = n*10 + d
	}
	if negative {
		return -n
	}
	return n
}
