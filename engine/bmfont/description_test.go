package bmfont

import (
	"bytes"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/memmaker/bmtext/engine/util"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := util.SetLogOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func TestParseDescriptionWellFormed(t *testing.T) {
	desc, err := ParseDescription(readTestdata(t, "two_glyphs.txt"))
	require.NoError(t, err)

	assert.Equal(t, float32(42), desc.FontSize)
	assert.Equal(t, 256, desc.ScaleW)
	assert.Equal(t, 256, desc.ScaleH)
	assert.Equal(t, 2, desc.DeclaredCount)
	require.Len(t, desc.Glyphs, 2)

	a := desc.Glyphs[0]
	assert.Equal(t, 65, a.ID)
	assert.Equal(t, AtlasRect{X: 0, Y: 0, Width: 10, Height: 12}, a.Rect)
	assert.Equal(t, float32(1), a.OffsetX)
	assert.Equal(t, float32(2), a.OffsetY)
	assert.Equal(t, float32(11), a.AdvanceX)
	assert.Equal(t, 66, desc.Glyphs[1].ID)
}

func TestParseDescriptionRejectsWrongHeaders(t *testing.T) {
	valid := strings.Split(string(readTestdata(t, "two_glyphs.txt")), "\n")
	cases := map[string]int{
		"info":   0,
		"common": 1,
		"chars":  3,
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			captureLog(t)
			lines := append([]string(nil), valid...)
			lines[line] = "bogus " + lines[line]
			desc, err := ParseDescription([]byte(strings.Join(lines, "\n")))
			assert.Nil(t, desc)
			assert.True(t, errors.Is(err, ErrInvalidDescription), "got %v", err)
		})
	}
}

func TestParseDescriptionKeywordMustMatchExactly(t *testing.T) {
	captureLog(t)
	data := "information face=x size=42\ncommon a=1 b=2 scaleW=8 scaleH=8\n\nchars count=0\n"
	_, err := ParseDescription([]byte(data))
	assert.True(t, errors.Is(err, ErrInvalidDescription))

	data = "info face=x size=42\ncommon a=1 b=2 scaleW=8 scaleH=8\n\nchars count=1\ncharacter id=65 x=0 y=0 width=1 height=1 xoffset=0 yoffset=0 xadvance=1\n"
	desc, err := ParseDescription([]byte(data))
	require.NoError(t, err)
	assert.Empty(t, desc.Glyphs, "'character' is not a char line")
}

func TestParseDescriptionSkipsOutOfRangeIDs(t *testing.T) {
	logged := captureLog(t)
	desc, err := ParseDescription(readTestdata(t, "out_of_range.txt"))
	require.NoError(t, err)

	require.Len(t, desc.Glyphs, 3)
	assert.Equal(t, []int{65, 66, 67}, []int{desc.Glyphs[0].ID, desc.Glyphs[1].ID, desc.Glyphs[2].ID})
	assert.Equal(t, 1, desc.Skipped)
	assert.Equal(t, desc.DeclaredCount, len(desc.Glyphs)+desc.Skipped)
	assert.Contains(t, logged.String(), "unsupported character outside range: 300")

	// 2^64+65 must not wrap around into slot 65
	huge := "info face=x size=12\n" +
		"common lineHeight=1 base=1 scaleW=64 scaleH=64\n" +
		"page id=0 file=\"x.png\"\n" +
		"chars count=1\n" +
		"char id=18446744073709551681 x=0 y=0 width=1 height=1 xoffset=0 yoffset=0 xadvance=1\n"
	desc, err = ParseDescription([]byte(huge))
	require.NoError(t, err)
	assert.Empty(t, desc.Glyphs)
	assert.Equal(t, 1, desc.Skipped)
}

func TestParseDescriptionStopsAtFirstNonCharLine(t *testing.T) {
	data := "info face=x size=12\n" +
		"common lineHeight=1 base=1 scaleW=64 scaleH=64\n" +
		"page id=0 file=\"x.png\"\n" +
		"chars count=3\n" +
		"char id=65 x=0 y=0 width=1 height=1 xoffset=0 yoffset=0 xadvance=1\n" +
		"kernings count=0\n" +
		"char id=66 x=0 y=0 width=1 height=1 xoffset=0 yoffset=0 xadvance=1\n"
	desc, err := ParseDescription([]byte(data))
	require.NoError(t, err)
	require.Len(t, desc.Glyphs, 1)
	assert.Equal(t, 65, desc.Glyphs[0].ID)
}

func TestParseDescriptionStopsAtEndOfInput(t *testing.T) {
	data := "info face=x size=12\ncommon lineHeight=1 base=1 scaleW=64 scaleH=64\n\nchars count=10\n" +
		"char id=65 x=0 y=0 width=1 height=1 xoffset=0 yoffset=0 xadvance=1"
	desc, err := ParseDescription([]byte(data))
	require.NoError(t, err)
	assert.Len(t, desc.Glyphs, 1)
	assert.Equal(t, 10, desc.DeclaredCount)
}

func TestParseDescriptionAcceptsCRLF(t *testing.T) {
	data := strings.ReplaceAll(string(readTestdata(t, "two_glyphs.txt")), "\n", "\r\n")
	desc, err := ParseDescription([]byte(data))
	require.NoError(t, err)
	require.Len(t, desc.Glyphs, 2)
	assert.Equal(t, float32(10), desc.Glyphs[1].AdvanceX)
}

func TestParseDescriptionRejectsShortLines(t *testing.T) {
	captureLog(t)
	cases := map[string]string{
		"info":   "info size=42\ncommon a=1 b=2 scaleW=8 scaleH=8\n\nchars count=0\n",
		"common": "info face=x size=42\ncommon a=1 b=2 scaleW=8\n\nchars count=0\n",
		"chars":  "info face=x size=42\ncommon a=1 b=2 scaleW=8 scaleH=8\n\nchars\n",
		"char":   "info face=x size=42\ncommon a=1 b=2 scaleW=8 scaleH=8\n\nchars count=1\nchar id=65 x=0 y=0\n",
		"empty":  "",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDescription([]byte(data))
			assert.True(t, errors.Is(err, ErrInvalidDescription), "got %v", err)
		})
	}
}

func TestParseDescriptionIsRestartable(t *testing.T) {
	data := readTestdata(t, "two_glyphs.txt")
	first, err := ParseDescription(data)
	require.NoError(t, err)
	second, err := ParseDescription(data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHasKeyword(t *testing.T) {
	assert.True(t, HasKeyword("char id=1", "char"))
	assert.True(t, HasKeyword("chars", "chars"))
	assert.False(t, HasKeyword("chars count=1", "char"))
	assert.False(t, HasKeyword("cha id=1", "char"))
	assert.False(t, HasKeyword("", "char"))
}

func TestLineAttrInts(t *testing.T) {
	assert.Equal(t, []int{65, -3, 0, 7}, LineAttrInts("char id=65 xoffset=-3 face=\"Sans\" n=+7"))
	assert.Equal(t, []int{0, 1}, LineAttrInts("padding= spacing=1,1"))
	assert.Empty(t, LineAttrInts("page"))
	assert.Equal(t, []int{math.MaxInt32, -math.MaxInt32, math.MaxInt32},
		LineAttrInts("id=18446744073709551681 x=-99999999999 y=2147483647"))
	assert.Equal(t, []int{2147483646}, LineAttrInts("id=2147483646"))
}
