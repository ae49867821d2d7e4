package bmfont

import "github.com/pkg/errors"

// Status is the outcome of loading a BitmapFont. It is stored on the font
// itself; callers must check it before rendering.
type Status int

const (
	Success Status = iota
	CannotLoadDescFile
	CannotLoadAtlasFile
	CannotLoadGlyphShader
	InvalidDescription
)

var (
	ErrCannotLoadDescFile    = errors.New("cannot load font description file")
	ErrCannotLoadAtlasFile   = errors.New("cannot load font atlas file")
	ErrCannotLoadGlyphShader = errors.New("cannot load glyph shader")
	ErrInvalidDescription    = errors.New("invalid font description")
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case CannotLoadDescFile:
		return "cannot load description file"
	case CannotLoadAtlasFile:
		return "cannot load atlas file"
	case CannotLoadGlyphShader:
		return "cannot load glyph shader"
	case InvalidDescription:
		return "invalid description"
	}
	return "unknown status"
}

// Err returns the sentinel error for s, nil for Success.
func (s Status) Err() error {
	switch s {
	case CannotLoadDescFile:
		return ErrCannotLoadDescFile
	case CannotLoadAtlasFile:
		return ErrCannotLoadAtlasFile
	case CannotLoadGlyphShader:
		return ErrCannotLoadGlyphShader
	case InvalidDescription:
		return ErrInvalidDescription
	}
	return nil
}

// loadError ties a failed load step to the error that caused it. It matches
// the step's sentinel under errors.Is and unwraps to the cause.
type loadError struct {
	status Status
	cause  error
}

func (e *loadError) Error() string {
	return e.status.Err().Error() + ": " + e.cause.Error()
}

func (e *loadError) Is(target error) bool {
	return target == e.status.Err()
}

func (e *loadError) Cause() error  { return e.cause }
func (e *loadError) Unwrap() error { return e.cause }
