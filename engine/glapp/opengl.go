package glapp

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/memmaker/bmtext/engine/util"
)

// CheckForGLError logs and returns the pending GL error code, or gl.NO_ERROR.
func CheckForGLError(where string) uint32 {
	errorCodeOfGL := gl.GetError()
	if errorCodeOfGL != gl.NO_ERROR {
		util.LogGlError(fmt.Sprintf("%s: GL error 0x%x", where, errorCodeOfGL))
	}
	return errorCodeOfGL
}
