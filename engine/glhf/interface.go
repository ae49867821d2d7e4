package glhf

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// Init loads the OpenGL function pointers. Call it once a context is current.
func Init() error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize OpenGL")
	}
	return nil
}

// binder binds an OpenGL object and remembers what was bound before, so
// nested Begin/End pairs restore the previous binding.
type binder struct {
	restoreLoc uint32
	bindFunc   func(uint32)

	obj  uint32
	prev []uint32
}

func (b *binder) bind() *binder {
	var prev int32
	gl.GetIntegerv(b.restoreLoc, &prev)
	b.prev = append(b.prev, uint32(prev))
	if b.prev[len(b.prev)-1] != b.obj {
		b.bindFunc(b.obj)
	}
	return b
}

func (b *binder) restore() *binder {
	last := b.prev[len(b.prev)-1]
	if last != b.obj {
		b.bindFunc(last)
	}
	b.prev = b.prev[:len(b.prev)-1]
	return b
}
