package mdl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Encode serializes a model into the MDL byte layout. It never fails:
// every field is written as-is, and supplying in-range data is the caller's
// side of the contract (use QuantizePosition and ClosestNormal).
func Encode(m *Model) []byte {
	w := newWriter(HeaderSize +
		len(m.Vertices)*VertexSize +
		len(m.Triangles)*TriangleSize +
		len(m.Bones)*BoneSize +
		len(m.Sequences)*SequenceSize +
		len(m.Textures)*TextureSize)

	// Header
	w.raw([]byte(Magic))
	w.u32(Version)
	w.name(m.Name, ModelNameLen)
	w.u32(uint32(min(len(m.Name), ModelNameLen)))
	w.vec(m.BoundsMin)
	w.vec(m.BoundsMax)

	// Counts
	w.u32(uint32(len(m.Vertices)))
	w.u32(uint32(len(m.Triangles)))
	w.u32(uint32(len(m.Bones)))
	w.u32(uint32(len(m.Sequences)))
	w.u32(uint32(len(m.Textures)))

	for _, v := range m.Vertices {
		w.raw([]byte{v.X, v.Y, v.Z, v.NormalIndex})
	}

	for _, t := range m.Triangles {
		if t.FaceFront {
			w.u32(1)
		} else {
			w.u32(0)
		}
		w.u32(t.Indices[0])
		w.u32(t.Indices[1])
		w.u32(t.Indices[2])
	}

	for _, b := range m.Bones {
		w.name(b.Name, BoneNameLen)
		w.i32(b.Parent)
		w.u32(b.Flags)
		w.vec(b.Position)
		w.vec(b.Rotation)
	}

	for _, s := range m.Sequences {
		w.name(s.Name, SequenceNameLen)
		w.f32(s.FPS)
		w.u32(s.Flags)
		w.u32(s.Activity)
		w.u32(s.ActWeight)
		w.u32(s.NumEvents)
		w.u32(s.EventIndex)
		w.u32(s.NumFrames)
		w.u32(s.NumBlends)
		w.u32(s.AnimIndex)
		w.u32(s.MotionType)
		w.u32(s.MotionBone)
		w.vec(s.LinearMovement)
		w.u32(s.AutoMovePosIndex)
		w.u32(s.AutoMoveAngleIndex)
		w.vec(s.BBMin)
		w.vec(s.BBMax)
	}

	for _, t := range m.Textures {
		w.name(t.Name, TextureNameLen)
		w.u32(t.Flags)
		w.u32(t.Width)
		w.u32(t.Height)
		w.u32(t.Index)
	}

	return w.buf.Bytes()
}

// WriteFile encodes the model and writes it to path. The bytes go to a
// temporary file in the same directory first and are renamed into place on
// success, so an I/O failure never leaves a partial file at path.
func WriteFile(path string, m *Model) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("mdl: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".mdl-*")
	if err != nil {
		return fmt.Errorf("mdl: create temp in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(Encode(m))
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("mdl: write %s: %w", path, werr)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("mdl: rename to %s: %w", path, err)
	}
	return nil
}

// writer is the encoding mirror of the validator's reader: a little-endian
// cursor over a growing buffer.
type writer struct {
	buf bytes.Buffer
}

func newWriter(capacity int) *writer {
	w := &writer{}
	w.buf.Grow(capacity)
	return w
}

func (w *writer) raw(b []byte) {
	w.buf.Write(b)
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) i32(v int32) {
	w.u32(uint32(v))
}

func (w *writer) f32(v float32) {
	w.u32(math.Float32bits(v))
}

func (w *writer) vec(v [3]float32) {
	w.f32(v[0])
	w.f32(v[1])
	w.f32(v[2])
}

// name writes s into a fixed-width NUL-padded field, truncating past n.
func (w *writer) name(s string, n int) {
	b := make([]byte, n)
	copy(b, s)
	w.buf.Write(b)
}
