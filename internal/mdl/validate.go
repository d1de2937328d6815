package mdl

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// minFileSize is the smallest buffer worth parsing: anything under this
// cannot hold a complete header.
const minFileSize = 100

// Result is the outcome of validating one model buffer. Valid is true
// exactly when Errors is empty; warnings never affect the verdict. Info
// carries structural facts extracted along the way (counts, names, bounds).
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Info     map[string]any
}

// ValidateFile reads path and validates its contents.
func ValidateFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{
			Errors: []string{fmt.Sprintf("cannot read file: %v", err)},
			Info:   map[string]any{},
		}
	}
	return Validate(data)
}

// Validate checks a complete MDL byte buffer against the format contract
// and the CS 1.6 engine limits. It never panics on malformed input: every
// problem is collected as an error (invalidates the file) or a warning
// (quality concern). Stages run in order and stop early only when the
// buffer can no longer be trusted structurally; diagnostics gathered before
// the stop are always returned.
func Validate(data []byte) Result {
	v := &validator{
		r:    &reader{data: data},
		info: map[string]any{"file_size": len(data)},
	}
	v.run()
	return Result{
		Valid:    len(v.errors) == 0,
		Errors:   v.errors,
		Warnings: v.warnings,
		Info:     v.info,
	}
}

type validator struct {
	r        *reader
	errors   []string
	warnings []string
	info     map[string]any

	vertexCount   int
	triangleCount int
	boneCount     int
	sequenceCount int
	textureCount  int
}

func (v *validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) run() {
	if len(v.r.data) < minFileSize {
		v.errorf("MDL file too small (%d bytes, minimum %d)", len(v.r.data), minFileSize)
		return
	}
	if !v.header() {
		return
	}
	if !v.counts() {
		return
	}
	v.sections()
}

// header parses magic, version, name, and bounds. Magic or version mismatch
// is fatal; everything else downgrades to warnings to tolerate sloppy
// producers.
func (v *validator) header() bool {
	magic := string(v.r.bytes(4))
	if magic != Magic {
		v.errorf("invalid magic %q (expected %q)", magic, Magic)
		return false
	}
	v.info["magic"] = magic

	version := v.r.u32()
	if version != Version {
		v.errorf("invalid version %d (expected %d)", version, Version)
		return false
	}
	v.info["version"] = int(version)

	name := cstring(v.r.bytes(ModelNameLen))
	v.info["model_name"] = name
	if name == "" {
		v.warnf("model name is empty")
	}

	nameLen := int(v.r.u32())
	v.info["name_length"] = nameLen
	if nameLen != len(name) {
		v.warnf("name length mismatch: header says %d, decoded %d", nameLen, len(name))
	}

	bmin := v.r.vec()
	bmax := v.r.vec()
	v.info["bounds_min"] = bmin
	v.info["bounds_max"] = bmax
	for i := 0; i < 3; i++ {
		if bmin[i] >= bmax[i] {
			v.warnf("invalid bounding box: min[%d] >= max[%d]", i, i)
		}
	}
	return true
}

// counts reads the five section counts and checks each against its engine
// ceiling. The checks are independent: one ceiling violation does not mask
// another. Sequences and textures have no approaching-limit warning tier;
// the reference validator treats them as fatal-only and that asymmetry is
// kept deliberately.
func (v *validator) counts() bool {
	if v.r.remaining() < 20 {
		v.errorf("truncated file: %d bytes left for section counts (need 20)", v.r.remaining())
		return false
	}

	v.vertexCount = int(v.r.u32())
	v.triangleCount = int(v.r.u32())
	v.boneCount = int(v.r.u32())
	v.sequenceCount = int(v.r.u32())
	v.textureCount = int(v.r.u32())

	v.info["vertex_count"] = v.vertexCount
	v.info["triangle_count"] = v.triangleCount
	v.info["bone_count"] = v.boneCount
	v.info["sequence_count"] = v.sequenceCount
	v.info["texture_count"] = v.textureCount

	v.checkCeiling("vertices", "vertex", v.vertexCount, MaxVertices, true)
	v.checkCeiling("triangles", "triangle", v.triangleCount, MaxTriangles, true)
	v.checkCeiling("bones", "bone", v.boneCount, MaxBones, true)
	v.checkCeiling("sequences", "sequence", v.sequenceCount, MaxSequences, false)
	v.checkCeiling("textures", "texture", v.textureCount, MaxTextures, false)

	if v.vertexCount == 0 {
		v.warnf("model has no vertices")
	}
	if v.triangleCount == 0 {
		v.warnf("model has no triangles")
	}
	return true
}

func (v *validator) checkCeiling(plural, singular string, n, ceiling int, warnTier bool) {
	if n > ceiling {
		v.errorf("too many %s: %d (max %d)", plural, n, ceiling)
	} else if warnTier && n > ceiling*4/5 {
		v.warnf("high %s count: %d (approaching limit of %d)", singular, n, ceiling)
	}
}

// sections walks the five data sections in file order. Once a section
// underflows the buffer, later offsets are meaningless and processing stops.
func (v *validator) sections() {
	if !v.vertexSection() {
		return
	}
	if !v.triangleSection() {
		return
	}
	if !v.boneSection() {
		return
	}
	if !v.sequenceSection() {
		return
	}
	v.textureSection()
}

func (v *validator) vertexSection() bool {
	if v.vertexCount == 0 {
		return true
	}
	data, ok := v.r.section(v.vertexCount * VertexSize)
	if !ok {
		v.errorf("insufficient vertex data: %d bytes (expected %d)",
			v.r.remaining(), v.vertexCount*VertexSize)
		return false
	}

	// Coordinate bytes are in range by width; only the normal index can be
	// bad. Problems aggregate into one warning to keep diagnostics bounded.
	invalid := 0
	for i := 0; i < v.vertexCount; i++ {
		if data[i*VertexSize+3] >= uint8(len(Anorms)) {
			invalid++
		}
	}
	if invalid > 0 {
		v.warnf("%d vertices have an out-of-range normal index", invalid)
	}
	return true
}

func (v *validator) triangleSection() bool {
	if v.triangleCount == 0 {
		return true
	}
	data, ok := v.r.section(v.triangleCount * TriangleSize)
	if !ok {
		v.errorf("insufficient triangle data: %d bytes (expected %d)",
			v.r.remaining(), v.triangleCount*TriangleSize)
		return false
	}

	invalid := 0
	for i := 0; i < v.triangleCount; i++ {
		rec := data[i*TriangleSize:]
		i1 := binary.LittleEndian.Uint32(rec[4:])
		i2 := binary.LittleEndian.Uint32(rec[8:])
		i3 := binary.LittleEndian.Uint32(rec[12:])

		if int(i1) >= v.vertexCount || int(i2) >= v.vertexCount || int(i3) >= v.vertexCount {
			invalid++
		}
		if i1 == i2 || i2 == i3 || i1 == i3 {
			invalid++ // degenerate: zero surface area
		}
	}
	if invalid > 0 {
		v.warnf("%d triangles have invalid vertex indices", invalid)
	}
	return true
}

func (v *validator) boneSection() bool {
	if v.boneCount == 0 {
		return true
	}
	data, ok := v.r.section(v.boneCount * BoneSize)
	if !ok {
		v.errorf("insufficient bone data: %d bytes (expected %d)",
			v.r.remaining(), v.boneCount*BoneSize)
		return false
	}

	invalid := 0
	names := make([]string, v.boneCount)
	seen := make(map[string]bool, v.boneCount)
	duplicates := false
	for i := 0; i < v.boneCount; i++ {
		rec := data[i*BoneSize:]
		names[i] = cstring(rec[:BoneNameLen])
		if seen[names[i]] {
			duplicates = true
		}
		seen[names[i]] = true

		parent := int(int32(binary.LittleEndian.Uint32(rec[BoneNameLen:])))
		if parent >= i && parent != -1 {
			invalid++ // forward or self reference
		}
		if parent < -1 || parent >= v.boneCount {
			invalid++
		}
	}
	if invalid > 0 {
		v.warnf("%d bones have invalid parent references", invalid)
	}
	if duplicates {
		v.warnf("duplicate bone names detected")
	}
	v.info["bone_names"] = names
	return true
}

func (v *validator) sequenceSection() bool {
	if v.sequenceCount == 0 {
		return true
	}
	data, ok := v.r.section(v.sequenceCount * SequenceSize)
	if !ok {
		v.errorf("insufficient sequence data: %d bytes (expected %d)",
			v.r.remaining(), v.sequenceCount*SequenceSize)
		return false
	}

	invalid := 0
	names := make([]string, v.sequenceCount)
	for i := 0; i < v.sequenceCount; i++ {
		rec := data[i*SequenceSize:]
		names[i] = cstring(rec[:SequenceNameLen])

		fps := math.Float32frombits(binary.LittleEndian.Uint32(rec[32:]))
		numFrames := binary.LittleEndian.Uint32(rec[60:])

		if !(fps > 0 && fps <= 120) {
			invalid++
		}
		if numFrames == 0 {
			invalid++ // static pose; tolerated but worth flagging
		}
	}
	if invalid > 0 {
		v.warnf("%d sequences have invalid parameters", invalid)
	}
	v.info["sequence_names"] = names
	return true
}

func (v *validator) textureSection() bool {
	if v.textureCount == 0 {
		return true
	}
	data, ok := v.r.section(v.textureCount * TextureSize)
	if !ok {
		v.errorf("insufficient texture data: %d bytes (expected %d)",
			v.r.remaining(), v.textureCount*TextureSize)
		return false
	}

	invalid := 0
	names := make([]string, v.textureCount)
	for i := 0; i < v.textureCount; i++ {
		rec := data[i*TextureSize:]
		names[i] = cstring(rec[:TextureNameLen])

		width := binary.LittleEndian.Uint32(rec[68:])
		height := binary.LittleEndian.Uint32(rec[72:])

		if width == 0 || height == 0 {
			invalid++
		}
		if !isPowerOfTwo(width) || !isPowerOfTwo(height) {
			invalid++
		}
		if width > 512 || height > 512 || width < 16 || height < 16 {
			invalid++
		}
	}
	if invalid > 0 {
		v.warnf("%d textures have invalid dimensions", invalid)
	}
	v.info["texture_names"] = names
	return true
}

func isPowerOfTwo(n uint32) bool {
	return n > 0 && n&(n-1) == 0
}

// cstring decodes a fixed-width NUL-padded name field.
func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// reader is a little-endian cursor over the raw buffer. Callers gate every
// read: header reads sit inside the minimum-size region, and section reads
// go through section which checks the remaining length first.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) bytes(n int) []byte {
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u32() uint32 {
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *reader) vec() [3]float32 {
	return [3]float32{r.f32(), r.f32(), r.f32()}
}

func (r *reader) section(n int) ([]byte, bool) {
	if r.remaining() < n {
		return nil, false
	}
	return r.bytes(n), true
}
