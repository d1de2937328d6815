package mdl

import (
	"encoding/binary"
	"strings"
	"testing"
)

func patchU32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:], v)
}

func hasDiagnostic(list []string, substr string) bool {
	for _, d := range list {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

func TestValidate_RoundTrip(t *testing.T) {
	m := testModel()
	res := Validate(Encode(m))

	if !res.Valid {
		t.Fatalf("round trip invalid, errors: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}

	if got := res.Info["model_name"]; got != m.Name {
		t.Errorf("model_name = %v, want %q", got, m.Name)
	}
	if got := res.Info["vertex_count"]; got != len(m.Vertices) {
		t.Errorf("vertex_count = %v, want %d", got, len(m.Vertices))
	}
	if got := res.Info["triangle_count"]; got != len(m.Triangles) {
		t.Errorf("triangle_count = %v, want %d", got, len(m.Triangles))
	}
	if got := res.Info["bone_count"]; got != len(m.Bones) {
		t.Errorf("bone_count = %v, want %d", got, len(m.Bones))
	}
	if got := res.Info["sequence_count"]; got != len(m.Sequences) {
		t.Errorf("sequence_count = %v, want %d", got, len(m.Sequences))
	}
	if got := res.Info["texture_count"]; got != len(m.Textures) {
		t.Errorf("texture_count = %v, want %d", got, len(m.Textures))
	}
	if got := res.Info["bounds_min"].([3]float32); got != m.BoundsMin {
		t.Errorf("bounds_min = %v, want %v", got, m.BoundsMin)
	}
	if got := res.Info["bounds_max"].([3]float32); got != m.BoundsMax {
		t.Errorf("bounds_max = %v, want %v", got, m.BoundsMax)
	}
	if names := res.Info["bone_names"].([]string); names[0] != "root" || names[1] != "lid" {
		t.Errorf("bone_names = %v", names)
	}
}

func TestValidate_TooSmall(t *testing.T) {
	res := Validate(make([]byte, 50))
	if res.Valid {
		t.Fatal("tiny buffer reported valid")
	}
	if !hasDiagnostic(res.Errors, "too small") {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestValidate_BadMagic(t *testing.T) {
	buf := Encode(testModel())
	copy(buf[0:4], "JUNK")

	res := Validate(buf)
	if res.Valid {
		t.Fatal("bad magic reported valid")
	}
	if !hasDiagnostic(res.Errors, "invalid magic") {
		t.Errorf("errors = %v", res.Errors)
	}
	// Fatal header failure stops everything downstream.
	if len(res.Errors) != 1 {
		t.Errorf("expected a single fatal error, got %v", res.Errors)
	}
}

func TestValidate_BadVersion(t *testing.T) {
	buf := Encode(testModel())
	patchU32(buf, 4, 99)

	res := Validate(buf)
	if res.Valid {
		t.Fatal("bad version reported valid")
	}
	if !hasDiagnostic(res.Errors, "invalid version") {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestValidate_VertexCeiling(t *testing.T) {
	// One past the ceiling must be fatal and name the section.
	buf := Encode(testModel())
	patchU32(buf, 100, MaxVertices+1)

	res := Validate(buf)
	if res.Valid {
		t.Fatal("over-ceiling count reported valid")
	}
	if !hasDiagnostic(res.Errors, "vertices") {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestValidate_ApproachingLimitWarning(t *testing.T) {
	m := testModel()
	m.Vertices = make([]Vertex, 1700) // > 80% of 2048
	m.Triangles = nil

	res := Validate(Encode(m))
	if !res.Valid {
		t.Fatalf("errors: %v", res.Errors)
	}
	if !hasDiagnostic(res.Warnings, "high vertex count") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_SequenceCeilingHasNoWarningTier(t *testing.T) {
	// 27 sequences is above 80% of 32 but must produce no approaching-limit
	// warning; only crossing the ceiling is diagnosed.
	m := testModel()
	m.Sequences = make([]Sequence, 27)
	for i := range m.Sequences {
		m.Sequences[i] = Sequence{Name: "seq", FPS: 30, NumFrames: 1}
	}

	res := Validate(Encode(m))
	if !res.Valid {
		t.Fatalf("errors: %v", res.Errors)
	}
	if hasDiagnostic(res.Warnings, "sequence count") {
		t.Errorf("unexpected approaching-limit warning: %v", res.Warnings)
	}
}

func TestValidate_EmptyModelIsWarningOnly(t *testing.T) {
	m := &Model{
		Name:      "empty",
		BoundsMin: [3]float32{-1, -1, -1},
		BoundsMax: [3]float32{1, 1, 1},
	}
	res := Validate(Encode(m))

	if !res.Valid {
		t.Fatalf("empty model reported invalid: %v", res.Errors)
	}
	if !hasDiagnostic(res.Warnings, "no vertices") {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if !hasDiagnostic(res.Warnings, "no triangles") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_EmptyNameAndInvertedBounds(t *testing.T) {
	m := testModel()
	m.Name = ""
	m.BoundsMin = [3]float32{5, 0, 0}
	m.BoundsMax = [3]float32{-5, 1, 1}

	res := Validate(Encode(m))
	if !res.Valid {
		t.Fatalf("errors: %v", res.Errors)
	}
	if !hasDiagnostic(res.Warnings, "name is empty") {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if !hasDiagnostic(res.Warnings, "min[0] >= max[0]") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_NameLengthMismatch(t *testing.T) {
	buf := Encode(testModel())
	patchU32(buf, 72, 63)

	res := Validate(buf)
	if !res.Valid {
		t.Fatalf("errors: %v", res.Errors)
	}
	if !hasDiagnostic(res.Warnings, "name length mismatch") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_BadNormalIndex(t *testing.T) {
	m := testModel()
	m.Vertices[2].NormalIndex = 200

	res := Validate(Encode(m))
	if !res.Valid {
		t.Fatalf("errors: %v", res.Errors)
	}
	if !hasDiagnostic(res.Warnings, "1 vertices have an out-of-range normal index") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_DegenerateTriangle(t *testing.T) {
	m := testModel()
	m.Triangles = []Triangle{{FaceFront: true, Indices: [3]uint32{0, 0, 1}}}

	res := Validate(Encode(m))
	if !res.Valid {
		t.Fatalf("errors: %v", res.Errors)
	}
	if !hasDiagnostic(res.Warnings, "triangles have invalid vertex indices") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_TriangleIndexOutOfRange(t *testing.T) {
	m := testModel()
	m.Triangles = []Triangle{{FaceFront: true, Indices: [3]uint32{0, 1, 99}}}

	res := Validate(Encode(m))
	if !hasDiagnostic(res.Warnings, "triangles have invalid vertex indices") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_ForwardBoneReference(t *testing.T) {
	m := testModel()
	m.Bones = []Bone{
		{Name: "a", Parent: 1}, // references a later bone
		{Name: "b", Parent: -1},
	}

	res := Validate(Encode(m))
	if !res.Valid {
		t.Fatalf("errors: %v", res.Errors)
	}
	if !hasDiagnostic(res.Warnings, "bones have invalid parent references") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_DuplicateBoneNames(t *testing.T) {
	m := testModel()
	m.Bones = []Bone{
		{Name: "root", Parent: -1},
		{Name: "root", Parent: 0},
	}

	res := Validate(Encode(m))
	if !hasDiagnostic(res.Warnings, "duplicate bone names") {
		t.Errorf("warnings = %v", res.Warnings)
	}
}

func TestValidate_SequenceParameters(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence
	}{
		{"zero fps", Sequence{Name: "s", FPS: 0, NumFrames: 5}},
		{"fps too high", Sequence{Name: "s", FPS: 500, NumFrames: 5}},
		{"zero frames", Sequence{Name: "s", FPS: 30, NumFrames: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel()
			m.Sequences = []Sequence{tt.seq}

			res := Validate(Encode(m))
			if !res.Valid {
				t.Fatalf("errors: %v", res.Errors)
			}
			if !hasDiagnostic(res.Warnings, "sequences have invalid parameters") {
				t.Errorf("warnings = %v", res.Warnings)
			}
		})
	}
}

func TestValidate_TextureDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
	}{
		{"zero", 0, 128},
		{"not power of two", 100, 128},
		{"too small", 8, 8},
		{"too large", 1024, 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel()
			m.Textures = []Texture{{Name: "t.bmp", Width: tt.width, Height: tt.height}}

			res := Validate(Encode(m))
			if !hasDiagnostic(res.Warnings, "textures have invalid dimensions") {
				t.Errorf("warnings = %v", res.Warnings)
			}
		})
	}
}

func TestValidate_TruncatedVertexSection(t *testing.T) {
	// Header declares four vertices but the buffer ends at the header.
	buf := Encode(testModel())[:HeaderSize]

	res := Validate(buf)
	if res.Valid {
		t.Fatal("truncated buffer reported valid")
	}
	if !hasDiagnostic(res.Errors, "insufficient vertex data") {
		t.Errorf("errors = %v", res.Errors)
	}
	// Later sections are unreachable; their diagnostics must not appear.
	if hasDiagnostic(res.Errors, "triangle data") {
		t.Errorf("unexpected later-section error: %v", res.Errors)
	}
}

func TestValidate_TruncatedMidSection(t *testing.T) {
	m := testModel()
	full := Encode(m)
	cut := HeaderSize + len(m.Vertices)*VertexSize + TriangleSize/2

	res := Validate(full[:cut])
	if res.Valid {
		t.Fatal("truncated buffer reported valid")
	}
	if !hasDiagnostic(res.Errors, "insufficient triangle data") {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestValidateFile_Missing(t *testing.T) {
	res := ValidateFile("definitely/not/here.mdl")
	if res.Valid {
		t.Fatal("missing file reported valid")
	}
	if !hasDiagnostic(res.Errors, "cannot read file") {
		t.Errorf("errors = %v", res.Errors)
	}
}
