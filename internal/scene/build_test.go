package scene

import (
	"strings"
	"testing"

	"mdl-compiler/internal/mdl"
)

func cubeScene() *Scene {
	return &Scene{
		Name: "cube",
		Positions: [][3]float64{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Faces: [][]int{
			{0, 1, 2, 3}, // quad
			{4, 5, 6},
			{4, 6, 7},
		},
		Bones: []BoneDef{
			{Name: "root", Parent: -1},
			{Name: "child", Parent: 0, Position: [3]float32{0, 0, 1}},
		},
		Sequences: []SequenceDef{
			{Name: "walk", FPS: 24, Frames: 12},
		},
		Textures: []TextureDef{
			{Name: "cube.bmp", Width: 64, Height: 64},
		},
	}
}

func TestBuild_Counts(t *testing.T) {
	m, err := Build(cubeScene())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(m.Vertices) != 8 {
		t.Errorf("vertices = %d, want 8", len(m.Vertices))
	}
	// The quad splits into two triangles.
	if len(m.Triangles) != 4 {
		t.Errorf("triangles = %d, want 4", len(m.Triangles))
	}
	if len(m.Bones) != 2 || len(m.Sequences) != 1 || len(m.Textures) != 1 {
		t.Errorf("bones/sequences/textures = %d/%d/%d",
			len(m.Bones), len(m.Sequences), len(m.Textures))
	}
}

func TestBuild_Bounds(t *testing.T) {
	m, err := Build(cubeScene())
	if err != nil {
		t.Fatal(err)
	}
	if m.BoundsMin != [3]float32{-1, -1, -1} || m.BoundsMax != [3]float32{1, 1, 1} {
		t.Errorf("bounds = %v .. %v", m.BoundsMin, m.BoundsMax)
	}
}

func TestBuild_QuantizedByConstruction(t *testing.T) {
	m, err := Build(cubeScene())
	if err != nil {
		t.Fatal(err)
	}

	// Corner vertices land on the lattice extremes.
	if v := m.Vertices[0]; v.X != 0 || v.Y != 0 || v.Z != 0 {
		t.Errorf("vertex 0 = %+v, want lattice origin", v)
	}
	if v := m.Vertices[6]; v.X != 255 || v.Y != 255 || v.Z != 255 {
		t.Errorf("vertex 6 = %+v, want lattice max", v)
	}
	for i, v := range m.Vertices {
		if int(v.NormalIndex) >= len(mdl.Anorms) {
			t.Errorf("vertex %d normal index %d out of range", i, v.NormalIndex)
		}
	}
}

func TestBuild_RoundTripsThroughCodec(t *testing.T) {
	m, err := Build(cubeScene())
	if err != nil {
		t.Fatal(err)
	}

	res := mdl.Validate(mdl.Encode(m))
	if !res.Valid {
		t.Fatalf("built model fails validation: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("built model draws warnings: %v", res.Warnings)
	}
}

func TestBuild_SequenceDefaults(t *testing.T) {
	s := cubeScene()
	s.Sequences = []SequenceDef{{Name: "pose", Frames: 1}}

	m, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	q := m.Sequences[0]
	if q.FPS != 30 {
		t.Errorf("fps = %v, want default 30", q.FPS)
	}
	if q.Activity != 1 || q.ActWeight != 1 || q.NumBlends != 1 {
		t.Errorf("defaults = activity %d, weight %d, blends %d", q.Activity, q.ActWeight, q.NumBlends)
	}
	if q.BBMin != m.BoundsMin || q.BBMax != m.BoundsMax {
		t.Errorf("sequence bbox %v..%v, want model bounds", q.BBMin, q.BBMax)
	}
}

func TestBuild_NameTruncation(t *testing.T) {
	s := cubeScene()
	s.Name = strings.Repeat("n", 100)
	s.Bones[0].Name = strings.Repeat("b", 40)

	m, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Name) != mdl.ModelNameLen {
		t.Errorf("model name len = %d, want %d", len(m.Name), mdl.ModelNameLen)
	}
	if len(m.Bones[0].Name) != mdl.BoneNameLen {
		t.Errorf("bone name len = %d, want %d", len(m.Bones[0].Name), mdl.BoneNameLen)
	}
}

func TestBuild_RejectsBadFaces(t *testing.T) {
	tests := []struct {
		name string
		face []int
		want string
	}{
		{"too few vertices", []int{0, 1}, "has 2 vertices"},
		{"too many vertices", []int{0, 1, 2, 3, 4}, "has 5 vertices"},
		{"index out of range", []int{0, 1, 99}, "references vertex 99"},
		{"negative index", []int{0, 1, -1}, "references vertex -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cubeScene()
			s.Faces = append(s.Faces, tt.face)
			_, err := Build(s)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestBuild_RejectsForwardBoneReference(t *testing.T) {
	s := cubeScene()
	s.Bones = []BoneDef{
		{Name: "a", Parent: 1},
		{Name: "b", Parent: -1},
	}
	_, err := Build(s)
	if err == nil || !strings.Contains(err.Error(), "earlier bone") {
		t.Errorf("err = %v", err)
	}

	s.Bones = []BoneDef{{Name: "self", Parent: 0}}
	if _, err := Build(s); err == nil {
		t.Error("self-referencing bone accepted")
	}
}

func TestBuild_EmptyScene(t *testing.T) {
	m, err := Build(&Scene{Name: "nothing"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Vertices) != 0 || len(m.Triangles) != 0 {
		t.Error("empty scene produced geometry")
	}
	if m.BoundsMin != m.BoundsMax {
		t.Errorf("empty bounds = %v..%v", m.BoundsMin, m.BoundsMax)
	}
}
