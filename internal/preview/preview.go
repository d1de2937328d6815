// Package preview exports a JSON summary of a built model: counts, bounds,
// and truncated samples. It is a derived artifact for inspection tooling;
// nothing reads it back.
package preview

import (
	"encoding/json"
	"fmt"
	"os"

	"mdl-compiler/internal/mdl"
)

// sampleLimit caps the vertex and triangle samples so previews of large
// models stay small.
const sampleLimit = 100

type vertexEntry struct {
	X      uint8 `json:"x"`
	Y      uint8 `json:"y"`
	Z      uint8 `json:"z"`
	Normal uint8 `json:"normal"`
}

type triangleEntry struct {
	FaceFront bool      `json:"face_front"`
	Indices   [3]uint32 `json:"indices"`
}

type boneEntry struct {
	Name     string     `json:"name"`
	Parent   int32      `json:"parent"`
	Position [3]float32 `json:"position"`
}

type sequenceEntry struct {
	Name   string  `json:"name"`
	FPS    float32 `json:"fps"`
	Frames uint32  `json:"frames"`
}

type textureEntry struct {
	Name   string `json:"name"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

type document struct {
	ModelName     string          `json:"model_name"`
	BoundsMin     [3]float32      `json:"bounds_min"`
	BoundsMax     [3]float32      `json:"bounds_max"`
	VertexCount   int             `json:"vertex_count"`
	TriangleCount int             `json:"triangle_count"`
	BoneCount     int             `json:"bone_count"`
	SequenceCount int             `json:"sequence_count"`
	TextureCount  int             `json:"texture_count"`
	Vertices      []vertexEntry   `json:"vertices"`
	Triangles     []triangleEntry `json:"triangles"`
	Bones         []boneEntry     `json:"bones"`
	Sequences     []sequenceEntry `json:"sequences"`
	Textures      []textureEntry  `json:"textures"`
}

// Marshal renders the preview document for a model.
func Marshal(m *mdl.Model) ([]byte, error) {
	doc := document{
		ModelName:     m.Name,
		BoundsMin:     m.BoundsMin,
		BoundsMax:     m.BoundsMax,
		VertexCount:   len(m.Vertices),
		TriangleCount: len(m.Triangles),
		BoneCount:     len(m.Bones),
		SequenceCount: len(m.Sequences),
		TextureCount:  len(m.Textures),
		Vertices:      make([]vertexEntry, 0, min(len(m.Vertices), sampleLimit)),
		Triangles:     make([]triangleEntry, 0, min(len(m.Triangles), sampleLimit)),
		Bones:         make([]boneEntry, 0, len(m.Bones)),
		Sequences:     make([]sequenceEntry, 0, len(m.Sequences)),
		Textures:      make([]textureEntry, 0, len(m.Textures)),
	}

	for _, v := range m.Vertices[:min(len(m.Vertices), sampleLimit)] {
		doc.Vertices = append(doc.Vertices, vertexEntry{v.X, v.Y, v.Z, v.NormalIndex})
	}
	for _, t := range m.Triangles[:min(len(m.Triangles), sampleLimit)] {
		doc.Triangles = append(doc.Triangles, triangleEntry{t.FaceFront, t.Indices})
	}
	for _, b := range m.Bones {
		doc.Bones = append(doc.Bones, boneEntry{b.Name, b.Parent, b.Position})
	}
	for _, s := range m.Sequences {
		doc.Sequences = append(doc.Sequences, sequenceEntry{s.Name, s.FPS, s.NumFrames})
	}
	for _, t := range m.Textures {
		doc.Textures = append(doc.Textures, textureEntry{t.Name, t.Width, t.Height})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Write saves the preview document to path.
func Write(path string, m *mdl.Model) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("preview: marshal %s: %w", m.Name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("preview: write %s: %w", path, err)
	}
	return nil
}
