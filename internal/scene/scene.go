// Package scene reads the flat hand-off document produced by the external
// 3D importer: world-space positions, face index lists, a bone hierarchy,
// clip metadata, and final texture descriptors. Everything upstream of this
// document (FBX parsing, armature extraction, image work) happens outside
// this tool.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// BoneDef is one bone as delivered by the importer.
type BoneDef struct {
	Name     string     `json:"name"`
	Parent   int        `json:"parent"`
	Flags    uint32     `json:"flags"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
}

// SequenceDef is one animation clip as delivered by the importer. Fields
// left zero fall back to the builder's defaults.
type SequenceDef struct {
	Name       string     `json:"name"`
	FPS        float32    `json:"fps"`
	Frames     int        `json:"frames"`
	Flags      uint32     `json:"flags"`
	Activity   int        `json:"activity"`
	ActWeight  int        `json:"act_weight"`
	MotionType uint32     `json:"motion_type"`
	MotionBone uint32     `json:"motion_bone"`
	Movement   [3]float32 `json:"linear_movement"`
}

// TextureDef carries the final texture facts: the image pipeline has already
// run, only name/dimensions/flags reach the model file.
type TextureDef struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Flags  uint32 `json:"flags"`
}

// Scene is the complete importer hand-off. Faces hold three indices for a
// triangle or four for a quad.
type Scene struct {
	Name      string        `json:"name"`
	Positions [][3]float64  `json:"positions"`
	Faces     [][]int       `json:"faces"`
	Bones     []BoneDef     `json:"bones"`
	Sequences []SequenceDef `json:"sequences"`
	Textures  []TextureDef  `json:"textures"`
}

// Load reads a scene document from a JSON file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	return &s, nil
}
