package scene

import (
	"fmt"
	"math"

	"mdl-compiler/internal/mdl"
)

// Build assembles an MDL model from an importer hand-off. The result is
// in-range by construction: positions are quantized against the computed
// bounds and normals go through the anorm table. Engine ceilings are not
// enforced here; that is the validator's job.
func Build(s *Scene) (*mdl.Model, error) {
	m := &mdl.Model{Name: truncate(s.Name, mdl.ModelNameLen)}

	boundsMin, boundsMax := bounds(s.Positions)
	m.BoundsMin = boundsMin
	m.BoundsMax = boundsMax

	tris, err := triangulate(s.Faces, len(s.Positions))
	if err != nil {
		return nil, err
	}

	normals := vertexNormals(s.Positions, tris)
	m.Vertices = make([]mdl.Vertex, len(s.Positions))
	for i, p := range s.Positions {
		pos := [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
		x, y, z := mdl.QuantizePosition(pos, boundsMin, boundsMax)
		m.Vertices[i] = mdl.Vertex{
			X: x, Y: y, Z: z,
			NormalIndex: uint8(mdl.ClosestNormal(normals[i])),
		}
	}

	m.Triangles = make([]mdl.Triangle, len(tris))
	for i, t := range tris {
		m.Triangles[i] = mdl.Triangle{FaceFront: true, Indices: t}
	}

	m.Bones = make([]mdl.Bone, len(s.Bones))
	for i, b := range s.Bones {
		if b.Parent != -1 && (b.Parent < 0 || b.Parent >= i) {
			return nil, fmt.Errorf("scene: bone %d (%q) parent %d does not reference an earlier bone",
				i, b.Name, b.Parent)
		}
		m.Bones[i] = mdl.Bone{
			Name:     truncate(b.Name, mdl.BoneNameLen),
			Parent:   int32(b.Parent),
			Flags:    b.Flags,
			Position: b.Position,
			Rotation: b.Rotation,
		}
	}

	m.Sequences = make([]mdl.Sequence, len(s.Sequences))
	for i, q := range s.Sequences {
		m.Sequences[i] = mdl.Sequence{
			Name:           truncate(q.Name, mdl.SequenceNameLen),
			FPS:            defaultF32(q.FPS, 30),
			Flags:          q.Flags,
			Activity:       uint32(defaultInt(q.Activity, 1)),
			ActWeight:      uint32(defaultInt(q.ActWeight, 1)),
			NumFrames:      uint32(q.Frames),
			NumBlends:      1,
			MotionType:     q.MotionType,
			MotionBone:     q.MotionBone,
			LinearMovement: q.Movement,
			BBMin:          boundsMin,
			BBMax:          boundsMax,
		}
	}

	m.Textures = make([]mdl.Texture, len(s.Textures))
	for i, t := range s.Textures {
		m.Textures[i] = mdl.Texture{
			Name:   truncate(t.Name, mdl.TextureNameLen),
			Flags:  t.Flags,
			Width:  uint32(t.Width),
			Height: uint32(t.Height),
			Index:  uint32(i),
		}
	}

	return m, nil
}

// bounds computes the axis-aligned extent of all positions. An empty scene
// gets a zero box.
func bounds(positions [][3]float64) ([3]float32, [3]float32) {
	if len(positions) == 0 {
		return [3]float32{}, [3]float32{}
	}
	lo, hi := positions[0], positions[0]
	for _, p := range positions[1:] {
		for a := 0; a < 3; a++ {
			if p[a] < lo[a] {
				lo[a] = p[a]
			}
			if p[a] > hi[a] {
				hi[a] = p[a]
			}
		}
	}
	return f32(lo), f32(hi)
}

// triangulate expands the face list into triangles, splitting quads as
// 0-1-2 and 0-2-3. Faces with any other arity, or indices outside the
// position list, reject the whole scene.
func triangulate(faces [][]int, numVerts int) ([][3]uint32, error) {
	var tris [][3]uint32
	for i, face := range faces {
		for _, idx := range face {
			if idx < 0 || idx >= numVerts {
				return nil, fmt.Errorf("scene: face %d references vertex %d (have %d)", i, idx, numVerts)
			}
		}
		switch len(face) {
		case 3:
			tris = append(tris, [3]uint32{uint32(face[0]), uint32(face[1]), uint32(face[2])})
		case 4:
			tris = append(tris,
				[3]uint32{uint32(face[0]), uint32(face[1]), uint32(face[2])},
				[3]uint32{uint32(face[0]), uint32(face[2]), uint32(face[3])})
		default:
			return nil, fmt.Errorf("scene: face %d has %d vertices (want 3 or 4)", i, len(face))
		}
	}
	return tris, nil
}

// vertexNormals accumulates area-weighted face normals per vertex. Vertices
// untouched by any face keep the up normal.
func vertexNormals(positions [][3]float64, tris [][3]uint32) [][3]float32 {
	acc := make([][3]float64, len(positions))
	for _, t := range tris {
		p0, p1, p2 := positions[t[0]], positions[t[1]], positions[t[2]]
		n := cross(sub(p1, p0), sub(p2, p0))
		for _, vi := range t {
			for a := 0; a < 3; a++ {
				acc[vi][a] += n[a]
			}
		}
	}

	out := make([][3]float32, len(positions))
	for i, n := range acc {
		l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l < 1e-12 {
			out[i] = [3]float32{0, 0, 1}
			continue
		}
		out[i] = f32([3]float64{n[0] / l, n[1] / l, n[2] / l})
	}
	return out
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func f32(v [3]float64) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func defaultF32(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}
