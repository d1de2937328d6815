package mdl

// Format constants for GoldSrc-style MDL files.
const (
	Magic   = "IDPO"
	Version = 6

	// Engine ceilings (CS 1.6).
	MaxVertices  = 2048
	MaxTriangles = 2048
	MaxBones     = 128
	MaxSequences = 32
	MaxTextures  = 32

	// Fixed name field widths in bytes.
	ModelNameLen    = 64
	BoneNameLen     = 32
	SequenceNameLen = 32
	TextureNameLen  = 64

	// Record sizes in bytes.
	VertexSize   = 4
	TriangleSize = 16
	BoneSize     = 56
	SequenceSize = 176
	TextureSize  = 80

	// HeaderSize covers magic through the five counts.
	HeaderSize = 120
)

// Vertex is one compressed vertex record: byte coordinates on the model's
// bounding-box lattice plus an index into the anorm table.
type Vertex struct {
	X, Y, Z     uint8
	NormalIndex uint8
}

// Triangle references three vertices by index. FaceFront marks front-facing
// geometry and is stored as a full 32-bit word on disk.
type Triangle struct {
	FaceFront bool
	Indices   [3]uint32
}

// Bone is one node of the skeleton hierarchy. Parent is -1 for roots and
// must reference an earlier bone otherwise.
type Bone struct {
	Name     string
	Parent   int32
	Flags    uint32
	Position [3]float32
	Rotation [3]float32
}

// Sequence describes one animation clip.
type Sequence struct {
	Name               string
	FPS                float32
	Flags              uint32
	Activity           uint32
	ActWeight          uint32
	NumEvents          uint32
	EventIndex         uint32
	NumFrames          uint32
	NumBlends          uint32
	AnimIndex          uint32
	MotionType         uint32
	MotionBone         uint32
	LinearMovement     [3]float32
	AutoMovePosIndex   uint32
	AutoMoveAngleIndex uint32
	BBMin              [3]float32
	BBMax              [3]float32
}

// Texture describes one texture slot. Width and height are expected to be
// powers of two within [16,512]; the validator checks, the encoder does not.
type Texture struct {
	Name   string
	Flags  uint32
	Width  uint32
	Height uint32
	Index  uint32
}

// Model is a complete in-memory model, built once per conversion run and
// immutable afterwards.
type Model struct {
	Name      string
	BoundsMin [3]float32
	BoundsMax [3]float32
	Vertices  []Vertex
	Triangles []Triangle
	Bones     []Bone
	Sequences []Sequence
	Textures  []Texture
}
