// Package meshing is the Mesh Builder (spec C5): face-culled extraction
// of a chunk's block grid into three renderable vertex/index streams
// (solid, transparent, fluid). It has no dependency on voxelworld —
// callers supply a BlockSource so the package stays reusable for any
// 16x256x16 voxel grid, including test fixtures.
//
// Grounded on the teacher's per-direction extraction loop in
// internal/meshing/greedy.go (BuildGreedyMeshForChunk /
// buildGreedyForDirection), generalized to three output streams and the
// float32 interleaved vertex layout the wire format in spec §6 requires
// instead of the teacher's packed-uint32 renderer-specific encoding.
package meshing

import (
	"sailworld/internal/profiling"
	"sailworld/internal/registry"
)

const (
	SizeX = 16
	SizeY = 256
	SizeZ = 16
)

// BlockSource resolves a block id at a chunk-local coordinate, extending
// one block past [0,SizeX)x[0,SizeY)x[0,SizeZ) into the chunk's
// neighbors so face culling is correct at chunk borders.
type BlockSource interface {
	BlockAt(x, y, z int) registry.BlockID
	LightAt(x, y, z int) uint8
}

// Buffer is one output stream: interleaved vertices (44-byte stride —
// position 3xf32, normal 3xf32, uv 2xf32, color 3xf32) plus a triangle
// index list.
type Buffer struct {
	Vertices []float32
	Indices  []uint32
}

func (b *Buffer) pushQuad(positions [4][3]float32, normal [3]float32, uvs [4][2]float32, color [3]float32) {
	base := uint32(len(b.Vertices) / 11)
	for i, p := range positions {
		b.Vertices = append(b.Vertices,
			p[0], p[1], p[2],
			normal[0], normal[1], normal[2],
			uvs[i][0], uvs[i][1],
			color[0], color[1], color[2],
		)
	}
	// CCW winding as seen from outside the face (spec §4.5).
	b.Indices = append(b.Indices,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}

// direction is one of the six axis-aligned face normals, with the
// in-plane tangent/bitangent used to build a quad's four corners.
type direction struct {
	normal        [3]float32
	dx, dy, dz    int
	corners       [4][3]float32
}

var directions = [6]direction{
	{normal: [3]float32{1, 0, 0}, dx: 1, dy: 0, dz: 0, corners: [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{normal: [3]float32{-1, 0, 0}, dx: -1, dy: 0, dz: 0, corners: [4][3]float32{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}}},
	{normal: [3]float32{0, 1, 0}, dx: 0, dy: 1, dz: 0, corners: [4][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{normal: [3]float32{0, -1, 0}, dx: 0, dy: -1, dz: 0, corners: [4][3]float32{{0, 0, 1}, {0, 0, 0}, {1, 0, 0}, {1, 0, 1}}},
	{normal: [3]float32{0, 0, 1}, dx: 0, dy: 0, dz: 1, corners: [4][3]float32{{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}}},
	{normal: [3]float32{0, 0, -1}, dx: 0, dy: 0, dz: -1, corners: [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
}

var quadUV = [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

// classifyFace decides, for a face between `self` and its neighbor
// `other`, whether that face should be emitted and into which stream
// (spec §4.5):
//   - a solid face is culled if the neighbor is opaque solid; otherwise
//     it renders into the solid stream.
//   - a fluid face renders only against non-fluid, non-solid neighbors
//     (so fluid never emits faces against itself, avoiding overdraw
//     between adjacent water voxels).
//   - a transparent (non-fluid) block renders against air and against a
//     different transparent block kind, but not against an identical one
//     (so e.g. adjacent leaves don't render interior faces).
type streamSet struct {
	Solid       Buffer
	Transparent Buffer
	Fluid       Buffer
}

// classifyFace uses the rules documented above to decide whether the
// face self->other is visible and which stream it belongs to.
func classifyFace(self, other registry.BlockID) (emit bool, target func(*streamSet) *Buffer) {
	selfOp := registry.OpacityOf(self)
	otherOp := registry.OpacityOf(other)
	selfFluid := registry.IsFluid(self)
	otherFluid := registry.IsFluid(other)

	if self == registry.Air {
		return false, nil
	}

	switch {
	case selfFluid:
		if otherFluid || otherOp == registry.OpacityOpaque {
			return false, nil
		}
		return true, func(s *streamSet) *Buffer { return &s.Fluid }
	case selfOp == registry.OpacityOpaque:
		if otherOp == registry.OpacityOpaque {
			return false, nil
		}
		return true, func(s *streamSet) *Buffer { return &s.Solid }
	case selfOp == registry.OpacityTransparent:
		if other == self {
			return false, nil
		}
		if otherOp == registry.OpacityOpaque {
			return false, nil
		}
		return true, func(s *streamSet) *Buffer { return &s.Transparent }
	default:
		return false, nil
	}
}

func faceColor(id registry.BlockID, light uint8) [3]float32 {
	tint := registry.Tint(id)
	if tint == ([3]float32{}) {
		tint = [3]float32{1, 1, 1}
	}
	sky := float32(light>>4) / 15.0
	block := float32(light&0x0F) / 15.0
	brightness := sky
	if block > brightness {
		brightness = block
	}
	brightness = 0.2 + 0.8*brightness
	return [3]float32{tint[0] * brightness, tint[1] * brightness, tint[2] * brightness}
}

// Build extracts a chunk's visible faces into three streams. One quad is
// emitted per exposed voxel face (face culling without 2D run merging);
// see DESIGN.md for why full greedy run-merging was out of scope here.
func Build(src BlockSource) (solid, transparent, fluid Buffer) {
	defer profiling.Track("meshing.Build")()
	set := &streamSet{}
	for x := 0; x < SizeX; x++ {
		for y := 0; y < SizeY; y++ {
			for z := 0; z < SizeZ; z++ {
				self := src.BlockAt(x, y, z)
				if self == registry.Air {
					continue
				}
				light := src.LightAt(x, y, z)
				color := faceColor(self, light)

				for _, d := range directions {
					other := src.BlockAt(x+d.dx, y+d.dy, z+d.dz)
					emit, target := classifyFace(self, other)
					if !emit {
						continue
					}
					var positions [4][3]float32
					for i, c := range d.corners {
						positions[i] = [3]float32{
							float32(x) + c[0],
							float32(y) + c[1],
							float32(z) + c[2],
						}
					}
					target(set).pushQuad(positions, d.normal, quadUV, color)
				}
			}
		}
	}
	return set.Solid, set.Transparent, set.Fluid
}
