package meshing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sailworld/internal/registry"
)

// fakeSource is a minimal BlockSource over a small sparse map, used to
// exercise face culling without depending on voxelworld.
type fakeSource struct {
	blocks map[[3]int]registry.BlockID
}

func newFakeSource() *fakeSource {
	return &fakeSource{blocks: make(map[[3]int]registry.BlockID)}
}

func (f *fakeSource) set(x, y, z int, id registry.BlockID) {
	f.blocks[[3]int{x, y, z}] = id
}

func (f *fakeSource) BlockAt(x, y, z int) registry.BlockID {
	if id, ok := f.blocks[[3]int{x, y, z}]; ok {
		return id
	}
	return registry.Air
}

func (f *fakeSource) LightAt(x, y, z int) uint8 { return 0xFF }

func TestSingleIsolatedSolidVoxelEmitsSixFaces(t *testing.T) {
	src := newFakeSource()
	src.set(5, 5, 5, registry.Stone)

	solid, transparent, fluid := Build(src)
	assert.Len(t, solid.Indices, 6*6) // 6 faces * 2 triangles * 3 indices
	assert.Empty(t, transparent.Indices)
	assert.Empty(t, fluid.Indices)
}

func TestTwoAdjacentSolidVoxelsCullSharedFace(t *testing.T) {
	src := newFakeSource()
	src.set(5, 5, 5, registry.Stone)
	src.set(6, 5, 5, registry.Stone)

	solid, _, _ := Build(src)
	// 12 faces total minus the 2 culled shared faces = 10 faces.
	assert.Len(t, solid.Indices, 10*6)
}

func TestWaterDoesNotRenderAgainstWater(t *testing.T) {
	src := newFakeSource()
	src.set(5, 5, 5, registry.Water)
	src.set(6, 5, 5, registry.Water)

	_, _, fluid := Build(src)
	// Each water voxel has 5 faces exposed to air plus 1 culled against
	// the other water voxel: 2*5 = 10 faces.
	assert.Len(t, fluid.Indices, 10*6)
}

func TestTransparentDoesNotRenderAgainstSameKind(t *testing.T) {
	src := newFakeSource()
	src.set(5, 5, 5, registry.Leaves)
	src.set(6, 5, 5, registry.Leaves)

	_, transparent, _ := Build(src)
	assert.Len(t, transparent.Indices, 10*6)
}

func TestSolidRendersAgainstFluidBoundary(t *testing.T) {
	src := newFakeSource()
	src.set(5, 5, 5, registry.Stone)
	src.set(6, 5, 5, registry.Water)

	solid, _, fluid := Build(src)
	assert.Len(t, solid.Indices, 6*6) // stone still shows all faces, including toward water
	assert.Len(t, fluid.Indices, 5*6) // water's face toward stone is culled
}

func TestVertexStrideIsElevenFloats(t *testing.T) {
	src := newFakeSource()
	src.set(0, 0, 0, registry.Stone)
	solid, _, _ := Build(src)
	assert.Equal(t, 0, len(solid.Vertices)%11)
	assert.Equal(t, 4*6, len(solid.Vertices)/11) // 6 faces * 4 verts
}
