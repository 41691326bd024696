package voxelworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailworld/internal/registry"
)

func TestGenerateTerrainIsDeterministic(t *testing.T) {
	p := DefaultGeneratorParams(42)
	g1 := NewGenerator(p)
	g2 := NewGenerator(p)

	c1 := NewChunk(ChunkCoord{CX: 3, CZ: -2})
	c2 := NewChunk(ChunkCoord{CX: 3, CZ: -2})
	g1.GenerateTerrain(c1)
	g2.GenerateTerrain(c2)

	for x := 0; x < ChunkSizeX; x++ {
		for y := 0; y < ChunkSizeY; y += 7 {
			for z := 0; z < ChunkSizeZ; z++ {
				a, err := c1.Get(x, y, z)
				require.NoError(t, err)
				b, err := c2.Get(x, y, z)
				require.NoError(t, err)
				assert.Equal(t, a, b)
			}
		}
	}
}

func TestGenerateTerrainHasBedrockFloorAndAdvancesStage(t *testing.T) {
	g := NewGenerator(DefaultGeneratorParams(7))
	c := NewChunk(ChunkCoord{CX: 0, CZ: 0})
	g.GenerateTerrain(c)

	id, err := c.Get(5, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, registry.Bedrock, id)
	assert.Equal(t, StageTerrain, c.Stage())
}

func TestHeightAtMatchesGeneratedColumn(t *testing.T) {
	g := NewGenerator(DefaultGeneratorParams(99))
	h := g.HeightAt(10, 10)
	assert.Greater(t, h, 0)
	assert.Less(t, h, 256)

	c := NewChunk(ChunkCoord{CX: 0, CZ: 0})
	g.GenerateTerrain(c)
	top := -1
	for y := ChunkSizeY - 1; y >= 0 && top < 0; y-- {
		id, err := c.Get(10, y, 10)
		require.NoError(t, err)
		if registry.IsSolidCollider(id) {
			top = y
		}
	}
	assert.Equal(t, h, top)
}

func TestGenerateFeaturesPlacesOreOnlyInStone(t *testing.T) {
	g := NewGenerator(DefaultGeneratorParams(123))
	c := NewChunk(ChunkCoord{CX: 1, CZ: 1})
	g.GenerateTerrain(c)
	terrain := NewChunk(ChunkCoord{CX: 1, CZ: 1})
	g.GenerateTerrain(terrain)
	g.GenerateFeatures(c)
	assert.Equal(t, StageFeatures, c.Stage())

	for x := 0; x < ChunkSizeX; x++ {
		for y := 0; y < ChunkSizeY; y++ {
			for z := 0; z < ChunkSizeZ; z++ {
				id, err := c.Get(x, y, z)
				require.NoError(t, err)
				if id == registry.OreCommon || id == registry.OreRare {
					before, err := terrain.Get(x, y, z)
					require.NoError(t, err)
					assert.Equal(t, registry.Stone, before)
				}
			}
		}
	}
}

// TestCoastalTransitionAboveWaterBelowSolid is spec.md §8 scenario 2
// (coastal transition): at a column whose height sits below sea_level,
// the block immediately above the surface is water and the block at the
// surface itself has a solid collider. Rather than hardcoding a single
// world coordinate (the exact column a given seed resolves to coastal is
// an emergent property of the noise field, not a spec-given constant),
// this scans a strip of columns for one the generator actually placed
// below sea_level, then checks the invariant there.
func TestCoastalTransitionAboveWaterBelowSolid(t *testing.T) {
	p := DefaultGeneratorParams(0xC0FFEE)
	require.Equal(t, 64, p.SeaLevel)
	g := NewGenerator(p)

	var wx, wz, h int
	found := false
	for x := 0; x < 4096 && !found; x += 16 {
		for z := 0; z < 4096 && !found; z += 16 {
			// Cheap biome-kind prefilter before the expensive per-column
			// HeightAt scan: only ocean-family biomes can resolve below
			// sea_level for this generator's density field.
			switch g.biomes.At(float64(x), float64(z)).Kind {
			case BiomeOcean, BiomeDeepOcean, BiomeShallowWater:
			default:
				continue
			}
			if height := g.HeightAt(x, z); height < p.SeaLevel {
				wx, wz, h = x, z, height
				found = true
			}
		}
	}
	require.True(t, found, "expected at least one coastal column below sea_level in the scanned strip")

	cx, cz := int32(wx/ChunkSizeX), int32(wz/ChunkSizeZ)
	c := NewChunk(ChunkCoord{CX: cx, CZ: cz})
	g.GenerateTerrain(c)

	lx, lz := wx%ChunkSizeX, wz%ChunkSizeZ

	above, err := c.Get(lx, h+1, lz)
	require.NoError(t, err)
	assert.Equal(t, registry.Water, above)

	surface, err := c.Get(lx, h, lz)
	require.NoError(t, err)
	assert.True(t, registry.IsSolidCollider(surface))
}
