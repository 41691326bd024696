package voxelworld

import (
	"sailworld/internal/noisefield"
	"sailworld/internal/profiling"
	"sailworld/internal/registry"
)

// GeneratorParams are the tunables a Generator needs beyond the world
// seed (spec §6's world.* configuration surface).
type GeneratorParams struct {
	Seed              int64
	SeaLevel          int // world Y of the ocean surface at rest
	CoordinateScale   float64
	HeightScale       float64
	StretchY          float64
	BaseSize          float64
	CaveThreshold     float64 // Ridged3D value above which a solid voxel is carved to air
	OreCommonPerCol   int     // expected ore_common veins per loaded column
	OreRarePerCol     int
}

// DefaultGeneratorParams mirrors the teacher's BioGenerator defaults
// (coordinateScale/heightScale 0.01, stretchY 12.0, baseSize 8.5), which
// were themselves a simplified, earth-scale rework of Minecraft 1.8.9's
// density field constants.
func DefaultGeneratorParams(seed int64) GeneratorParams {
	return GeneratorParams{
		Seed:            seed,
		SeaLevel:        64,
		CoordinateScale: 0.01,
		HeightScale:     0.01,
		StretchY:        12.0,
		BaseSize:        8.5,
		CaveThreshold:   0.82,
		OreCommonPerCol: 6,
		OreRarePerCol:   1,
	}
}

// Generator is the World Generator (spec C4): a deterministic pure
// function of (seed, world coordinate) producing density, biome-blended
// surface columns and feature placement. It is grounded on the teacher's
// BioGenerator in bio_generator.go, generalized from 5 biomes with a
// single height blend to 20 biomes blending height, tree density,
// vegetation density and coral density.
type Generator struct {
	params GeneratorParams
	biomes *BiomeSource

	minNoise  *noisefield.Sampler
	maxNoise  *noisefield.Sampler
	mainNoise *noisefield.Sampler
	caveNoise *noisefield.Sampler
}

// NewGenerator builds a Generator for the given params. Each noise layer
// gets an independently-offset seed so layers never correlate.
func NewGenerator(p GeneratorParams) *Generator {
	return &Generator{
		params:    p,
		biomes:    NewBiomeSource(p.Seed),
		minNoise:  noisefield.NewSampler(p.Seed),
		maxNoise:  noisefield.NewSampler(p.Seed + 1000),
		mainNoise: noisefield.NewSampler(p.Seed + 2000),
		caveNoise: noisefield.NewSampler(p.Seed + 3000),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func denormalizeClamp(min, max, ratio float64) float64 {
	if ratio < 0 {
		return min
	}
	if ratio > 1 {
		return max
	}
	return min + (max-min)*ratio
}

// density computes the terrain density field at a world coordinate:
// positive means solid, non-positive means air. Grounded on
// BioGenerator.computeDensity, generalized to read biome scalars from
// BlendedScalars instead of a single MinHeight/MaxHeight pair. blend is
// the caller's already-resolved column blend: density is called once per
// Y layer for the same (wx, wz), so re-deriving it here would redo the
// 5x5 biome sample grid up to 256 times for a single column.
func (g *Generator) density(wx, wy, wz int, blend BlendedScalars) float64 {
	x, y, z := float64(wx), float64(wy), float64(wz)

	if y > 254 {
		return -1
	}
	if y < 1 {
		return 10
	}

	avgScale := blend.HeightVar*0.9 + 0.1
	avgDepth := (blend.Height*4.0 - 1.0) / 8.0

	densityOffset := g.params.BaseSize + avgDepth*4.0
	scaleFactor := (g.params.StretchY * 128.0 / 256.0) / avgScale

	mcY := (y - float64(g.params.SeaLevel)) / 8.0
	heightDensity := (mcY - densityOffset) * scaleFactor

	cs, hs := g.params.CoordinateScale, g.params.HeightScale
	minN, _ := g.minNoise.Fractal3D(x*cs, y*hs, z*cs, 4, 0.5, 2.0)
	maxN, _ := g.maxNoise.Fractal3D(x*cs, y*hs, z*cs, 4, 0.5, 2.0)
	mainN, _ := g.mainNoise.Fractal3D(x*cs*2, y*hs*2, z*cs*2, 2, 0.5, 2.0)

	minN = minN*2 - 1
	maxN = maxN*2 - 1
	mainN = mainN*2 - 1

	vol := clamp01((mainN/10.0 + 1.0) / 2.0)

	d := denormalizeClamp(minN, maxN, vol) - heightDensity

	if d > 0 {
		ridge, _ := g.caveNoise.Ridged3D(x*cs*3, y*hs*3, z*cs*3, 3, 0.5, 2.0)
		if y > 4 && ridge > g.params.CaveThreshold {
			return -0.5
		}
	}
	return d
}

// HeightAt returns the highest solid world Y at (wx, wz), or -1 if the
// column is solid-free down to bedrock (should not occur in practice).
func (g *Generator) HeightAt(wx, wz int) int {
	// Blend against the grid anchored at the chunk origin, as
	// GenerateTerrain does, so the answer matches the generated column.
	coord, _, _, _ := WorldToLocal(wx, 0, wz)
	grid := g.biomes.Grid(float64(int(coord.CX)*ChunkSizeX), float64(int(coord.CZ)*ChunkSizeZ))
	blend := grid.Blend(float64(wx), float64(wz))
	for y := 254; y >= 0; y-- {
		if g.density(wx, y, wz, blend) > 0 {
			return y
		}
	}
	return -1
}

// GenerateTerrain fills a chunk's base terrain: stone/filler/top blocks
// plus ocean water up to sea level, and advances it to StageTerrain.
func (g *Generator) GenerateTerrain(c *Chunk) {
	defer profiling.Track("voxelworld.GenerateTerrain")()
	chunkOriginX := float64(int(c.Coord.CX) * ChunkSizeX)
	chunkOriginZ := float64(int(c.Coord.CZ) * ChunkSizeZ)
	grid := g.biomes.Grid(chunkOriginX, chunkOriginZ)

	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			wx := int(c.Coord.CX)*ChunkSizeX + lx
			wz := int(c.Coord.CZ)*ChunkSizeZ + lz
			blend := grid.Blend(float64(wx), float64(wz))

			fillerRemaining := -1
			for ly := ChunkSizeY - 1; ly >= 0; ly-- {
				if ly == 0 {
					c.Set(lx, ly, lz, registry.Bedrock)
					continue
				}
				d := g.density(wx, ly, wz, blend)
				if d > 0 {
					var block registry.BlockID
					switch {
					case fillerRemaining < 0:
						block = blend.TopBlock
						fillerRemaining = 3
					case fillerRemaining > 0:
						block = blend.FillerBlock
						fillerRemaining--
					default:
						block = registry.Stone
					}
					c.Set(lx, ly, lz, block)
				} else {
					fillerRemaining = -1
					if ly <= g.params.SeaLevel {
						c.Set(lx, ly, lz, registry.Water)
					}
				}
			}
		}
	}
	c.advance(StageTerrain)
}

// GenerateFeatures scatters deterministic ore veins, trees and coral
// blocks using the column hash (spec §4.4's
// decoration pass, step 5: "tree/coral placement using biome density").
// Cross-chunk features (a tree canopy reaching past a chunk edge) are
// intentionally clipped rather than deferred to a cross-chunk edit queue:
// a single-chunk decoration pass cannot see its neighbors' content yet,
// so canopy overflow is accepted as a minor seam (see SPEC_FULL.md §4.4).
func (g *Generator) GenerateFeatures(c *Chunk) {
	defer profiling.Track("voxelworld.GenerateFeatures")()
	base := noisefield.HashColumn(g.params.Seed, c.Coord.CX, c.Coord.CZ, 0)
	rng := base

	next := func() uint64 {
		rng = rng*6364136223846793005 + 1442695040888963407
		return rng
	}

	wx := int(c.Coord.CX) * ChunkSizeX
	wz := int(c.Coord.CZ) * ChunkSizeZ
	blend := g.biomes.BlendedScalars(float64(wx+ChunkSizeX/2), float64(wz+ChunkSizeZ/2))

	placeOre := func(id registry.BlockID, count int) {
		for i := 0; i < count; i++ {
			lx := int(next() % ChunkSizeX)
			ly := 4 + int(next()%48)
			lz := int(next() % ChunkSizeZ)
			if existing, err := c.Get(lx, ly, lz); err == nil && existing == registry.Stone {
				c.Set(lx, ly, lz, id)
			}
		}
	}
	richness := g.biomes.At(float64(wx+ChunkSizeX/2), float64(wz+ChunkSizeZ/2)).ResourceRichness
	placeOre(registry.OreCommon, int(float64(g.params.OreCommonPerCol)*richness))
	placeOre(registry.OreRare, int(float64(g.params.OreRarePerCol)*richness))

	if blend.Tree > 0.05 {
		g.placeTrees(c, blend, next)
	}

	if blend.Coral > 0.15 {
		coralCount := int(blend.Coral * 12)
		for i := 0; i < coralCount; i++ {
			lx := int(next() % ChunkSizeX)
			lz := int(next() % ChunkSizeZ)
			for ly := g.params.SeaLevel; ly > g.params.SeaLevel-10 && ly > 0; ly-- {
				if id, err := c.Get(lx, ly, lz); err == nil && id == registry.Water {
					if below, err := c.Get(lx, ly-1, lz); err == nil && below != registry.Air && below != registry.Water {
						c.Set(lx, ly, lz, registry.Coral)
						break
					}
				}
			}
		}
	}
	c.advance(StageFeatures)
}

// placeTrees scatters trunk+canopy trees on grass-topped columns,
// expected count scaled by blend.Tree (spec §4.4 step 5), the same
// column-hash RNG walk placeOre/coral placement above already use. A
// trunk column is found by scanning down from the surface for the first
// grass block already committed by GenerateTerrain; canopy leaves that
// would land outside the chunk are skipped rather than queued, matching
// the accepted cross-chunk seam documented on GenerateFeatures.
func (g *Generator) placeTrees(c *Chunk, blend BlendedScalars, next func() uint64) {
	treeCount := int(blend.Tree * 8)
	for i := 0; i < treeCount; i++ {
		lx := int(next() % ChunkSizeX)
		lz := int(next() % ChunkSizeZ)

		surfaceY := -1
		for ly := ChunkSizeY - 2; ly > g.params.SeaLevel; ly-- {
			if id, err := c.Get(lx, ly, lz); err == nil && id == registry.Grass {
				surfaceY = ly
				break
			}
		}
		if surfaceY < 0 {
			continue
		}

		trunkHeight := 4 + int(next()%3)
		for h := 1; h <= trunkHeight; h++ {
			ly := surfaceY + h
			if ly >= ChunkSizeY {
				break
			}
			c.Set(lx, ly, lz, registry.Wood)
		}

		canopyBase := surfaceY + trunkHeight - 1
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if dx*dx+dz*dz > 5 {
					continue
				}
				cx, cz := lx+dx, lz+dz
				if cx < 0 || cx >= ChunkSizeX || cz < 0 || cz >= ChunkSizeZ {
					continue // canopy overflow past the chunk edge: accepted seam
				}
				for dy := 0; dy <= 2; dy++ {
					ly := canopyBase + dy
					if ly >= ChunkSizeY {
						break
					}
					if existing, err := c.Get(cx, ly, cz); err == nil && existing == registry.Air {
						c.Set(cx, ly, cz, registry.Leaves)
					}
				}
			}
		}
	}
}
