package voxelworld

import (
	"sailworld/internal/noisefield"
	"sailworld/internal/registry"
)

// BiomeKind enumerates the terrain biomes a column can resolve to. The set
// is considerably larger than the teacher's five-biome table; it follows
// the terrain catalog a sailing open world needs (coastline, tropical and
// temperate bands, volcanic and swamp variants).
type BiomeKind int

const (
	BiomeOcean BiomeKind = iota
	BiomeDeepOcean
	BiomeShallowWater
	BiomeBeach
	BiomeTropicalForest
	BiomeJungle
	BiomeTropicalGrassland
	BiomeForest
	BiomeGrassland
	BiomeHills
	BiomeDesert
	BiomeSavanna
	BiomeMountain
	BiomeVolcanicPeak
	BiomeVolcanicSlopes
	BiomeVolcanicPlains
	BiomeSwampPlain
	BiomeSwampHills
	BiomePlains
	BiomeTundra
)

// Biome carries the scalar properties a generator column blends (spec §4
// supplement: scalar blend extends beyond height to vegetation density).
type Biome struct {
	Kind                 BiomeKind
	Name                 string
	BaseHeight           float64 // fraction of sea level offset
	HeightVariation      float64
	TreeDensity          float64 // 0..1
	VegetationDensity    float64 // 0..1
	CoralDensity         float64 // 0..1, only meaningful underwater
	ResourceRichness     float64 // 0..1, scales ore vein counts (spec §3)
	NavigationDifficulty float64 // multiplier >= 1, sailing hazard (reefs, narrow channels)
	TopBlock             registry.BlockID
	FillerBlock          registry.BlockID
}

var biomeTable = []Biome{
	{BiomeOcean, "ocean", -0.35, 0.08, 0, 0, 0.1, 0.3, 1.0, registry.Sand, registry.Dirt},
	{BiomeDeepOcean, "deep_ocean", -0.7, 0.05, 0, 0, 0.02, 0.2, 1.0, registry.Gravel, registry.Stone},
	{BiomeShallowWater, "shallow_water", -0.12, 0.04, 0, 0, 0.25, 0.1, 1.6, registry.Sand, registry.Sand},
	{BiomeBeach, "beach", 0.02, 0.02, 0, 0.05, 0, 0.15, 1.3, registry.Sand, registry.Sand},
	{BiomeTropicalForest, "tropical_forest", 0.12, 0.18, 0.55, 0.7, 0, 0.4, 1.0, registry.Grass, registry.Dirt},
	{BiomeJungle, "jungle", 0.15, 0.25, 0.8, 0.9, 0, 0.5, 1.0, registry.Grass, registry.Dirt},
	{BiomeTropicalGrassland, "tropical_grassland", 0.1, 0.12, 0.1, 0.6, 0, 0.35, 1.0, registry.Grass, registry.Dirt},
	{BiomeForest, "forest", 0.14, 0.2, 0.6, 0.5, 0, 0.45, 1.0, registry.Grass, registry.Dirt},
	{BiomeGrassland, "grassland", 0.1, 0.14, 0.05, 0.45, 0, 0.3, 1.0, registry.Grass, registry.Dirt},
	{BiomeHills, "hills", 0.3, 0.5, 0.2, 0.3, 0, 0.55, 1.0, registry.Grass, registry.Dirt},
	{BiomeDesert, "desert", 0.08, 0.1, 0, 0.02, 0, 0.4, 1.0, registry.Sand, registry.Sand},
	{BiomeSavanna, "savanna", 0.12, 0.15, 0.1, 0.25, 0, 0.3, 1.0, registry.Grass, registry.Dirt},
	{BiomeMountain, "mountain", 0.55, 0.9, 0, 0.05, 0, 0.8, 1.0, registry.Stone, registry.Stone},
	{BiomeVolcanicPeak, "volcanic_peak", 0.75, 0.6, 0, 0, 0, 0.9, 1.0, registry.VolcanicRock, registry.VolcanicRock},
	{BiomeVolcanicSlopes, "volcanic_slopes", 0.4, 0.35, 0, 0.02, 0, 0.7, 1.0, registry.VolcanicRock, registry.Obsidian},
	{BiomeVolcanicPlains, "volcanic_plains", 0.1, 0.08, 0, 0.01, 0, 0.6, 1.0, registry.Obsidian, registry.VolcanicRock},
	{BiomeSwampPlain, "swamp_plain", 0.03, 0.04, 0.15, 0.65, 0, 0.25, 2.0, registry.Dirt, registry.Dirt},
	{BiomeSwampHills, "swamp_hills", 0.08, 0.1, 0.25, 0.6, 0, 0.3, 2.0, registry.Dirt, registry.Dirt},
	{BiomePlains, "plains", 0.1, 0.12, 0.05, 0.35, 0, 0.3, 1.0, registry.Grass, registry.Dirt},
	{BiomeTundra, "tundra", 0.2, 0.15, 0, 0.05, 0, 0.2, 1.0, registry.Snow, registry.Dirt},
}

func biomeByKind(k BiomeKind) *Biome {
	return &biomeTable[int(k)]
}

// classify picks a single biome for a raw (temperature, moisture,
// continentalness) sample. The thresholds are hand-tuned to spread 18 of
// the 20 biomes across the unit cube (BiomeGrassland and
// BiomeVolcanicPlains are never returned) rather than collapsing to a
// handful, the
// way the teacher's simpler GetBiomeForCoords spreads 5 biomes across a
// single noise band.
func classify(temperature, moisture, continentalness float64) BiomeKind {
	switch {
	case continentalness < -0.55:
		return BiomeDeepOcean
	case continentalness < -0.25:
		return BiomeOcean
	case continentalness < -0.05:
		return BiomeShallowWater
	case continentalness < 0.02:
		return BiomeBeach
	}

	switch {
	case continentalness > 0.75:
		if temperature > 0.3 {
			return BiomeVolcanicPeak
		}
		return BiomeMountain
	case continentalness > 0.55:
		if temperature > 0.3 {
			return BiomeVolcanicSlopes
		}
		return BiomeHills
	}

	hot := temperature > 0.35
	cold := temperature < -0.35
	wet := moisture > 0.3
	dry := moisture < -0.3

	switch {
	case cold:
		return BiomeTundra
	case hot && wet && moisture > 0.65:
		return BiomeJungle
	case hot && wet:
		return BiomeTropicalForest
	case hot && dry:
		return BiomeDesert
	case hot:
		return BiomeSavanna
	case wet && continentalness < 0.15:
		return BiomeSwampPlain
	case wet:
		return BiomeSwampHills
	case dry:
		return BiomeTropicalGrassland
	case moisture > 0.1:
		return BiomeForest
	default:
		return BiomePlains
	}
}

// BiomeSource resolves deterministic biomes and blended scalars from
// three independent noise fields (temperature, moisture, continentalness),
// sampled at a coarser scale than per-block terrain noise.
type BiomeSource struct {
	temp  *noisefield.Sampler
	moist *noisefield.Sampler
	cont  *noisefield.Sampler
}

// NewBiomeSource builds a BiomeSource from world seed. Each field uses an
// offset derivative seed so the three fields are independent.
func NewBiomeSource(seed int64) *BiomeSource {
	return &BiomeSource{
		temp:  noisefield.NewSampler(seed ^ 0x5A17),
		moist: noisefield.NewSampler(seed ^ 0xA5713),
		cont:  noisefield.NewSampler(seed ^ 0xC0DE1),
	}
}

const biomeNoiseScale = 1.0 / 600.0

func (b *BiomeSource) sample(x, z float64) (temperature, moisture, continentalness float64) {
	temperature, _ = b.temp.Fractal2D(x*biomeNoiseScale, z*biomeNoiseScale, 3, 0.5, 2.0)
	moisture, _ = b.moist.Fractal2D(x*biomeNoiseScale, z*biomeNoiseScale, 3, 0.5, 2.0)
	continentalness, _ = b.cont.Fractal2D(x*biomeNoiseScale*0.6, z*biomeNoiseScale*0.6, 4, 0.5, 2.0)
	return
}

// At returns the single biome that owns world column (x, z).
func (b *BiomeSource) At(x, z float64) *Biome {
	t, m, c := b.sample(x, z)
	return biomeByKind(classify(t, m, c))
}

// BlendedScalars resolves the Open Question #3 decision: instead of
// blending only height, the terrain and decoration scalars (height,
// height variation, tree density, vegetation density, coral density,
// navigation difficulty) are blended across a 5x5
// grid of biome samples spaced one chunk apart, weighted by inverse
// squared distance from the column. Resource richness is not blended;
// ore placement reads it from the single biome at the chunk centre.
// This generalizes the teacher's bio_generator.go parabolic-weight
// technique beyond height.
type BlendedScalars struct {
	Height               float64
	HeightVar            float64
	Tree                 float64
	Vegetation           float64
	Coral                float64
	NavigationDifficulty float64
	TopBlock             registry.BlockID
	FillerBlock          registry.BlockID
}

func (b *BiomeSource) BlendedScalars(x, z float64) BlendedScalars {
	return b.Grid(x, z).Blend(x, z)
}

// BiomeGrid is the 5x5 biome sample grid anchored at one origin column,
// resolved once and blended against many nearby columns (spec §4
// supplement). GenerateTerrain/GenerateFeatures resolve one grid per
// chunk instead of one per column: the 25 underlying Fractal2D samples
// are shared across all 256 columns in the chunk rather than re-sampled
// per column, since neighboring columns in the same chunk select nearly
// identical grids.
type BiomeGrid struct {
	originX, originZ float64
	samples           [5][5]*Biome
}

// Grid resolves the 5x5 biome sample grid anchored at (originX, originZ).
// Callers iterating many columns within one chunk should resolve the
// grid once at the chunk's origin and reuse it via Blend per column.
func (b *BiomeSource) Grid(originX, originZ float64) *BiomeGrid {
	g := &BiomeGrid{originX: originX, originZ: originZ}
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			sx := originX + float64(i*ChunkSizeX)
			sz := originZ + float64(j*ChunkSizeZ)
			g.samples[i+2][j+2] = b.At(sx, sz)
		}
	}
	return g
}

// Blend resolves the scalar blend at column (x, z) against the grid's
// fixed sample points, weighting each by inverse squared distance from
// (x, z) rather than from the grid's origin, so the blend still varies
// smoothly as x, z move away from the anchor column.
func (g *BiomeGrid) Blend(x, z float64) BlendedScalars {
	center := g.samples[2][2]

	var sumH, sumHV, sumTree, sumVeg, sumCoral, sumNav, sumW float64
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			sx := g.originX + float64(i*ChunkSizeX)
			sz := g.originZ + float64(j*ChunkSizeZ)
			biome := g.samples[i+2][j+2]

			dx := (sx - x) / ChunkSizeX
			dz := (sz - z) / ChunkSizeZ
			distSq := dx*dx + dz*dz
			weight := 1.0 / (distSq + 0.2)

			sumH += biome.BaseHeight * weight
			sumHV += biome.HeightVariation * weight
			sumTree += biome.TreeDensity * weight
			sumVeg += biome.VegetationDensity * weight
			sumCoral += biome.CoralDensity * weight
			sumNav += biome.NavigationDifficulty * weight
			sumW += weight
		}
	}

	return BlendedScalars{
		Height:               sumH / sumW,
		HeightVar:            sumHV / sumW,
		Tree:                 sumTree / sumW,
		Vegetation:           sumVeg / sumW,
		Coral:                sumCoral / sumW,
		NavigationDifficulty: sumNav / sumW,
		TopBlock:             center.TopBlock,
		FillerBlock:          center.FillerBlock,
	}
}
