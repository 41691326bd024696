package voxelworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiomeSourceDeterministic(t *testing.T) {
	b1 := NewBiomeSource(1)
	b2 := NewBiomeSource(1)
	assert.Equal(t, b1.At(120, -340).Kind, b2.At(120, -340).Kind)
}

func TestBlendedScalarsWithinBounds(t *testing.T) {
	b := NewBiomeSource(5)
	s := b.BlendedScalars(64, 64)
	assert.GreaterOrEqual(t, s.Tree, 0.0)
	assert.GreaterOrEqual(t, s.Vegetation, 0.0)
	assert.GreaterOrEqual(t, s.Coral, 0.0)
}

func TestClassifyCoversDeepOceanAndMountain(t *testing.T) {
	assert.Equal(t, BiomeDeepOcean, classify(0, 0, -0.9))
	assert.Equal(t, BiomeMountain, classify(-0.5, 0, 0.9))
	assert.Equal(t, BiomeVolcanicPeak, classify(0.5, 0, 0.9))
}
