package voxelworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailworld/internal/registry"
)

func TestPropagateLightSkylightFullAboveSurface(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	_, err := c.Set(8, 50, 8, registry.Stone)
	require.NoError(t, err)

	PropagateLight(c)

	v, err := c.Light(8, 200, 8)
	require.NoError(t, err)
	assert.Equal(t, uint8(15), v>>4)

	v, err = c.Light(8, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), v>>4)
}

func TestPropagateLightAdvancesStage(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	PropagateLight(c)
	assert.Equal(t, StageLit, c.Stage())
}
