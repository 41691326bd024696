package voxelworld

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailworld/internal/registry"
)

func TestWorldSetBlockMarksNeighborMeshDirty(t *testing.T) {
	w := NewWorld(DefaultGeneratorParams(1))
	defer w.Close()

	center := w.Store.GetOrCreate(ChunkCoord{CX: 0, CZ: 0})
	neighbor := w.Store.GetOrCreate(ChunkCoord{CX: 1, CZ: 0})
	center.CommitMesh(&MeshStreams{})
	neighbor.CommitMesh(&MeshStreams{})

	_, err := w.SetBlock(ChunkSizeX-1, 10, 3, registry.Stone)
	require.NoError(t, err)

	assert.True(t, neighbor.MeshDirty())
}

func TestWorldEnsureLoadedReachesMeshedStage(t *testing.T) {
	w := NewWorld(DefaultGeneratorParams(2))
	defer w.Close()

	coord := ChunkCoord{CX: 0, CZ: 0}
	w.EnsureLoaded(coord, true)

	require.Eventually(t, func() bool {
		c := w.Store.Get(coord)
		return c != nil && c.Stage() == StageMeshed
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWorldBlockAtUnloadedChunkIsAir(t *testing.T) {
	w := NewWorld(DefaultGeneratorParams(3))
	defer w.Close()
	assert.Equal(t, registry.Air, w.BlockAt(99999, 10, 99999))
}
