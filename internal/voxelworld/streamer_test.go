package voxelworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario 6 (spec §8): "teleport" the streaming focus from (0,0) far
// away with load_radius=4, keep_radius=4; every chunk more than
// keep_radius away from the new focus must be gone from the store after
// one StreamAround call, and any mesh a caller is still holding a
// reference to (a stand-in for "a pending render handle") must remain
// readable rather than being freed out from under it.
func TestStreamAroundEvictsOutsideKeepRadiusWithoutFreeingReferencedMesh(t *testing.T) {
	store := NewChunkStore()
	gen := NewGenerator(DefaultGeneratorParams(0xC0FFEE))
	streamer := NewStreamer(store, gen)
	defer streamer.Close()

	w := &World{Store: store, Gen: gen, Streamer: streamer}

	origin := ChunkCoord{CX: 0, CZ: 0}
	w.StreamAround(origin, 4, 4)

	held := store.GetOrCreate(origin)
	held.CommitMesh(&MeshStreams{Solid: MeshBuffer{Vertices: []float32{1, 2, 3}}})
	heldMesh := held.Mesh()

	farFocus := ChunkCoord{CX: 625, CZ: 625} // 10_000 / ChunkSizeX
	w.StreamAround(farFocus, 4, 4)

	for coord := range store.chunks {
		dx := coord.CX - farFocus.CX
		dz := coord.CZ - farFocus.CZ
		assert.LessOrEqual(t, dx*dx+dz*dz, int32(4*4),
			"chunk %v remained loaded beyond keep_radius of new focus", coord)
	}

	// The evicted chunk's mesh is never mutated or nilled out by eviction
	// itself (Go's GC, not an explicit free, reclaims it once the last
	// reference drops) — the handle obtained before eviction still reads
	// back the same vertices.
	assert.Equal(t, []float32{1, 2, 3}, heldMesh.Solid.Vertices)
}
