package voxelworld

import (
	"sailworld/internal/meshing"
	"sailworld/internal/profiling"
	"sailworld/internal/registry"
)

// chunkBlockSource adapts a Chunk plus its loaded neighbors to
// meshing.BlockSource, resolving coordinates that spill one block past
// the chunk's own bounds into the neighboring chunk so border faces cull
// correctly.
type chunkBlockSource struct {
	center *Chunk
	store  *ChunkStore
}

func (s chunkBlockSource) resolve(x, y, z int) (*Chunk, int, int, int) {
	if x >= 0 && x < ChunkSizeX && z >= 0 && z < ChunkSizeZ {
		return s.center, x, y, z
	}
	if y < 0 || y >= ChunkSizeY {
		return nil, 0, 0, 0
	}
	dx, dz := 0, 0
	lx, lz := x, z
	switch {
	case x < 0:
		dx, lx = -1, x+ChunkSizeX
	case x >= ChunkSizeX:
		dx, lx = 1, x-ChunkSizeX
	}
	switch {
	case z < 0:
		dz, lz = -1, z+ChunkSizeZ
	case z >= ChunkSizeZ:
		dz, lz = 1, z-ChunkSizeZ
	}
	nb := s.store.Get(ChunkCoord{CX: s.center.Coord.CX + int32(dx), CZ: s.center.Coord.CZ + int32(dz)})
	return nb, lx, y, lz
}

func (s chunkBlockSource) BlockAt(x, y, z int) registry.BlockID {
	c, lx, ly, lz := s.resolve(x, y, z)
	if c == nil {
		return registry.Air
	}
	id, err := c.Get(lx, ly, lz)
	if err != nil {
		return registry.Air
	}
	return id
}

func (s chunkBlockSource) LightAt(x, y, z int) uint8 {
	c, lx, ly, lz := s.resolve(x, y, z)
	if c == nil {
		return 0xF0 // unloaded neighbor: assume full skylight rather than darkening the border
	}
	v, err := c.Light(lx, ly, lz)
	if err != nil {
		return 0
	}
	return v
}

// BuildMesh runs the Mesh Builder (spec C5) over c, using store to resolve
// cross-chunk face visibility at the chunk's borders, and commits the
// result atomically with CommitMesh. The previous mesh is dropped, not
// queued for a deferred release.
func BuildMesh(c *Chunk, store *ChunkStore) *MeshStreams {
	defer profiling.Track("voxelworld.BuildMesh")()
	src := chunkBlockSource{center: c, store: store}
	solid, transparent, fluid := meshing.Build(src)
	m := &MeshStreams{
		Solid:       MeshBuffer{Vertices: solid.Vertices, Indices: solid.Indices},
		Transparent: MeshBuffer{Vertices: transparent.Vertices, Indices: transparent.Indices},
		Fluid:       MeshBuffer{Vertices: fluid.Vertices, Indices: fluid.Indices},
	}
	c.CommitMesh(m)
	return m
}
