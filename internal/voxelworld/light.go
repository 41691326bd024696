package voxelworld

import (
	"sailworld/internal/profiling"
	"sailworld/internal/registry"
)

// PropagateLight fills a chunk's light field using the approximate
// per-column scheme decided in the grounding ledger's Open Question #1:
// skylight starts at 15 at the top of each column, loses one level for
// each non-air, non-opaque block it passes (water, leaves; never below
// 1), and is 0 at and below the highest opaque block in the column (no
// cross-chunk horizontal light leak),
// and block light is a single-pass max-of-neighbors relaxation seeded
// from each block's EmittedLight. This trades exact flood-fill light
// (which needs a cross-chunk BFS queue) for an O(volume) pass that keeps
// the Lit stage a single-chunk operation, matching the Streaming
// Engine's stage dependency graph (spec §5: Lit depends only on its own
// Terrain+Features, not on neighbors).
func PropagateLight(c *Chunk) {
	defer profiling.Track("voxelworld.PropagateLight")()
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			sky := uint8(15)
			for ly := ChunkSizeY - 1; ly >= 0; ly-- {
				id, _ := c.Get(lx, ly, lz)
				if registry.OpacityOf(id) == registry.OpacityOpaque {
					sky = 0
				}
				existing, _ := c.Light(lx, ly, lz)
				block := existing & 0x0F
				c.SetLight(lx, ly, lz, (sky<<4)|block)
				if sky > 0 && registry.OpacityOf(id) != registry.OpacityAir {
					if sky > 1 {
						sky--
					}
				}
			}
		}
	}

	// Seed block light from emitters, then relax outward. A single pass
	// under-propagates light more than one block from its source; this is
	// an accepted approximation (see Open Question #1 above) rather than
	// a full BFS.
	for lx := 0; lx < ChunkSizeX; lx++ {
		for ly := 0; ly < ChunkSizeY; ly++ {
			for lz := 0; lz < ChunkSizeZ; lz++ {
				id, _ := c.Get(lx, ly, lz)
				if e := registry.EmittedLight(id); e > 0 {
					v, _ := c.Light(lx, ly, lz)
					c.SetLight(lx, ly, lz, (v&0xF0)|e)
				}
			}
		}
	}

	relaxOnce(c)
	c.lightDirty = false
	c.advance(StageLit)
}

func relaxOnce(c *Chunk) {
	type delta struct{ dx, dy, dz int }
	deltas := [6]delta{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

	updates := make(map[[3]int]uint8)
	for lx := 0; lx < ChunkSizeX; lx++ {
		for ly := 0; ly < ChunkSizeY; ly++ {
			for lz := 0; lz < ChunkSizeZ; lz++ {
				id, _ := c.Get(lx, ly, lz)
				if registry.OpacityOf(id) == registry.OpacityOpaque {
					continue
				}
				v, _ := c.Light(lx, ly, lz)
				block := v & 0x0F
				best := block
				for _, d := range deltas {
					nx, ny, nz := lx+d.dx, ly+d.dy, lz+d.dz
					if !inBounds(nx, ny, nz) {
						continue
					}
					nv, err := c.Light(nx, ny, nz)
					if err != nil {
						continue
					}
					nb := nv & 0x0F
					if nb > 0 && nb-1 > best {
						best = nb - 1
					}
				}
				if best != block {
					updates[[3]int{lx, ly, lz}] = best
				}
			}
		}
	}
	for pos, block := range updates {
		v, _ := c.Light(pos[0], pos[1], pos[2])
		c.SetLight(pos[0], pos[1], pos[2], (v&0xF0)|block)
	}
}
