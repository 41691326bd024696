package shipphysics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sailworld/internal/profiling"
	"sailworld/internal/registry"
)

// VoxelSource is the minimal read access the capsule-vs-voxel sweep needs
// from the world simulation core, kept as an interface (mirroring
// meshing.BlockSource's decoupling) so shipphysics never imports
// voxelworld directly.
type VoxelSource interface {
	BlockAt(wx, wy, wz int) registry.BlockID
}

// ProjectileHitsHull is an AABB-vs-OBB test (spec §4.8): the projectile
// is treated as a sphere of its Radius, the hull as an OBB defined by the
// ship's orientation and HullHalfExtents. Grounded on
// Gekko3D-gekko/mod_physics.go's checkOBBCollision SAT routine, specialized
// to sphere-vs-box since a sphere's support along any axis is independent
// of its own orientation — only the hull's three local axes need testing.
func ProjectileHitsHull(p *Projectile, b *Body) (hit bool, normal mgl32.Vec3, penetration float32) {
	if p.OwnerShip == b.ID {
		return false, mgl32.Vec3{}, 0
	}

	rot := quatToMat3(b.Orientation)
	axes := [3]mgl32.Vec3{
		{rot[0], rot[1], rot[2]},
		{rot[3], rot[4], rot[5]},
		{rot[6], rot[7], rot[8]},
	}
	half := [3]float32{b.HullHalfExtents.X(), b.HullHalfExtents.Y(), b.HullHalfExtents.Z()}

	d := p.Pos.Sub(b.Position)

	minPenetration := float32(math.MaxFloat32)
	for i, axis := range axes {
		extentOnAxis := half[i] + p.Radius
		distOnAxis := d.Dot(axis)
		overlap := extentOnAxis - abs32(distOnAxis)
		if overlap <= 0 {
			return false, mgl32.Vec3{}, 0
		}
		if overlap < minPenetration {
			minPenetration = overlap
			normal = axis
			if distOnAxis < 0 {
				normal = normal.Mul(-1)
			}
		}
	}
	return true, normal, minPenetration
}

// SweepResult reports a capsule-vs-voxel sweep outcome.
type SweepResult struct {
	Hit      bool
	BlockPos [3]int
	Distance float32
}

// SweepCapsule marches a capsule of the given radius from start along
// direction up to maxDist, testing each sample point (plus radius offsets
// perpendicular to travel) against the world's solid-collider predicate.
// Grounded on dantero-ps-mini-mc-go/internal/physics/raycast.go's fixed-
// step marching raycast, generalized from a zero-radius ray to a capsule
// by also sampling points offset by radius around the capsule's "equator"
// at each step, and from a single-block hit test to registry.IsSolidCollider
// (spec §3's C3 predicate) instead of a simple non-air test.
func SweepCapsule(start, direction mgl32.Vec3, radius, maxDist float32, world VoxelSource) SweepResult {
	defer profiling.Track("shipphysics.SweepCapsule")()
	if direction.Len() < 1e-6 {
		return SweepResult{}
	}
	dir := direction.Normalize()

	const stepSize = 0.1
	steps := int(maxDist / stepSize)

	perp1, perp2 := orthonormalBasis(dir)

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		center := start.Add(dir.Mul(dist))

		samples := [5]mgl32.Vec3{
			center,
			center.Add(perp1.Mul(radius)),
			center.Add(perp1.Mul(-radius)),
			center.Add(perp2.Mul(radius)),
			center.Add(perp2.Mul(-radius)),
		}
		for _, s := range samples {
			bx := int(math.Floor(float64(s.X())))
			by := int(math.Floor(float64(s.Y())))
			bz := int(math.Floor(float64(s.Z())))
			if registry.IsSolidCollider(world.BlockAt(bx, by, bz)) {
				return SweepResult{Hit: true, BlockPos: [3]int{bx, by, bz}, Distance: dist}
			}
		}
	}
	return SweepResult{}
}

// orthonormalBasis picks two unit vectors perpendicular to dir and to
// each other, used to sample a capsule's cross-section along a sweep.
func orthonormalBasis(dir mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	up := mgl32.Vec3{0, 1, 0}
	if abs32(dir.Dot(up)) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	perp1 := dir.Cross(up).Normalize()
	perp2 := dir.Cross(perp1).Normalize()
	return perp1, perp2
}
