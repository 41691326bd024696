package queryapi

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sailworld/internal/ocean"
	"sailworld/internal/registry"
	"sailworld/internal/shipphysics"
	"sailworld/internal/voxelworld"
)

func testAPI(t *testing.T) *API {
	t.Helper()
	world := voxelworld.NewWorld(voxelworld.DefaultGeneratorParams(0xC0FFEE))
	t.Cleanup(world.Close)
	field := ocean.NewField(0xC0FFEE, ocean.DefaultComponents(4, 1), 1200)
	return New(world, field)
}

func TestSetBlockThenBlockAtRoundTrips(t *testing.T) {
	api := testAPI(t)
	prev, err := api.SetBlock(5, 70, 5, registry.Stone)
	require.NoError(t, err)
	assert.Equal(t, registry.Air, prev)
	assert.Equal(t, registry.Stone, api.BlockAt(5, 70, 5))
}

func TestSetBlockMarksNeighborMeshDirtyAcrossChunkBorder(t *testing.T) {
	api := testAPI(t)
	_, err := api.SetBlock(voxelworld.ChunkSizeX-1, 70, 3, registry.Stone)
	require.NoError(t, err)

	neighbor := api.World.Store.GetOrCreate(voxelworld.ChunkCoord{CX: 1, CZ: 0})
	assert.True(t, neighbor.MeshDirty())
}

func TestWaterHeightAtIsFinite(t *testing.T) {
	api := testAPI(t)
	h := api.WaterHeightAt(10, 20, 5)
	assert.False(t, h != h)          // NaN check without importing math in the test
	assert.Equal(t, float32(0), h-h) // h-h is 0 only for finite h; ±Inf gives NaN
}

func TestRaycastHitsSolidBlockPlacedInPath(t *testing.T) {
	api := testAPI(t)
	_, err := api.SetBlock(3, 70, 0, registry.Stone)
	require.NoError(t, err)

	result := api.Raycast(mgl32.Vec3{0, 70, 0}, mgl32.Vec3{1, 0, 0}, 10, nil)
	require.True(t, result.Hit)
	assert.Equal(t, 3, result.HitPosition[0])
}

func TestRaycastMissesWhenPathIsAir(t *testing.T) {
	api := testAPI(t)
	result := api.Raycast(mgl32.Vec3{0, 200, 0}, mgl32.Vec3{1, 0, 0}, 10, nil)
	assert.False(t, result.Hit)
}

func TestRaycastZeroDirectionReturnsNoHit(t *testing.T) {
	api := testAPI(t)
	result := api.Raycast(mgl32.Vec3{0, 70, 0}, mgl32.Vec3{}, 10, nil)
	assert.False(t, result.Hit)
}

func testShip(pos mgl32.Vec3) *shipphysics.Body {
	comps := []shipphysics.ComponentSample{{LocalPos: mgl32.Vec3{}, Mass: 100, Tag: shipphysics.TagHull, Health: 1}}
	return shipphysics.NewBody(uuid.New(), pos, comps, 20)
}

func TestNearestShipReturnsClosestExcludingGiven(t *testing.T) {
	api := testAPI(t)
	near := testShip(mgl32.Vec3{1, 0, 0})
	far := testShip(mgl32.Vec3{100, 0, 0})
	api.AddShip(near)
	api.AddShip(far)

	got, ok := api.NearestShip(mgl32.Vec3{}, nil)
	require.True(t, ok)
	assert.Equal(t, near.ID, got.ID)

	excluded := near.ID
	got2, ok2 := api.NearestShip(mgl32.Vec3{}, &excluded)
	require.True(t, ok2)
	assert.Equal(t, far.ID, got2.ID)
}

func TestShipsInRadiusFiltersByDistance(t *testing.T) {
	api := testAPI(t)
	inside := testShip(mgl32.Vec3{2, 0, 0})
	outside := testShip(mgl32.Vec3{500, 0, 0})
	api.AddShip(inside)
	api.AddShip(outside)

	got := api.ShipsInRadius(mgl32.Vec3{}, 10)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
}

func TestRemoveShipDropsItFromRegistry(t *testing.T) {
	api := testAPI(t)
	ship := testShip(mgl32.Vec3{})
	api.AddShip(ship)
	api.RemoveShip(ship.ID)

	_, err := api.Ship(ship.ID)
	assert.ErrorIs(t, err, ErrShipNotFound)
}

func TestAddAndRemoveProjectile(t *testing.T) {
	api := testAPI(t)
	p := shipphysics.NewProjectile(uuid.New(), shipphysics.ProjectileCannonball, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 0.3)
	api.AddProjectile(p)

	got, err := api.Projectile(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	api.RemoveProjectile(p.ID)
	_, err = api.Projectile(p.ID)
	assert.ErrorIs(t, err, ErrProjectileNotFound)
}
