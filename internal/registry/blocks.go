// Package registry is the Block Catalog (spec C2): a read-only table of
// block kinds and their material properties, indexed by id for O(1)
// lookup. The catalog is immutable after Init.
package registry

// BlockID identifies a block kind. Id 0 is always air and is also the
// chunk palette's reserved index 0 (spec §3).
type BlockID uint16

// Opacity classifies how a block interacts with light and meshing.
type Opacity int

const (
	OpacityAir Opacity = iota
	OpacityTransparent
	OpacityOpaque
)

const (
	Air BlockID = iota
	Bedrock
	Stone
	Dirt
	Grass
	Sand
	Snow
	Ice
	Gravel
	Water
	Coral
	Wood
	Leaves
	VolcanicRock
	Obsidian
	OreCommon
	OreRare
)

// Definition carries every material property a block kind needs: the
// Block Catalog entry described in spec §3.
type Definition struct {
	ID            BlockID
	Name          string
	Opacity       Opacity
	Fluid         bool
	EmittedLight  uint8 // 0-15
	SolidCollider bool
	Tint          [3]float32 // linear RGB, zero value means "no tint"
	Hardness      float32    // seconds to break; negative is unbreakable
}

var defs = make(map[BlockID]*Definition, 32)

func register(d Definition) {
	cp := d
	defs[d.ID] = &cp
}

// Init populates the catalog. It runs once via an init func; the catalog
// is immutable afterward. Safe to call again (e.g. from a test) but
// pointless.
func Init() {
	register(Definition{ID: Air, Name: "air", Opacity: OpacityAir})
	register(Definition{ID: Bedrock, Name: "bedrock", Opacity: OpacityOpaque, SolidCollider: true, Hardness: -1})
	register(Definition{ID: Stone, Name: "stone", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 1.5})
	register(Definition{ID: Dirt, Name: "dirt", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 0.5})
	register(Definition{ID: Grass, Name: "grass", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 0.6, Tint: [3]float32{0.49, 1.0, 0.36}})
	register(Definition{ID: Sand, Name: "sand", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 0.5})
	register(Definition{ID: Snow, Name: "snow", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 0.1})
	register(Definition{ID: Ice, Name: "ice", Opacity: OpacityTransparent, SolidCollider: true, Hardness: 0.5})
	register(Definition{ID: Gravel, Name: "gravel", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 0.6})
	register(Definition{ID: Water, Name: "water", Opacity: OpacityTransparent, Fluid: true, Hardness: -1})
	register(Definition{ID: Coral, Name: "coral", Opacity: OpacityTransparent, Hardness: 0.2, Tint: [3]float32{1.0, 0.45, 0.6}})
	register(Definition{ID: Wood, Name: "wood", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 2.0})
	register(Definition{ID: Leaves, Name: "leaves", Opacity: OpacityTransparent, SolidCollider: true, Hardness: 0.2, Tint: [3]float32{0.3, 0.65, 0.25}})
	register(Definition{ID: VolcanicRock, Name: "volcanic_rock", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 2.5})
	register(Definition{ID: Obsidian, Name: "obsidian", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 50})
	register(Definition{ID: OreCommon, Name: "ore_common", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 3})
	register(Definition{ID: OreRare, Name: "ore_rare", Opacity: OpacityOpaque, SolidCollider: true, Hardness: 5})
}

func init() { Init() }

func lookup(id BlockID) *Definition {
	if d, ok := defs[id]; ok {
		return d
	}
	return defs[Air]
}

// OpacityOf returns the block's opacity classification.
func OpacityOf(id BlockID) Opacity { return lookup(id).Opacity }

// IsFluid reports whether the block behaves as a fluid for meshing and
// physics purposes.
func IsFluid(id BlockID) bool { return lookup(id).Fluid }

// EmittedLight returns the block's light emission level, 0-15.
func EmittedLight(id BlockID) uint8 { return lookup(id).EmittedLight }

// IsSolidCollider reports whether the block participates in capsule/AABB
// collision sweeps.
func IsSolidCollider(id BlockID) bool { return lookup(id).SolidCollider }

// Tint returns the block's base tint color, used by the mesh builder to
// color faces such as grass or foliage.
func Tint(id BlockID) [3]float32 { return lookup(id).Tint }

// Hardness returns seconds-to-break; negative means unbreakable.
func Hardness(id BlockID) float32 { return lookup(id).Hardness }

// Get returns a copy of the full catalog entry for id.
func Get(id BlockID) Definition { return *lookup(id) }
