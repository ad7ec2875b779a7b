// Package ship holds the persistent player model: hull classes, fittable
// items, relics, the catalog they are drawn from, and the stat deriver that
// turns a fitted ship into combat-ready numbers.
package ship

// SlotType is the fitting rack an item occupies.
type SlotType string

const (
	SlotHigh SlotType = "high" // Weapons
	SlotMid  SlotType = "mid"  // Shields, e-war, propulsion
	SlotLow  SlotType = "low"  // Armor, hull, damage mods
)

// ItemRarity grades fittable items.
type ItemRarity string

const (
	RarityCommon   ItemRarity = "Common"
	RarityUncommon ItemRarity = "Uncommon"
	RarityRare     ItemRarity = "Rare"
	RarityFaction  ItemRarity = "Faction"
)

// RelicRarity grades relics.
type RelicRarity string

const (
	RelicCommon    RelicRarity = "Common"
	RelicRare      RelicRarity = "Rare"
	RelicEpic      RelicRarity = "Epic"
	RelicLegendary RelicRarity = "Legendary"
)

// ShipClass is the hull a player flies.
type ShipClass string

const (
	Frigate   ShipClass = "Frigate"
	Destroyer ShipClass = "Destroyer"
	Cruiser   ShipClass = "Cruiser"
)

// DamageType classifies weapon damage.
type DamageType string

const (
	DamageEM        DamageType = "EM"
	DamageThermal   DamageType = "Thermal"
	DamageKinetic   DamageType = "Kinetic"
	DamageExplosive DamageType = "Explosive"
)

// WeaponType is the weapon family; it decides which damage mods apply and
// whether shots home.
type WeaponType string

const (
	WeaponNone       WeaponType = ""
	WeaponEnergy     WeaponType = "Energy Weapon"
	WeaponProjectile WeaponType = "Projectile"
	WeaponMissile    WeaponType = "Missile Launcher"
)

// Item is a fittable module. Zero-valued stat fields mean the stat is absent.
type Item struct {
	ID          string
	Name        string
	Description string
	Slot        SlotType
	CPU         float64
	PG          float64
	Rarity      ItemRarity
	Price       int
	MetaLevel   int // 0=civilian, 1-4=T1 named, 5=T2, 6+=faction

	// Weapon stats
	WeaponType   WeaponType
	Damage       float64
	DamageType   DamageType
	RateOfFire   float64 // seconds between shots
	Range        float64
	Tracking     float64
	AmmoCapacity int     // 0 = no ammo
	ReloadTime   float64 // seconds

	// Active module stats (repairers)
	RepairShield   float64
	RepairArmor    float64
	RepairHull     float64
	CapCost        float64
	ActivationTime float64 // cycle in seconds

	// Passive stats
	ShieldBonus float64
	ArmorBonus  float64
	HullBonus   float64
	SpeedBonus  float64
	CPUBonus    float64
	PGBonus     float64

	// Damage mods (fractions, 0.10 = +10%)
	MissileDamageBonus float64
	TurretDamageBonus  float64
	TrackingBonus      float64
	RangeBonus         float64
}

// IsWeapon reports whether the item fires: a high-slot item with damage.
func (it Item) IsWeapon() bool {
	return it.Slot == SlotHigh && it.Damage > 0
}

// IsActive reports whether the item is an auto-cycling active module.
func (it Item) IsActive() bool {
	return it.ActivationTime > 0 && it.CapCost > 0
}

// IsMissile reports whether shots from this weapon home on their target.
func (it Item) IsMissile() bool {
	return it.WeaponType == WeaponMissile
}

// Relic is a permanent run-wide bonus.
type Relic struct {
	ID          string
	Name        string
	Description string
	Rarity      RelicRarity

	// Passive multipliers (fractions)
	ShieldRegenMult float64
	DamageMult      float64
	FireRateMult    float64
	SpeedMult       float64
	LootMagnetMult  float64
	CapRechargeMult float64

	// On-kill effects
	AmmoRefillOnKill int
	CapRefillOnKill  float64
	HealOnKill       float64
}

// Layers is the shield/armor/hull triple used for both current and max HP.
type Layers struct {
	Shield float64
	Armor  float64
	Hull   float64
}

// Resistances per damage type, in percent.
type Resistances map[DamageType]float64

// LayerResistances holds resistances per defensive layer.
type LayerResistances struct {
	Shield Resistances
	Armor  Resistances
	Hull   Resistances
}

// Capacitor is the energy pool gating active modules.
type Capacitor struct {
	Current  float64
	Max      float64
	Recharge float64 // units per second
}

// Fitting is the CPU/powergrid budget.
type Fitting struct {
	CPU float64
	PG  float64
}

// Slots counts fitting slots per rack.
type Slots struct {
	High int
	Mid  int
	Low  int
}

// Of returns the slot count for a rack.
func (s Slots) Of(slot SlotType) int {
	switch slot {
	case SlotHigh:
		return s.High
	case SlotMid:
		return s.Mid
	case SlotLow:
		return s.Low
	default:
		return 0
	}
}

// ShipStats is the stat sheet of the player's ship.
type ShipStats struct {
	HP          Layers
	MaxHP       Layers
	Resistances LayerResistances
	Cap         Capacitor
	Fitting     Fitting
	Speed       float64
	Slots       Slots
}

// PlayerState is the persistent run state. It is owned by the run
// controller; combat sessions only ever see a Clone.
type PlayerState struct {
	ShipName      string
	Class         ShipClass
	Stats         ShipStats
	Modules       []Item  // equipped
	Inventory     []Item  // unequipped
	Relics        []Relic // permanent
	Credits       int
	Materials     int
	Level         int
	XP            int
	XPToNextLevel int
}

// Clone returns a deep copy that shares no slices or maps with ps.
func (ps PlayerState) Clone() PlayerState {
	out := ps
	out.Modules = append([]Item(nil), ps.Modules...)
	out.Inventory = append([]Item(nil), ps.Inventory...)
	out.Relics = append([]Relic(nil), ps.Relics...)
	out.Stats.Resistances = LayerResistances{
		Shield: cloneRes(ps.Stats.Resistances.Shield),
		Armor:  cloneRes(ps.Stats.Resistances.Armor),
		Hull:   cloneRes(ps.Stats.Resistances.Hull),
	}
	return out
}

func cloneRes(r Resistances) Resistances {
	if r == nil {
		return nil
	}
	out := make(Resistances, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
