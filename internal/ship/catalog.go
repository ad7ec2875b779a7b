package ship

// Progression constants.
const (
	LevelUpXPBase = 150 // XP needed for the first level-up
	XPScaling     = 1.3 // threshold multiplier applied per level
)

// Hull holds the base stats of a ship class before modules and relics.
type Hull struct {
	MaxHP   Layers
	Fitting Fitting
	Speed   float64
	Slots   Slots
	Cap     Capacitor
}

var hulls = map[ShipClass]Hull{
	Frigate: {
		MaxHP:   Layers{Shield: 150, Armor: 100, Hull: 100},
		Fitting: Fitting{CPU: 180, PG: 45},
		Speed:   3.5,
		Slots:   Slots{High: 2, Mid: 2, Low: 2},
		Cap:     Capacitor{Current: 100, Max: 100, Recharge: 2.5},
	},
	Destroyer: {
		MaxHP:   Layers{Shield: 350, Armor: 300, Hull: 300},
		Fitting: Fitting{CPU: 350, PG: 120},
		Speed:   2.2,
		Slots:   Slots{High: 5, Mid: 3, Low: 3},
		Cap:     Capacitor{Current: 250, Max: 250, Recharge: 5},
	},
	Cruiser: {
		MaxHP:   Layers{Shield: 1200, Armor: 1000, Hull: 1000},
		Fitting: Fitting{CPU: 700, PG: 600},
		Speed:   1.4,
		Slots:   Slots{High: 6, Mid: 5, Low: 5},
		Cap:     Capacitor{Current: 600, Max: 600, Recharge: 10},
	},
}

// BaseHull returns the base stats for a class. Unknown classes get a
// minimal 100/100/100 hull so derivation never fails.
func BaseHull(class ShipClass) Hull {
	if h, ok := hulls[class]; ok {
		return h
	}
	return Hull{
		MaxHP:   Layers{Shield: 100, Armor: 100, Hull: 100},
		Fitting: Fitting{CPU: 100, PG: 100},
		Speed:   1,
		Cap:     Capacitor{Current: 100, Max: 100, Recharge: 1},
	}
}

// UpgradeCost is the price of moving into a hull class.
type UpgradeCost struct {
	Materials int
	Credits   int
}

// HullUpgradeCosts lists the price of each class.
var HullUpgradeCosts = map[ShipClass]UpgradeCost{
	Frigate:   {},
	Destroyer: {Materials: 40, Credits: 1000},
	Cruiser:   {Materials: 150, Credits: 4500},
}

// NextClass returns the class after c and false when c is already the top.
func NextClass(c ShipClass) (ShipClass, bool) {
	switch c {
	case Frigate:
		return Destroyer, true
	case Destroyer:
		return Cruiser, true
	default:
		return "", false
	}
}

// Starter items.
var (
	CivilianPulse = Item{
		ID: "civ_pulse", Name: "Civilian Pulse Laser", Description: "Basic rapid-fire energy weapon.",
		Slot: SlotHigh, CPU: 8, PG: 4, Rarity: RarityCommon, Price: 50,
		WeaponType: WeaponEnergy, Damage: 6, DamageType: DamageEM, RateOfFire: 0.8, Range: 300, Tracking: 0.9,
	}
	CivilianShieldBooster = Item{
		ID: "civ_shield_booster", Name: "Civilian Shield Booster", Description: "Spends capacitor to restore shields.",
		Slot: SlotMid, CPU: 15, PG: 10, Rarity: RarityCommon, Price: 100,
		RepairShield: 15, CapCost: 10, ActivationTime: 3,
	}
	Nanofiber = Item{
		ID: "nano_1", Name: "Nanofiber Internal Structure I", Description: "Increases ship velocity.",
		Slot: SlotLow, CPU: 10, PG: 1, Rarity: RarityCommon, Price: 150, MetaLevel: 1,
		SpeedBonus: 0.4,
	}
)

// ItemPool is every item the game can offer.
var ItemPool = []Item{
	CivilianPulse,
	CivilianShieldBooster,
	Nanofiber,

	// Pulse lasers: EM, fast, short range
	{
		ID: "pulse_1", Name: "Small Pulse Laser I", Description: "Standard EM weapon.",
		Slot: SlotHigh, CPU: 14, PG: 8, Rarity: RarityCommon, Price: 500, MetaLevel: 1,
		WeaponType: WeaponEnergy, Damage: 12, DamageType: DamageEM, RateOfFire: 0.75, Range: 320,
	},
	{
		ID: "pulse_2", Name: "Small Pulse Laser II", Description: "T2: higher damage, higher CPU.",
		Slot: SlotHigh, CPU: 22, PG: 12, Rarity: RarityRare, Price: 2500, MetaLevel: 5,
		WeaponType: WeaponEnergy, Damage: 18, DamageType: DamageEM, RateOfFire: 0.65, Range: 350,
	},
	{
		ID: "pulse_faction", Name: "Republic Fleet Pulse Laser", Description: "Faction laser.",
		Slot: SlotHigh, CPU: 16, PG: 9, Rarity: RarityFaction, Price: 15000, MetaLevel: 8,
		WeaponType: WeaponEnergy, Damage: 22, DamageType: DamageEM, RateOfFire: 0.6, Range: 400,
	},

	// Autocannons: kinetic, very fast, very short range
	{
		ID: "ac_1", Name: "150mm Autocannon I", Description: "Kinetic shredder.",
		Slot: SlotHigh, CPU: 8, PG: 4, Rarity: RarityCommon, Price: 450, MetaLevel: 1,
		WeaponType: WeaponProjectile, Damage: 8, DamageType: DamageKinetic, RateOfFire: 0.25, Range: 200,
	},
	{
		ID: "ac_2", Name: "150mm Autocannon II", Description: "T2 autocannon.",
		Slot: SlotHigh, CPU: 12, PG: 6, Rarity: RarityRare, Price: 2200, MetaLevel: 5,
		WeaponType: WeaponProjectile, Damage: 12, DamageType: DamageKinetic, RateOfFire: 0.2, Range: 220,
	},

	// Missiles: explosive, long range, ammo based
	{
		ID: "missile_1", Name: "Light Missile Launcher I", Description: "Fires homing missiles.",
		Slot: SlotHigh, CPU: 30, PG: 25, Rarity: RarityUncommon, Price: 800, MetaLevel: 1,
		WeaponType: WeaponMissile, Damage: 40, DamageType: DamageExplosive, RateOfFire: 3.5, Range: 800,
		AmmoCapacity: 12, ReloadTime: 4,
	},
	{
		ID: "missile_2", Name: "Light Missile Launcher II", Description: "T2 launcher, faster cycle.",
		Slot: SlotHigh, CPU: 40, PG: 35, Rarity: RarityRare, Price: 3000, MetaLevel: 5,
		WeaponType: WeaponMissile, Damage: 55, DamageType: DamageExplosive, RateOfFire: 2.8, Range: 900,
		AmmoCapacity: 16, ReloadTime: 3,
	},
	{
		ID: "missile_faction", Name: "Caldari Navy Light Missile Launcher", Description: "Faction launcher.",
		Slot: SlotHigh, CPU: 32, PG: 28, Rarity: RarityFaction, Price: 20000, MetaLevel: 8,
		WeaponType: WeaponMissile, Damage: 70, DamageType: DamageExplosive, RateOfFire: 2.5, Range: 1000,
		AmmoCapacity: 24, ReloadTime: 2,
	},

	// Shield boosters (active)
	{
		ID: "msb_1", Name: "Medium Shield Booster I", Description: "Burns capacitor to restore shields fast.",
		Slot: SlotMid, CPU: 50, PG: 12, Rarity: RarityUncommon, Price: 1500, MetaLevel: 1,
		RepairShield: 60, CapCost: 40, ActivationTime: 4,
	},
	{
		ID: "ssb_2", Name: "Small Shield Booster II", Description: "Efficient T2 booster.",
		Slot: SlotMid, CPU: 25, PG: 8, Rarity: RarityRare, Price: 2800, MetaLevel: 5,
		RepairShield: 35, CapCost: 18, ActivationTime: 3,
	},

	// Shield extender (passive)
	{
		ID: "mse_2", Name: "Medium Shield Extender I", Description: "Greatly increases shield capacity.",
		Slot: SlotMid, CPU: 45, PG: 70, Rarity: RarityUncommon, Price: 1200, MetaLevel: 1,
		ShieldBonus: 400,
	},

	// Tracking computer
	{
		ID: "tc_1", Name: "Tracking Computer I", Description: "Increases range and tracking.",
		Slot: SlotMid, CPU: 30, PG: 10, Rarity: RarityUncommon, Price: 1100, MetaLevel: 1,
		RangeBonus: 0.15, TrackingBonus: 0.15,
	},

	// Armor repairers (active)
	{
		ID: "sar_1", Name: "Small Armor Repairer I", Description: "Burns capacitor to repair armor.",
		Slot: SlotLow, CPU: 20, PG: 5, Rarity: RarityCommon, Price: 600, MetaLevel: 1,
		RepairArmor: 45, CapCost: 25, ActivationTime: 5,
	},
	{
		ID: "mar_2", Name: "Medium Armor Repairer II", Description: "Strong T2 armor repair.",
		Slot: SlotLow, CPU: 45, PG: 15, Rarity: RarityRare, Price: 3200, MetaLevel: 5,
		RepairArmor: 120, CapCost: 60, ActivationTime: 8,
	},

	// Hull repairer (active)
	{
		ID: "shr_1", Name: "Small Hull Repairer I", Description: "Repairs structure. Inefficient.",
		Slot: SlotLow, CPU: 25, PG: 5, Rarity: RarityUncommon, Price: 800, MetaLevel: 1,
		RepairHull: 30, CapCost: 30, ActivationTime: 10,
	},

	// Damage mods
	{
		ID: "bcs_1", Name: "Ballistic Control System I", Description: "Increases missile damage.",
		Slot: SlotLow, CPU: 35, Rarity: RarityUncommon, Price: 1500, MetaLevel: 1,
		MissileDamageBonus: 0.10,
	},
	{
		ID: "gyro_1", Name: "Gyrostabilizer I", Description: "Increases projectile turret damage.",
		Slot: SlotLow, CPU: 30, Rarity: RarityUncommon, Price: 1400, MetaLevel: 1,
		TurretDamageBonus: 0.10,
	},
	{
		ID: "hs_1", Name: "Heat Sink I", Description: "Increases energy turret damage.",
		Slot: SlotLow, CPU: 25, Rarity: RarityUncommon, Price: 1400, MetaLevel: 1,
		TurretDamageBonus: 0.05,
	},

	// Fitting / speed
	{
		ID: "plate_1", Name: "200mm Steel Plates I", Description: "Adds armor at the cost of speed.",
		Slot: SlotLow, CPU: 20, PG: 30, Rarity: RarityCommon, Price: 400, MetaLevel: 1,
		ArmorBonus: 300, SpeedBonus: -0.3,
	},
	{
		ID: "co_proc_1", Name: "Co-Processor I", Description: "Increases CPU output.",
		Slot: SlotLow, Rarity: RarityUncommon, Price: 1000, MetaLevel: 1,
		CPUBonus: 60,
	},
}

// RelicPool is every relic the game can offer.
var RelicPool = []Relic{
	{ID: "flux_coil", Name: "Flux Coil", Description: "Shield regeneration +25%.", Rarity: RelicCommon, ShieldRegenMult: 0.25},
	{ID: "overdrive", Name: "Overdrive Injector", Description: "Velocity +15%.", Rarity: RelicCommon, SpeedMult: 0.15},
	{ID: "tractor_array", Name: "Tractor Array", Description: "Loot pickup radius +50%.", Rarity: RelicCommon, LootMagnetMult: 0.5},

	{ID: "gyrostabilizer", Name: "Advanced Gyrostabilizer", Description: "Weapon damage +20%.", Rarity: RelicRare, DamageMult: 0.20},
	{ID: "heat_sink", Name: "Advanced Heat Sink", Description: "Rate of fire +15%.", Rarity: RelicRare, FireRateMult: 0.15},
	{ID: "cap_relay", Name: "Capacitor Power Relay", Description: "Capacitor recharge +30%.", Rarity: RelicRare, CapRechargeMult: 0.3},

	{ID: "scavenger", Name: "Scavenger Network", Description: "Kills refill 1 round in every launcher.", Rarity: RelicEpic, AmmoRefillOnKill: 1},
	{ID: "vampire", Name: "Energy Vampire", Description: "Kills restore 10 capacitor.", Rarity: RelicEpic, CapRefillOnKill: 10},
	{ID: "nanobot", Name: "Nanobot Swarm", Description: "Kills repair 2 hull.", Rarity: RelicEpic, HealOnKill: 2},

	{ID: "officer_mod", Name: "Officer Fire Control", Description: "Damage +40%, rate of fire +30%.", Rarity: RelicLegendary, DamageMult: 0.4, FireRateMult: 0.3},
}

// FindItem looks an item up by ID.
func FindItem(id string) (Item, bool) {
	for _, it := range ItemPool {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// NewPlayer returns the state every run starts from.
func NewPlayer() PlayerState {
	hull := BaseHull(Frigate)
	return PlayerState{
		ShipName: "Drifter Mk.I",
		Class:    Frigate,
		Stats: ShipStats{
			HP:    hull.MaxHP,
			MaxHP: hull.MaxHP,
			Resistances: LayerResistances{
				Shield: Resistances{DamageEM: 0, DamageThermal: 20, DamageKinetic: 40, DamageExplosive: 50},
				Armor:  Resistances{DamageEM: 50, DamageThermal: 35, DamageKinetic: 25, DamageExplosive: 10},
				Hull:   Resistances{DamageEM: 33, DamageThermal: 33, DamageKinetic: 33, DamageExplosive: 33},
			},
			Cap:     Capacitor{Current: 100, Max: 100, Recharge: 1},
			Fitting: hull.Fitting,
			Speed:   hull.Speed,
			Slots:   hull.Slots,
		},
		Modules:       []Item{CivilianPulse},
		Inventory:     []Item{CivilianShieldBooster, Nanofiber},
		Credits:       100,
		Level:         1,
		XPToNextLevel: LevelUpXPBase,
	}
}
