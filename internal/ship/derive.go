package ship

// Derived is the combat-ready stat bundle computed from a PlayerState.
// It is recomputed every frame and never cached.
type Derived struct {
	Speed       float64
	MaxHP       Layers
	CapMax      float64
	CapRecharge float64

	Weapons       []Item // equipped items that fire, in fitting order
	ActiveModules []Item // equipped auto-cycling modules, in fitting order

	MagnetMult      float64 // starts at 1
	DamageMult      float64 // starts at 1
	ShieldRegenMult float64 // starts at 0
	FireRateMult    float64 // starts at 0
	RangeBonus      float64 // sum of equipped RangeBonus fractions
}

// Derive maps a player state to its derived stats. It is pure: ps is
// only read and absent optional fields count as zero.
func Derive(ps PlayerState) Derived {
	hull := BaseHull(ps.Class)

	d := Derived{
		Speed:       hull.Speed,
		MaxHP:       hull.MaxHP,
		CapMax:      hull.Cap.Max,
		CapRecharge: ps.Stats.Cap.Recharge,
		MagnetMult:  1,
		DamageMult:  1,
	}
	if d.CapRecharge <= 0 {
		d.CapRecharge = hull.Cap.Recharge
	}

	for _, m := range ps.Modules {
		d.MaxHP.Shield += m.ShieldBonus
		d.MaxHP.Armor += m.ArmorBonus
		d.MaxHP.Hull += m.HullBonus
		d.Speed += m.SpeedBonus
		d.RangeBonus += m.RangeBonus

		if m.IsWeapon() {
			d.Weapons = append(d.Weapons, m)
		}
		if m.IsActive() {
			d.ActiveModules = append(d.ActiveModules, m)
		}
	}

	for _, r := range ps.Relics {
		d.Speed *= 1 + r.SpeedMult
		d.MagnetMult += r.LootMagnetMult
		d.DamageMult += r.DamageMult
		d.ShieldRegenMult += r.ShieldRegenMult
		d.FireRateMult += r.FireRateMult
		d.CapRecharge *= 1 + r.CapRechargeMult
	}

	if d.Speed < 0 {
		d.Speed = 0
	}
	return d
}

// ChangeClass moves ps into a new hull class. The capacitor recharge is
// reset to the new hull's rate; the rest of the sheet is rebuilt by
// Recalculate.
func ChangeClass(ps PlayerState, class ShipClass) PlayerState {
	out := ps.Clone()
	out.Class = class
	out.Stats.Cap.Recharge = BaseHull(class).Cap.Recharge
	return Recalculate(out)
}

// Recalculate returns ps with its stat sheet maxima (HP, capacitor max,
// fitting, speed, slots) rebuilt from the hull and equipped modules.
// Current HP and capacitor are only lowered to fit the new maxima.
func Recalculate(ps PlayerState) PlayerState {
	out := ps.Clone()
	hull := BaseHull(ps.Class)

	maxHP := hull.MaxHP
	fit := hull.Fitting
	speed := hull.Speed
	for _, m := range ps.Modules {
		maxHP.Shield += m.ShieldBonus
		maxHP.Armor += m.ArmorBonus
		maxHP.Hull += m.HullBonus
		fit.CPU += m.CPUBonus
		fit.PG += m.PGBonus
		speed += m.SpeedBonus
	}

	out.Stats.MaxHP = maxHP
	out.Stats.Cap.Max = hull.Cap.Max
	out.Stats.Fitting = fit
	out.Stats.Speed = speed
	out.Stats.Slots = hull.Slots

	out.Stats.HP.Shield = min(out.Stats.HP.Shield, maxHP.Shield)
	out.Stats.HP.Armor = min(out.Stats.HP.Armor, maxHP.Armor)
	out.Stats.HP.Hull = min(out.Stats.HP.Hull, maxHP.Hull)
	out.Stats.Cap.Current = min(out.Stats.Cap.Current, out.Stats.Cap.Max)
	return out
}
