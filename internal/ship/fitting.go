package ship

import (
	"errors"
	"fmt"
)

// Fitting errors.
var (
	ErrSlotsFull   = errors.New("ship: no free slot in rack")
	ErrCPUExceeded = errors.New("ship: cpu budget exceeded")
	ErrPGExceeded  = errors.New("ship: powergrid budget exceeded")
	ErrNoSuchItem  = errors.New("ship: no item at index")
)

// FittingUsage sums the CPU and powergrid used by equipped modules and
// returns them with the budgets from the stat sheet.
func FittingUsage(ps PlayerState) (cpuUsed, pgUsed, cpuMax, pgMax float64) {
	for _, m := range ps.Modules {
		cpuUsed += m.CPU
		pgUsed += m.PG
	}
	return cpuUsed, pgUsed, ps.Stats.Fitting.CPU, ps.Stats.Fitting.PG
}

// UsedSlots counts equipped modules in a rack.
func UsedSlots(ps PlayerState, slot SlotType) int {
	n := 0
	for _, m := range ps.Modules {
		if m.Slot == slot {
			n++
		}
	}
	return n
}

// CanFit reports whether item can be added to the current fit.
func CanFit(ps PlayerState, item Item) error {
	if UsedSlots(ps, item.Slot) >= ps.Stats.Slots.Of(item.Slot) {
		return ErrSlotsFull
	}
	cpuUsed, pgUsed, cpuMax, pgMax := FittingUsage(ps)
	if cpuUsed+item.CPU > cpuMax {
		return ErrCPUExceeded
	}
	if pgUsed+item.PG > pgMax {
		return ErrPGExceeded
	}
	return nil
}

// Equip moves the inventory item at idx into the fit and recalculates
// the stat sheet.
func Equip(ps *PlayerState, idx int) error {
	if idx < 0 || idx >= len(ps.Inventory) {
		return fmt.Errorf("equip %d: %w", idx, ErrNoSuchItem)
	}
	item := ps.Inventory[idx]
	if err := CanFit(*ps, item); err != nil {
		return fmt.Errorf("equip %s: %w", item.ID, err)
	}

	next := ps.Clone()
	next.Inventory = append(next.Inventory[:idx], next.Inventory[idx+1:]...)
	next.Modules = append(next.Modules, item)
	*ps = Recalculate(next)
	return nil
}

// Unequip moves the equipped module at idx back to the inventory and
// recalculates the stat sheet.
func Unequip(ps *PlayerState, idx int) error {
	if idx < 0 || idx >= len(ps.Modules) {
		return fmt.Errorf("unequip %d: %w", idx, ErrNoSuchItem)
	}
	item := ps.Modules[idx]

	next := ps.Clone()
	next.Modules = append(next.Modules[:idx], next.Modules[idx+1:]...)
	next.Inventory = append(next.Inventory, item)
	*ps = Recalculate(next)
	return nil
}
