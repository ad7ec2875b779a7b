package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/voidrun/internal/ship"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [items|relics|hulls]",
	Short: "List the item, relic and hull catalog",
	Long: `Shows the modules, relics and hull classes a run can offer.
Without an argument every section is printed.

Examples:
  voidrun catalog
  voidrun catalog items
  voidrun catalog hulls`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"items", "relics", "hulls"},
	Run:       runCatalog,
}

func runCatalog(_ *cobra.Command, args []string) {
	section := ""
	if len(args) == 1 {
		section = args[0]
	}

	switch section {
	case "":
		printItems()
		fmt.Println()
		printRelics()
		fmt.Println()
		printHulls()
	case "items":
		printItems()
	case "relics":
		printRelics()
	case "hulls":
		printHulls()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown catalog section %q\n", section)
		fmt.Fprintln(os.Stderr, "Want one of: items, relics, hulls.")
		os.Exit(1)
	}
}

func printItems() {
	fmt.Println("Items:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, it := range ship.ItemPool {
		maxIDLen = max(maxIDLen, len(it.ID))
	}

	fmt.Printf("  %-*s  %-4s  %-34s  %5s  %5s  %7s  %s\n", maxIDLen, "ID", "Slot", "Name", "CPU", "PG", "Price", "Stats")
	fmt.Printf("  %-*s  %-4s  %-34s  %5s  %5s  %7s  %s\n", maxIDLen, "--", "----", "----", "---", "--", "-----", "-----")
	for _, it := range ship.ItemPool {
		fmt.Printf("  %-*s  %-4s  %-34s  %5.0f  %5.0f  %7d  %s\n",
			maxIDLen, it.ID, it.Slot, it.Name, it.CPU, it.PG, it.Price, itemStats(it))
	}
}

// itemStats summarises the non-zero stats of an item.
func itemStats(it ship.Item) string {
	var parts []string
	add := func(format string, v float64) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf(format, v))
		}
	}
	if it.IsWeapon() {
		parts = append(parts, fmt.Sprintf("%.0f %s dmg every %.1fs, range %.0f", it.Damage, it.DamageType, it.RateOfFire, it.Range))
		if it.AmmoCapacity > 0 {
			parts = append(parts, fmt.Sprintf("%d rounds, %.0fs reload", it.AmmoCapacity, it.ReloadTime))
		}
	}
	if it.IsActive() {
		parts = append(parts, fmt.Sprintf("every %.0fs for %.0f cap", it.ActivationTime, it.CapCost))
	}
	add("+%.0f shield rep", it.RepairShield)
	add("+%.0f armor rep", it.RepairArmor)
	add("+%.0f hull rep", it.RepairHull)
	add("+%.0f shield", it.ShieldBonus)
	add("+%.0f armor", it.ArmorBonus)
	add("+%.0f hull", it.HullBonus)
	add("+%.1f speed", it.SpeedBonus)
	add("+%.0f CPU", it.CPUBonus)
	add("+%.0f PG", it.PGBonus)
	add("+%.0f%% missile dmg", it.MissileDamageBonus*100)
	add("+%.0f%% turret dmg", it.TurretDamageBonus*100)
	add("+%.0f%% tracking", it.TrackingBonus*100)
	add("+%.0f%% range", it.RangeBonus*100)
	return strings.Join(parts, ", ")
}

func printRelics() {
	fmt.Println("Relics:")
	fmt.Println()

	maxIDLen := 2
	for _, r := range ship.RelicPool {
		maxIDLen = max(maxIDLen, len(r.ID))
	}

	fmt.Printf("  %-*s  %-24s  %-9s  %s\n", maxIDLen, "ID", "Name", "Rarity", "Effect")
	fmt.Printf("  %-*s  %-24s  %-9s  %s\n", maxIDLen, "--", "----", "------", "------")
	for _, r := range ship.RelicPool {
		fmt.Printf("  %-*s  %-24s  %-9s  %s\n", maxIDLen, r.ID, r.Name, r.Rarity, r.Description)
	}
}

func printHulls() {
	fmt.Println("Hulls:")
	fmt.Println()

	fmt.Printf("  %-10s  %-16s  %-11s  %5s  %-8s  %s\n", "Class", "Shield/Arm/Hull", "CPU/PG", "Speed", "Slots", "Upgrade")
	fmt.Printf("  %-10s  %-16s  %-11s  %5s  %-8s  %s\n", "-----", "---------------", "------", "-----", "-----", "-------")
	for _, class := range []ship.ShipClass{ship.Frigate, ship.Destroyer, ship.Cruiser} {
		h := ship.BaseHull(class)
		cost := ship.HullUpgradeCosts[class]
		upgrade := "starter"
		if cost.Credits > 0 || cost.Materials > 0 {
			upgrade = fmt.Sprintf("%d cr, %d mat", cost.Credits, cost.Materials)
		}
		fmt.Printf("  %-10s  %-16s  %-11s  %5.1f  %-8s  %s\n",
			class,
			fmt.Sprintf("%.0f/%.0f/%.0f", h.MaxHP.Shield, h.MaxHP.Armor, h.MaxHP.Hull),
			fmt.Sprintf("%.0f/%.0f", h.Fitting.CPU, h.Fitting.PG),
			h.Speed,
			fmt.Sprintf("%d/%d/%d", h.Slots.High, h.Slots.Mid, h.Slots.Low),
			upgrade)
	}
}
