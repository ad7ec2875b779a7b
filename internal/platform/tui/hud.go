package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/voidrun/internal/combat"
)

// hudHeight is the number of lines the HUD takes above the arena.
const hudHeight = 4

const (
	minBarWidth = 8
	maxBarWidth = 20
)

// hud renders the combat status lines: defensive layers, capacitor, XP,
// weapon magazines and the boss bar.
type hud struct {
	shield progress.Model
	armor  progress.Model
	hull   progress.Model
	cap    progress.Model
	xp     progress.Model
	boss   progress.Model
}

func newBar(color string) progress.Model {
	return progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
		progress.WithFillCharacters('█', '░'),
		progress.WithWidth(minBarWidth),
	)
}

func newHUD() hud {
	return hud{
		shield: newBar("39"),
		armor:  newBar("214"),
		hull:   newBar("196"),
		cap:    newBar("226"),
		xp:     newBar("135"),
		boss:   newBar("160"),
	}
}

// resize fits the bars to a terminal width.
func (h *hud) resize(width int) {
	w := min(max(width/3-16, minBarWidth), maxBarWidth)
	h.shield.Width = w
	h.armor.Width = w
	h.hull.Width = w
	h.cap.Width = w
	h.xp.Width = w
	h.boss.Width = min(max(width-30, minBarWidth), 3*maxBarWidth)
}

var (
	hudLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hudWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	hudBossTag = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160"))
)

func fraction(cur, maxV float64) float64 {
	if maxV <= 0 {
		return 0
	}
	return min(max(cur/maxV, 0), 1)
}

func (h hud) gauge(label string, bar progress.Model, cur, maxV float64) string {
	return hudLabel.Render(label) + " " + bar.ViewAs(fraction(cur, maxV)) + " " +
		hudValue.Render(fmt.Sprintf("%4.0f/%-4.0f", cur, maxV))
}

// View renders exactly hudHeight lines for a frame.
func (h hud) View(f combat.Frame) string {
	p := f.Player
	lines := make([]string, hudHeight)

	lines[0] = strings.Join([]string{
		h.gauge("SHD", h.shield, p.HP.Shield, p.MaxHP.Shield),
		h.gauge("ARM", h.armor, p.HP.Armor, p.MaxHP.Armor),
		h.gauge("HUL", h.hull, p.HP.Hull, p.MaxHP.Hull),
	}, "  ")

	xp := hudLabel.Render(fmt.Sprintf("L%-2d", f.Level)) + " " +
		h.xp.ViewAs(fraction(float64(f.XP), float64(f.XPToNext))) + " " +
		hudValue.Render(fmt.Sprintf("%d/%d", f.XP, f.XPToNext))
	tally := hudValue.Render(fmt.Sprintf("kills %d/%d  cr %d  mat %d",
		f.Kills, f.KillTarget, f.Credits, f.Materials))
	lines[1] = strings.Join([]string{h.gauge("CAP", h.cap, p.Cap, p.CapMax), xp, tally}, "  ")

	weapons := make([]string, 0, len(f.Weapons))
	for _, w := range f.Weapons {
		weapons = append(weapons, weaponLine(w))
	}
	lines[2] = strings.Join(weapons, hudLabel.Render(" | "))
	if f.Paused {
		lines[2] += "  " + hudWarn.Render("[PAUSED]")
	}

	if f.HasBoss {
		lines[3] = hudBossTag.Render(f.BossName) + " " + h.boss.ViewAs(f.BossHP)
	}
	return strings.Join(lines, "\n")
}

func weaponLine(w combat.WeaponStatus) string {
	switch {
	case w.Reloading:
		return hudWarn.Render(fmt.Sprintf("%s reloading %d%%", w.Name, int(w.Reload*100)))
	case w.Capacity > 0:
		return hudValue.Render(fmt.Sprintf("%s %d/%d", w.Name, w.Ammo, w.Capacity))
	default:
		return hudValue.Render(w.Name)
	}
}
