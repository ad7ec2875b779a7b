package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/voidrun/internal/combat"
	"github.com/vovakirdan/voidrun/internal/run"
	"github.com/vovakirdan/voidrun/internal/ship"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// nodeColors tints map nodes by type.
var nodeColors = map[run.NodeType]lipgloss.Color{
	run.NodeStart:  lipgloss.Color("252"),
	run.NodeCombat: lipgloss.Color("252"),
	run.NodeElite:  lipgloss.Color("208"),
	run.NodeEvent:  lipgloss.Color("135"),
	run.NodeShop:   lipgloss.Color("226"),
	run.NodeRest:   lipgloss.Color("10"),
	run.NodeBoss:   lipgloss.Color("160"),
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.overlay {
	case overlayGameOver:
		body = m.viewGameOver()
	case overlayEventResult:
		body = m.viewEventResult()
	case overlayFitting:
		body = m.viewFitting()
	default:
		body = m.viewPhase()
	}

	return body + "\n" + m.viewFooter()
}

func (m Model) viewPhase() string {
	if sess := m.ctrl.Session(); sess != nil && sess.State() == combat.StateLevelUpPending {
		return m.viewLevelUp(sess)
	}
	switch m.ctrl.Phase() {
	case run.PhaseCombat:
		return m.viewCombat()
	case run.PhaseRelic:
		return m.viewRelic()
	case run.PhaseEvent:
		return m.viewEvent()
	case run.PhaseShop:
		return m.viewShop()
	case run.PhaseRest:
		return m.viewRest()
	default:
		return m.viewMap()
	}
}

// bodyHeight is the space above the footer.
func (m Model) bodyHeight() int {
	return max(1, m.config.ScreenH-footerHeight)
}

// place centres a panel in the body area.
func (m Model) place(content string) string {
	return lipgloss.Place(m.config.ScreenW, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewFooter() string {
	status := ""
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}
	return status + "\n" + dimStyle.Render(m.help.View(m.keys))
}

// option renders one selectable line.
func option(i, cursor int, text string) string {
	line := fmt.Sprintf("%d. %s", i+1, text)
	if i == cursor {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func (m Model) viewCombat() string {
	sess := m.ctrl.Session()
	if sess == nil {
		return m.place(dimStyle.Render("Warping in..."))
	}
	sess.Render(m.screen)
	return m.hud.View(sess.Frame()) + "\n" + RenderScreen(m.screen)
}

func (m Model) viewMap() string {
	var b strings.Builder
	ps := m.ctrl.Player()

	b.WriteString(titleStyle.Render(fmt.Sprintf("SECTOR %d", m.ctrl.Sector())))
	b.WriteString(dimStyle.Render(fmt.Sprintf("   tier %d/%d   %s   L%d   %d cr   %d mat",
		m.ctrl.Tier()+1, run.MapDepth, ps.Class, ps.Level, ps.Credits, ps.Materials)))
	b.WriteString("\n\n")

	nodes := m.ctrl.Map()
	for t := len(nodes) - 1; t >= 0; t-- {
		cells := make([]string, len(nodes[t]))
		for j, n := range nodes[t] {
			label := fmt.Sprintf("%-6s", n.Type)
			style := lipgloss.NewStyle().Foreground(nodeColors[n.Type])
			switch {
			case n.Completed:
				label = fmt.Sprintf("%-6s", "done")
				style = goodStyle
			case t < m.ctrl.Tier():
				style = dimStyle
			case t == m.ctrl.Tier() && j == m.cursor:
				style = selectedStyle
			case t > m.ctrl.Tier():
				style = style.Faint(true)
			}
			cells[j] = style.Render("[" + label + "]")
		}
		marker := "  "
		if t == m.ctrl.Tier() {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%2d  %s\n", marker, t+1, strings.Join(cells, " ")))
	}

	b.WriteString("\n")
	b.WriteString(vitalsLine(ps))
	return m.place(panelStyle.Render(b.String()))
}

func vitalsLine(ps ship.PlayerState) string {
	hp, maxHP := ps.Stats.HP, ps.Stats.MaxHP
	return fmt.Sprintf("shield %.0f/%.0f  armor %.0f/%.0f  hull %.0f/%.0f  cap %.0f/%.0f",
		hp.Shield, maxHP.Shield, hp.Armor, maxHP.Armor, hp.Hull, maxHP.Hull,
		ps.Stats.Cap.Current, ps.Stats.Cap.Max)
}

func (m Model) viewLevelUp(sess *combat.Session) string {
	var b strings.Builder
	f := sess.Frame()
	b.WriteString(titleStyle.Render(fmt.Sprintf("LEVEL UP  %d -> %d", f.Level, f.Level+1)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Pick a module for the cargo hold"))
	b.WriteString("\n\n")
	for i, it := range m.ctrl.LevelUpOptions() {
		b.WriteString(option(i, m.cursor, itemLine(it)))
		b.WriteString("\n")
	}
	return m.place(panelStyle.Render(b.String()))
}

func (m Model) viewRelic() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SALVAGED RELICS"))
	b.WriteString("\n\n")
	for i, r := range m.ctrl.RelicOptions() {
		b.WriteString(option(i, m.cursor, fmt.Sprintf("%s [%s]", r.Name, r.Rarity)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("     " + r.Description))
		b.WriteString("\n")
	}
	return m.place(panelStyle.Render(b.String()))
}

func (m Model) viewEvent() string {
	if m.loading {
		return m.place(dimStyle.Render("Receiving transmission..."))
	}
	if m.event == nil {
		return m.place(dimStyle.Render("Signal lost. Press enter to retry."))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.event.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(60).Render(m.event.Description))
	b.WriteString("\n\n")
	for i, c := range m.event.Choices {
		text := c.Text
		if s := c.Reward.String(); s != "" {
			text += dimStyle.Render("  (" + s + ")")
		}
		b.WriteString(option(i, m.cursor, text))
		b.WriteString("\n")
	}
	return m.place(panelStyle.Render(b.String()))
}

func (m Model) viewEventResult() string {
	if m.result == nil {
		return m.place("")
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(60).Render(m.result.Outcome))
	if s := m.result.Reward.String(); s != "" {
		b.WriteString("\n\n")
		style := goodStyle
		if m.result.Reward.Damage > 0 {
			style = badStyle
		}
		b.WriteString(style.Render(s))
	}
	return m.place(panelStyle.Render(b.String()))
}

// shopWindow is how many offers are listed at once.
func (m Model) shopWindow() int {
	return max(3, m.bodyHeight()-10)
}

func (m Model) viewShop() string {
	var b strings.Builder
	ps := m.ctrl.Player()

	b.WriteString(titleStyle.Render("STATION MARKET"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("   %d cr   %d mat", ps.Credits, ps.Materials)))
	b.WriteString("\n")
	if next, cost, ok := m.ctrl.HullUpgrade(); ok {
		b.WriteString(dimStyle.Render(fmt.Sprintf("u: upgrade hull to %s (%d cr, %d mat)", next, cost.Credits, cost.Materials)))
	} else {
		b.WriteString(dimStyle.Render("hull at top class"))
	}
	b.WriteString("\n\n")

	offers := m.ctrl.ShopOffers()
	window := m.shopWindow()
	start := min(max(0, m.cursor-window/2), max(0, len(offers)-window))
	end := min(len(offers), start+window)
	for i := start; i < end; i++ {
		it := offers[i]
		line := fmt.Sprintf("%-32s %6d cr", itemLine(it), it.Price)
		if it.Price > ps.Credits && i != m.cursor {
			line = dimStyle.Render(line)
		}
		b.WriteString(option(i, m.cursor, line))
		b.WriteString("\n")
	}
	if m.cursor < len(offers) {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(offers[m.cursor].Description))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("esc: undock"))
	return m.place(panelStyle.Render(b.String()))
}

func (m Model) viewRest() string {
	ps := m.ctrl.Player()
	var b strings.Builder
	b.WriteString(titleStyle.Render("REPAIR DOCK"))
	b.WriteString("\n\n")
	b.WriteString(vitalsLine(ps))
	b.WriteString("\n\n")
	b.WriteString("Press enter to repair every layer and move on.")
	return m.place(panelStyle.Render(b.String()))
}

func (m Model) viewFitting() string {
	ps := m.ctrl.Player()
	cpuUsed, pgUsed, cpuMax, pgMax := ship.FittingUsage(ps)

	header := titleStyle.Render(fmt.Sprintf("FITTING  %s %s", ps.ShipName, ps.Class)) +
		dimStyle.Render(fmt.Sprintf("   CPU %.0f/%.0f   PG %.0f/%.0f   slots H%d/%d M%d/%d L%d/%d",
			cpuUsed, cpuMax, pgUsed, pgMax,
			ship.UsedSlots(ps, ship.SlotHigh), ps.Stats.Slots.High,
			ship.UsedSlots(ps, ship.SlotMid), ps.Stats.Slots.Mid,
			ship.UsedSlots(ps, ship.SlotLow), ps.Stats.Slots.Low))

	fitted := m.itemColumn("Fitted", ps.Modules, m.column == columnFitted)
	cargo := m.itemColumn("Cargo", ps.Inventory, m.column == columnInventory)

	relics := make([]string, 0, len(ps.Relics))
	for _, r := range ps.Relics {
		relics = append(relics, r.Name)
	}
	footer := dimStyle.Render("relics: none")
	if len(relics) > 0 {
		footer = dimStyle.Render("relics: " + strings.Join(relics, ", "))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, fitted, "  ", cargo),
		"",
		vitalsLine(ps),
		footer,
	)
	return m.place(body)
}

func (m Model) itemColumn(title string, items []ship.Item, active bool) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  empty"))
	}
	for i, it := range items {
		cursor := -1
		if active {
			cursor = m.cursor
		}
		b.WriteString(option(i, cursor, itemLine(it)))
		b.WriteString("\n")
	}
	style := panelStyle.Width(40)
	if active {
		style = style.BorderForeground(lipgloss.Color("57"))
	}
	return style.Render(b.String())
}

func itemLine(it ship.Item) string {
	return fmt.Sprintf("%s [%s]", it.Name, it.Slot)
}

func (m Model) viewGameOver() string {
	if m.summary == nil {
		return m.place("")
	}
	s := m.summary
	var b strings.Builder
	b.WriteString(badStyle.Bold(true).Render("SHIP DESTROYED"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Level      %d\n", s.Level))
	b.WriteString(fmt.Sprintf("Sector     %d\n", s.Sector))
	b.WriteString(fmt.Sprintf("Tiers      %d\n", s.TiersCleared))
	b.WriteString(fmt.Sprintf("Kills      %d\n", s.Kills))
	b.WriteString(fmt.Sprintf("Credits    %d\n", s.Credits))
	b.WriteString(fmt.Sprintf("Materials  %d\n", s.Materials))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: new run   q: quit"))
	return m.place(panelStyle.Render(b.String()))
}
