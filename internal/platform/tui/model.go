package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/voidrun/internal/combat"
	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/run"
	"github.com/vovakirdan/voidrun/internal/storage"
)

// footerHeight covers the status line and the help bar.
const footerHeight = 2

type overlay int

const (
	overlayNone overlay = iota
	overlayFitting
	overlayEventResult
	overlayGameOver
)

// Fitting columns.
const (
	columnFitted = iota
	columnInventory
)

// eventMsg carries a generated event back into the update loop.
type eventMsg struct {
	event run.Event
	err   error
}

// Model is the Bubble Tea model for a voidrun run.
type Model struct {
	ctrl      *run.Controller
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	screen    *core.Screen
	keyMapper *KeyMapper
	held      *HeldKeys
	keys      KeyMap
	help      help.Model
	hud       hud

	cursor    int
	column    int
	overlay   overlay
	fitPaused bool // the fitting screen paused the session

	event   *run.Event
	loading bool
	result  *run.EventResult
	summary *run.Summary

	status   string
	quitting bool
}

// NewModel creates a new Bubble Tea model around a run controller.
// store and logger may be nil.
func NewModel(ctrl *run.Controller, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		ctrl:      ctrl,
		store:     store,
		logger:    logger,
		config:    cfg,
		screen:    core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-hudHeight-footerHeight)),
		keyMapper: NewKeyMapper(),
		held:      NewHeldKeys(DefaultHoldFrames),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		hud:       newHUD(),
	}
	m.help.Width = cfg.ScreenW
	m.hud.resize(cfg.ScreenW)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case eventMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		evt := msg.event
		m.event = &evt
		m.cursor = 0
		return m, nil
	}

	return m, nil
}

// handleResize processes window resize events. The arena keeps its
// world size; only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-hudHeight-footerHeight))
	m.help.Width = msg.Width
	m.hud.resize(msg.Width)
	return m, nil
}

// handleTick steps the live combat session, if any.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.config.TickRate)
	if m.ctrl.Phase() != run.PhaseCombat {
		return m, next
	}

	sess, err := m.ctrl.StartSession()
	if err != nil {
		m.status = err.Error()
		return m, next
	}

	res := sess.Step(m.held.Frame())
	switch res.Outcome {
	case combat.OutcomeLevelUp:
		m.held.Release()
		m.cursor = 0

	case combat.OutcomeCompleted:
		m.recordSession(sess, "completed")
		if err := m.ctrl.Complete(*res.Completion); err != nil {
			m.status = err.Error()
			return m, next
		}
		m.held.Release()
		m.cursor = 0
		m.status = fmt.Sprintf("Sector node cleared: +%d cr, +%d mat, +%d xp",
			res.Completion.Loot.Credits, res.Completion.Loot.Materials, res.Completion.Loot.XP)

	case combat.OutcomeDied:
		m.recordSession(sess, "died")
		sum := m.ctrl.Die()
		m.recordRun(sum)
		m.summary = &sum
		m.overlay = overlayGameOver
		m.held.Release()
		m.status = ""
	}
	return m, next
}

// handleKey routes keyboard input to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.overlay {
	case overlayGameOver:
		if key.Matches(msg, m.keys.Confirm) {
			m.overlay = overlayNone
			m.summary = nil
			m.cursor = 0
		}
		return m, nil
	case overlayEventResult:
		if key.Matches(msg, m.keys.Confirm, m.keys.Back) {
			m.overlay = overlayNone
			m.result = nil
			m.cursor = 0
		}
		return m, nil
	case overlayFitting:
		return m.handleFittingKey(msg)
	}

	if sess := m.ctrl.Session(); sess != nil && sess.State() == combat.StateLevelUpPending {
		return m.handleLevelUpKey(msg)
	}

	switch m.ctrl.Phase() {
	case run.PhaseMap:
		return m.handleMapKey(msg)
	case run.PhaseCombat:
		return m.handleCombatKey(msg)
	case run.PhaseRelic:
		return m.handleRelicKey(msg)
	case run.PhaseEvent:
		return m.handleEventKey(msg)
	case run.PhaseShop:
		return m.handleShopKey(msg)
	case run.PhaseRest:
		return m.handleRestKey(msg)
	}
	return m, nil
}

// navigate moves the cursor over n options. It reports the chosen index
// when the key confirms a selection; digits pick an option directly.
func (m *Model) navigate(msg tea.KeyMsg, n int) (int, bool) {
	if n == 0 {
		return 0, false
	}
	if d, err := strconv.Atoi(msg.String()); err == nil && d >= 1 && d <= n {
		m.cursor = d - 1
		return m.cursor, true
	}
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp, MenuActionLeft:
		m.cursor = (m.cursor - 1 + n) % n
	case MenuActionDown, MenuActionRight:
		m.cursor = (m.cursor + 1) % n
	case MenuActionSelect:
		m.cursor = min(m.cursor, n-1)
		return m.cursor, true
	}
	return 0, false
}

func (m *Model) openFitting() {
	m.overlay = overlayFitting
	m.column = columnFitted
	m.cursor = 0
	if sess := m.ctrl.Session(); sess != nil && !sess.Paused() {
		sess.SetPaused(true)
		m.fitPaused = true
	}
	m.held.Release()
}

func (m *Model) closeFitting() {
	m.overlay = overlayNone
	m.cursor = 0
	if m.fitPaused {
		if sess := m.ctrl.Session(); sess != nil {
			sess.SetPaused(false)
		}
		m.fitPaused = false
	}
}

func (m Model) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Fitting) {
		m.openFitting()
		return m, nil
	}
	i, ok := m.navigate(msg, len(m.ctrl.Nodes()))
	if !ok {
		return m, nil
	}

	node, err := m.ctrl.Select(i)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.cursor = 0
	m.status = ""

	switch m.ctrl.Phase() {
	case run.PhaseCombat:
		if _, err := m.ctrl.StartSession(); err != nil {
			m.status = err.Error()
		}
	case run.PhaseEvent:
		m.event = nil
		m.loading = true
		return m, fetchEvent(m.ctrl)
	}
	m.logger.Debug("node entered", "node", node.ID, "type", node.Type)
	return m, nil
}

func (m Model) handleCombatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := m.ctrl.Session()
	if sess == nil {
		return m, nil
	}
	if key.Matches(msg, m.keys.Fitting) {
		m.openFitting()
		return m, nil
	}

	action, _ := m.keyMapper.MapKey(msg)
	switch action {
	case core.ActionPause:
		sess.SetPaused(!sess.Paused())
		m.held.Release()
	case core.ActionBack:
		m.held.Release()
	default:
		m.held.Press(action)
	}
	return m, nil
}

func (m Model) handleLevelUpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	i, ok := m.navigate(msg, len(m.ctrl.LevelUpOptions()))
	if !ok {
		return m, nil
	}
	item := m.ctrl.LevelUpOptions()[i]
	if err := m.ctrl.ApplyLevelUp(i); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.cursor = 0
	m.status = fmt.Sprintf("Level %d: %s added to the cargo hold", m.ctrl.Player().Level, item.Name)
	return m, nil
}

func (m Model) handleRelicKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.ctrl.RelicOptions()
	i, ok := m.navigate(msg, len(options))
	if !ok {
		return m, nil
	}
	if err := m.ctrl.ApplyRelic(i); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.cursor = 0
	m.status = "Relic acquired: " + options[i].Name
	return m, nil
}

func (m Model) handleEventKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	if m.event == nil {
		// a failed fetch leaves the node waiting; enter retries
		if key.Matches(msg, m.keys.Confirm) {
			m.loading = true
			return m, fetchEvent(m.ctrl)
		}
		return m, nil
	}

	i, ok := m.navigate(msg, len(m.event.Choices))
	if !ok {
		return m, nil
	}
	res, err := m.ctrl.ResolveEvent(i)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.event = nil
	m.result = &res
	m.overlay = overlayEventResult
	m.cursor = 0
	return m, nil
}

func (m Model) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Fitting):
		m.openFitting()
		return m, nil
	case key.Matches(msg, m.keys.Upgrade):
		if err := m.ctrl.UpgradeHull(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "Hull upgraded to " + string(m.ctrl.Player().Class)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if err := m.ctrl.LeaveShop(); err != nil {
			m.status = err.Error()
		}
		m.cursor = 0
		return m, nil
	}

	offers := m.ctrl.ShopOffers()
	i, ok := m.navigate(msg, len(offers))
	if !ok {
		return m, nil
	}
	if err := m.ctrl.Buy(i); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("Bought %s for %d cr", offers[i].Name, offers[i].Price)
	return m, nil
}

func (m Model) handleRestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Fitting):
		m.openFitting()
	case key.Matches(msg, m.keys.Confirm):
		if err := m.ctrl.Rest(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.cursor = 0
		m.status = "Repairs complete"
	}
	return m, nil
}

func (m Model) handleFittingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back, m.keys.Fitting) {
		m.closeFitting()
		return m, nil
	}
	if key.Matches(msg, m.keys.Switch) {
		m.column = 1 - m.column
		m.cursor = 0
		return m, nil
	}

	ps := m.ctrl.Player()
	n := len(ps.Modules)
	if m.column == columnInventory {
		n = len(ps.Inventory)
	}
	i, ok := m.navigate(msg, n)
	if !ok {
		return m, nil
	}

	var err error
	if m.column == columnInventory {
		err = m.ctrl.Equip(i)
		if err == nil {
			m.status = "Fitted " + ps.Inventory[i].Name
		}
	} else {
		err = m.ctrl.Unequip(i)
		if err == nil {
			m.status = "Unfitted " + ps.Modules[i].Name
		}
	}
	if err != nil {
		m.status = err.Error()
	}
	m.cursor = 0
	return m, nil
}

// fetchEvent generates the current node's event off the update loop.
func fetchEvent(ctrl *run.Controller) tea.Cmd {
	return func() tea.Msg {
		evt, err := ctrl.Event(context.Background())
		return eventMsg{event: evt, err: err}
	}
}

// recordSession logs a finished session. Best effort: failures are logged.
func (m *Model) recordSession(sess *combat.Session, outcome string) {
	if m.store == nil {
		return
	}
	f := sess.Frame()
	node, _ := m.ctrl.CurrentNode()
	rec := storage.SessionRecord{
		RunID:     m.ctrl.ID(),
		Node:      node.Type.String(),
		Outcome:   outcome,
		Kills:     f.Kills,
		Frames:    f.Frame,
		Credits:   f.Collected.Credits,
		Materials: f.Collected.Materials,
		XP:        f.Collected.XP,
		Level:     f.Level,
	}
	if _, err := m.store.SaveSession(rec); err != nil {
		m.logger.Error("cannot save session", "error", err)
	}
}

// recordRun logs a finished run. Best effort: failures are logged.
func (m *Model) recordRun(sum run.Summary) {
	if m.store == nil {
		return
	}
	rec := storage.RunRecord{
		RunID:        sum.RunID,
		Level:        sum.Level,
		Sector:       sum.Sector,
		TiersCleared: sum.TiersCleared,
		Kills:        sum.Kills,
		Credits:      sum.Credits,
		Materials:    sum.Materials,
		EndedReason:  sum.Reason,
	}
	if _, err := m.store.SaveRun(rec); err != nil {
		m.logger.Error("cannot save run", "error", err)
	}
}

// abandon records the run in progress when the player quits.
func (m *Model) abandon() {
	sum := m.ctrl.Summary()
	sess := m.ctrl.Session()
	if sess != nil {
		m.recordSession(sess, "abandoned")
		sum.Kills += sess.Frame().Kills
	}
	if sess == nil && sum.TiersCleared == 0 {
		return
	}
	sum.Reason = "quit"
	m.recordRun(sum)
	m.logger.Info("run abandoned", "run", sum.RunID, "tiers", sum.TiersCleared)
}

// saveScreenshot saves the current arena to a file.
func (m *Model) saveScreenshot() {
	sess := m.ctrl.Session()
	if sess == nil {
		return
	}
	sess.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".voidrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("arena_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.status = "Screenshot saved to " + path
}

// Run starts the Bubble Tea program for a run.
func Run(ctrl *run.Controller, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(ctrl, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
