// Package run owns the persistent side of a run: the player's ship, the
// sector map and the flows between combat sessions (level-ups, relics,
// shop, rest stops and narrative events).
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/voidrun/internal/combat"
	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/ship"
)

// Choice counts.
const (
	LevelUpChoices = 3
	RelicChoices   = 3
)

// Controller errors.
var (
	ErrWrongPhase         = errors.New("run: action not allowed now")
	ErrNoSuchOption       = errors.New("run: no option at index")
	ErrInsufficientFunds  = errors.New("run: not enough credits or materials")
	ErrMaxHull            = errors.New("run: hull already at the top class")
	ErrNoLevelUpAvailable = errors.New("run: no level-up pending")
)

// Phase is where the run currently waits for input.
type Phase int

const (
	PhaseMap Phase = iota
	PhaseCombat
	PhaseRelic
	PhaseEvent
	PhaseShop
	PhaseRest
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMap:
		return "map"
	case PhaseCombat:
		return "combat"
	case PhaseRelic:
		return "relic"
	case PhaseEvent:
		return "event"
	case PhaseShop:
		return "shop"
	case PhaseRest:
		return "rest"
	default:
		return "unknown"
	}
}

// Summary describes a run, live or finished.
type Summary struct {
	RunID        string
	Level        int
	Sector       int
	TiersCleared int
	Credits      int
	Materials    int
	Kills        int
	Reason       string
}

// Option configures a Controller.
type Option func(*Controller)

// WithSeed seeds the controller's random source.
func WithSeed(seed int64) Option {
	return func(c *Controller) {
		c.rng = combat.NewRand(seed)
	}
}

// WithRand sets the random source used for maps, choices and sessions.
func WithRand(r combat.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithEventGenerator sets the narrative event source. Nil always yields
// the fallback event.
func WithEventGenerator(g EventGenerator) Option {
	return func(c *Controller) {
		c.events = g
		c.eventsSet = true
	}
}

// WithEventTimeout bounds event generation.
func WithEventTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.eventTimeout = d
	}
}

// WithConfig sets the combat tuning handed to sessions.
func WithConfig(cfg config.CombatConfig) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// Controller is the run-management layer. It is the only writer of the
// persistent PlayerState. Not safe for concurrent use.
type Controller struct {
	id           string
	cfg          config.CombatConfig
	rng          combat.Rand
	logger       *log.Logger
	events       EventGenerator
	eventsSet    bool
	eventTimeout time.Duration

	player ship.PlayerState
	nodes  [][]Node
	tier   int
	sector int // 1-based count of sector maps entered
	node   *Node
	phase  Phase

	session        *combat.Session
	levelUpOptions []ship.Item
	relicOptions   []ship.Relic
	event          *Event

	tiersCleared int
	kills        int
}

// New creates a controller with a fresh player and sector map.
func New(opts ...Option) *Controller {
	c := &Controller{
		cfg:          config.DefaultCombatConfig(),
		eventTimeout: DefaultEventTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = combat.NewRand(time.Now().UnixNano())
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if !c.eventsSet {
		c.events = NewTableGenerator(combat.NewRand(c.seed()))
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.id = uuid.NewString()
	c.player = ship.NewPlayer()
	c.nodes = GenerateMap(c.rng, MapDepth)
	c.tier = 0
	c.sector = 1
	c.node = nil
	c.phase = PhaseMap
	c.session = nil
	c.levelUpOptions = nil
	c.relicOptions = nil
	c.event = nil
	c.tiersCleared = 0
	c.kills = 0
	c.logger.Info("run started", "run", c.id)
}

func (c *Controller) seed() int64 {
	return int64(c.rng.Intn(math.MaxInt32))
}

// ID returns the run identifier.
func (c *Controller) ID() string {
	return c.id
}

// Player returns a copy of the persistent player state.
func (c *Controller) Player() ship.PlayerState {
	return c.player.Clone()
}

// Phase returns what the run is waiting on.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Tier returns the current tier index on the sector map.
func (c *Controller) Tier() int {
	return c.tier
}

// Sector returns the 1-based sector number.
func (c *Controller) Sector() int {
	return c.sector
}

// Depth is the number of tiers cleared across all sectors plus the
// current tier index. Difficulty scales with it.
func (c *Controller) Depth() int {
	return (c.sector-1)*len(c.nodes) + c.tier
}

// Map returns a copy of the whole sector map.
func (c *Controller) Map() [][]Node {
	out := make([][]Node, len(c.nodes))
	for i, row := range c.nodes {
		out[i] = append([]Node(nil), row...)
	}
	return out
}

// Nodes returns the selectable nodes of the current tier.
func (c *Controller) Nodes() []Node {
	return append([]Node(nil), c.nodes[c.tier]...)
}

// CurrentNode returns the node being played, if any.
func (c *Controller) CurrentNode() (Node, bool) {
	if c.node == nil {
		return Node{}, false
	}
	return *c.node, true
}

// Session returns the live combat session or nil.
func (c *Controller) Session() *combat.Session {
	return c.session
}

// Summary returns the run's current totals.
func (c *Controller) Summary() Summary {
	return Summary{
		RunID:        c.id,
		Level:        c.player.Level,
		Sector:       c.sector,
		TiersCleared: c.tiersCleared,
		Credits:      c.player.Credits,
		Materials:    c.player.Materials,
		Kills:        c.kills,
	}
}

// Select picks a node of the current tier and moves to its phase.
func (c *Controller) Select(i int) (Node, error) {
	if c.phase != PhaseMap {
		return Node{}, fmt.Errorf("select node: %w", ErrWrongPhase)
	}
	row := c.nodes[c.tier]
	if i < 0 || i >= len(row) {
		return Node{}, fmt.Errorf("select node %d: %w", i, ErrNoSuchOption)
	}
	c.node = &row[i]

	switch {
	case c.node.Type.IsCombat():
		c.phase = PhaseCombat
	case c.node.Type == NodeEvent:
		c.phase = PhaseEvent
		c.event = nil
	case c.node.Type == NodeShop:
		c.phase = PhaseShop
	case c.node.Type == NodeRest:
		c.phase = PhaseRest
	}

	c.logger.Info("node selected", "tier", c.tier, "node", c.node.ID, "type", c.node.Type)
	return *c.node, nil
}

// StartSession creates the combat session for the selected combat node,
// resuming the player's current vitals.
func (c *Controller) StartSession() (*combat.Session, error) {
	if c.phase != PhaseCombat || c.node == nil {
		return nil, fmt.Errorf("start session: %w", ErrWrongPhase)
	}
	if c.session != nil {
		return c.session, nil
	}

	start := combat.Start{
		Player: c.player,
		Node:   c.node.Type.SessionNode(),
		Vitals: combat.VitalsOf(c.player),
		Sector: c.Depth(),
	}
	c.session = combat.New(start, c.cfg, combat.NewRand(c.seed()))
	c.logger.Debug("session started", "node", start.Node, "depth", start.Sector, "level", c.player.Level)
	return c.session, nil
}

// Complete merges a finished session's loot and vitals into the player.
// Elite and boss nodes then offer a relic; other nodes advance the map.
func (c *Controller) Complete(done combat.Completion) error {
	if c.phase != PhaseCombat {
		return fmt.Errorf("complete session: %w", ErrWrongPhase)
	}
	if c.session != nil {
		c.kills += c.session.Frame().Kills
	}
	c.closeSession()

	c.player.Credits += done.Loot.Credits
	c.player.Materials += done.Loot.Materials
	c.player.XP += done.Loot.XP
	c.player.Stats.HP = done.Vitals.HP
	c.player.Stats.Cap.Current = done.Vitals.Cap

	c.logger.Info("session complete",
		"credits", done.Loot.Credits,
		"materials", done.Loot.Materials,
		"xp", done.Loot.XP,
		"hull", done.Vitals.HP.Hull,
	)

	if c.node != nil && (c.node.Type == NodeElite || c.node.Type == NodeBoss) {
		c.relicOptions = make([]ship.Relic, RelicChoices)
		for i := range c.relicOptions {
			c.relicOptions[i] = ship.RelicPool[c.rng.Intn(len(ship.RelicPool))]
		}
		c.phase = PhaseRelic
		return nil
	}
	c.advance()
	return nil
}

// Die ends the run and starts a new one. It returns the summary of the
// run that ended.
func (c *Controller) Die() Summary {
	if c.session != nil {
		c.kills += c.session.Frame().Kills
	}
	c.closeSession()

	sum := c.Summary()
	sum.Reason = "destroyed"
	c.logger.Info("run ended", "run", sum.RunID, "level", sum.Level, "tiers", sum.TiersCleared, "kills", sum.Kills)

	c.reset()
	return sum
}

func (c *Controller) closeSession() {
	if c.session != nil {
		c.session.Close()
		c.session = nil
	}
	c.levelUpOptions = nil
}

// levelUpPending reports whether the live session is waiting on a
// level-up choice.
func (c *Controller) levelUpPending() bool {
	return c.session != nil && c.session.State() == combat.StateLevelUpPending
}

// LevelUpOptions draws the level-up choices while the session waits on
// one, nil otherwise. Repeated calls return the same options until one is
// applied.
func (c *Controller) LevelUpOptions() []ship.Item {
	if !c.levelUpPending() {
		return nil
	}
	if c.levelUpOptions == nil {
		c.levelUpOptions = make([]ship.Item, LevelUpChoices)
		for i := range c.levelUpOptions {
			c.levelUpOptions[i] = ship.ItemPool[c.rng.Intn(len(ship.ItemPool))]
		}
	}
	return append([]ship.Item(nil), c.levelUpOptions...)
}

// ApplyLevelUp takes option i: level+1, XP reset, next threshold scaled,
// and the item added to the inventory. The session is updated and
// resumed.
func (c *Controller) ApplyLevelUp(i int) error {
	if !c.levelUpPending() || c.levelUpOptions == nil {
		return fmt.Errorf("apply level-up: %w", ErrNoLevelUpAvailable)
	}
	if i < 0 || i >= len(c.levelUpOptions) {
		return fmt.Errorf("apply level-up %d: %w", i, ErrNoSuchOption)
	}
	item := c.levelUpOptions[i]
	c.levelUpOptions = nil
	c.player = LevelUp(c.player, item)

	c.logger.Info("level up", "level", c.player.Level, "item", item.ID, "next", c.player.XPToNextLevel)

	c.session.UpdatePlayer(c.player)
	c.session.AcknowledgeLevelUp()
	return nil
}

// LevelUp returns ps one level up: XP reset, the next threshold scaled
// and item added to the inventory.
func LevelUp(ps ship.PlayerState, item ship.Item) ship.PlayerState {
	ps = ps.Clone()
	ps.Level++
	ps.XP = 0
	ps.XPToNextLevel = int(math.Floor(float64(ps.XPToNextLevel) * ship.XPScaling))
	ps.Inventory = append(ps.Inventory, item)
	return ps
}

// RelicOptions returns the pending relic choice.
func (c *Controller) RelicOptions() []ship.Relic {
	return append([]ship.Relic(nil), c.relicOptions...)
}

// ApplyRelic takes relic i and advances the map.
func (c *Controller) ApplyRelic(i int) error {
	if c.phase != PhaseRelic {
		return fmt.Errorf("apply relic: %w", ErrWrongPhase)
	}
	if i < 0 || i >= len(c.relicOptions) {
		return fmt.Errorf("apply relic %d: %w", i, ErrNoSuchOption)
	}
	r := c.relicOptions[i]
	c.player.Relics = append(c.player.Relics, r)
	c.relicOptions = nil
	c.logger.Info("relic taken", "relic", r.ID)
	c.advance()
	return nil
}

// Rest fully repairs the ship to its recalculated maxima and advances.
func (c *Controller) Rest() error {
	if c.phase != PhaseRest {
		return fmt.Errorf("rest: %w", ErrWrongPhase)
	}
	c.repair()
	c.logger.Info("crew rested")
	c.advance()
	return nil
}

func (c *Controller) repair() {
	c.player = ship.Recalculate(c.player)
	c.player.Stats.HP = c.player.Stats.MaxHP
}

// ShopOffers returns the items for sale.
func (c *Controller) ShopOffers() []ship.Item {
	return append([]ship.Item(nil), ship.ItemPool...)
}

// Buy purchases offer i into the inventory.
func (c *Controller) Buy(i int) error {
	if c.phase != PhaseShop {
		return fmt.Errorf("buy: %w", ErrWrongPhase)
	}
	if i < 0 || i >= len(ship.ItemPool) {
		return fmt.Errorf("buy %d: %w", i, ErrNoSuchOption)
	}
	item := ship.ItemPool[i]
	if c.player.Credits < item.Price {
		return fmt.Errorf("buy %s: %w", item.ID, ErrInsufficientFunds)
	}
	c.player.Credits -= item.Price
	c.player.Inventory = append(c.player.Inventory, item)
	c.logger.Info("item bought", "item", item.ID, "price", item.Price)
	return nil
}

// HullUpgrade returns the next class and its cost, false at the top class.
func (c *Controller) HullUpgrade() (ship.ShipClass, ship.UpgradeCost, bool) {
	next, ok := ship.NextClass(c.player.Class)
	if !ok {
		return "", ship.UpgradeCost{}, false
	}
	return next, ship.HullUpgradeCosts[next], true
}

// UpgradeHull buys the next hull class and recalculates stats.
func (c *Controller) UpgradeHull() error {
	if c.phase != PhaseShop {
		return fmt.Errorf("upgrade hull: %w", ErrWrongPhase)
	}
	next, cost, ok := c.HullUpgrade()
	if !ok {
		return fmt.Errorf("upgrade hull: %w", ErrMaxHull)
	}
	if c.player.Credits < cost.Credits || c.player.Materials < cost.Materials {
		return fmt.Errorf("upgrade hull to %s: %w", next, ErrInsufficientFunds)
	}
	c.player.Credits -= cost.Credits
	c.player.Materials -= cost.Materials
	c.player = ship.ChangeClass(c.player, next)
	c.logger.Info("hull upgraded", "class", next)
	return nil
}

// LeaveShop advances the map.
func (c *Controller) LeaveShop() error {
	if c.phase != PhaseShop {
		return fmt.Errorf("leave shop: %w", ErrWrongPhase)
	}
	c.advance()
	return nil
}

// Equip fits inventory item i.
func (c *Controller) Equip(i int) error {
	if err := ship.Equip(&c.player, i); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	c.syncSession()
	return nil
}

// Unequip moves fitted module i back to the inventory.
func (c *Controller) Unequip(i int) error {
	if err := ship.Unequip(&c.player, i); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	c.syncSession()
	return nil
}

func (c *Controller) syncSession() {
	if c.session != nil {
		c.session.UpdatePlayer(c.player)
	}
}

// Event returns the narrative event for the selected event node,
// generating it on first call. Generation failures fall back to the
// static event and are logged.
func (c *Controller) Event(ctx context.Context) (Event, error) {
	if c.phase != PhaseEvent {
		return Event{}, fmt.Errorf("event: %w", ErrWrongPhase)
	}
	if c.event == nil {
		evt, err := GenerateEvent(ctx, c.events, c.tier+1, c.eventTimeout)
		if err != nil {
			c.logger.Warn("event generation failed, using fallback", "error", err)
		}
		c.event = &evt
	}
	return *c.event, nil
}

// EventResult is what resolving an event choice produced.
type EventResult struct {
	Outcome string
	Reward  Reward
}

// ResolveEvent applies choice i of the current event and advances the map.
func (c *Controller) ResolveEvent(i int) (EventResult, error) {
	if c.phase != PhaseEvent || c.event == nil {
		return EventResult{}, fmt.Errorf("resolve event: %w", ErrWrongPhase)
	}
	if i < 0 || i >= len(c.event.Choices) {
		return EventResult{}, fmt.Errorf("resolve event %d: %w", i, ErrNoSuchOption)
	}
	choice := c.event.Choices[i]
	c.applyReward(choice.Reward)

	outcome := choice.Outcome
	if outcome == "" {
		outcome = "The event ends."
	}
	c.logger.Info("event resolved", "event", c.event.Title, "choice", choice.Text, "reward", choice.Reward.String())

	c.event = nil
	c.advance()
	return EventResult{Outcome: outcome, Reward: choice.Reward}, nil
}

func (c *Controller) applyReward(r Reward) {
	c.player.Credits += r.Credits
	c.player.Materials += r.Materials
	if r.Repair {
		c.repair()
	}
	if r.Damage > 0 {
		c.player.Stats.HP.Hull = max(1, c.player.Stats.HP.Hull-r.Damage)
	}
}

// advance marks the current node done and opens the next tier. Past the
// last tier a new sector map is generated.
func (c *Controller) advance() {
	if c.node != nil {
		c.node.Completed = true
	}
	c.node = nil
	c.phase = PhaseMap
	c.tiersCleared++

	if c.tier < len(c.nodes)-1 {
		c.tier++
		return
	}

	c.sector++
	c.nodes = GenerateMap(c.rng, MapDepth)
	c.tier = 0
	c.logger.Info("sector cleared", "sector", c.sector-1)
}
