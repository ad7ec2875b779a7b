package run

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/voidrun/internal/combat"
	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/ship"
)

func newTestController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	return New(append([]Option{WithSeed(1)}, opts...)...)
}

// forceTier replaces the current tier with a single node of the given type.
func forceTier(c *Controller, nt NodeType) {
	c.nodes[c.tier] = []Node{{ID: "forced", Type: nt, Tier: c.tier}}
}

func TestNewController(t *testing.T) {
	c := newTestController(t)

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, PhaseMap, c.Phase())
	assert.Equal(t, 0, c.Tier())
	assert.Equal(t, 1, c.Sector())
	assert.Len(t, c.Map(), MapDepth)
	for _, n := range c.Nodes() {
		assert.Equal(t, NodeStart, n.Type)
	}
	assert.Equal(t, ship.NewPlayer().Credits, c.Player().Credits)
	assert.Nil(t, c.Session())
}

func TestPlayerIsACopy(t *testing.T) {
	c := newTestController(t)
	ps := c.Player()
	ps.Modules[0].Damage = 999
	ps.Credits = 1
	assert.InDelta(t, 6, c.Player().Modules[0].Damage, 1e-9)
	assert.Equal(t, 100, c.Player().Credits)
}

func TestSelectPhases(t *testing.T) {
	tests := []struct {
		node NodeType
		want Phase
	}{
		{NodeStart, PhaseCombat},
		{NodeCombat, PhaseCombat},
		{NodeElite, PhaseCombat},
		{NodeBoss, PhaseCombat},
		{NodeEvent, PhaseEvent},
		{NodeShop, PhaseShop},
		{NodeRest, PhaseRest},
	}
	for _, tc := range tests {
		t.Run(tc.node.String(), func(t *testing.T) {
			c := newTestController(t)
			forceTier(c, tc.node)
			n, err := c.Select(0)
			require.NoError(t, err)
			assert.Equal(t, tc.node, n.Type)
			assert.Equal(t, tc.want, c.Phase())
		})
	}
}

func TestSelectErrors(t *testing.T) {
	c := newTestController(t)
	_, err := c.Select(99)
	require.ErrorIs(t, err, ErrNoSuchOption)

	_, err = c.Select(0)
	require.NoError(t, err)
	_, err = c.Select(0)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestStartSessionResumesVitals(t *testing.T) {
	c := newTestController(t)
	_, err := c.StartSession()
	require.ErrorIs(t, err, ErrWrongPhase)

	c.player.Stats.HP.Shield = 42
	_, err = c.Select(0)
	require.NoError(t, err)

	s, err := c.StartSession()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.InDelta(t, 42, s.Frame().Player.HP.Shield, 1e-9)
	assert.Equal(t, combat.NodeStandard, s.Frame().Node)

	again, err := c.StartSession()
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestCompleteMergesLoot(t *testing.T) {
	c := newTestController(t)
	_, err := c.Select(0)
	require.NoError(t, err)
	s, err := c.StartSession()
	require.NoError(t, err)

	vitals := combat.Vitals{HP: ship.Layers{Shield: 10, Armor: 20, Hull: 30}, Cap: 40}
	err = c.Complete(combat.Completion{
		Loot:   combat.LootTotals{Credits: 150, Materials: 7, XP: 20},
		Vitals: vitals,
	})
	require.NoError(t, err)

	ps := c.Player()
	assert.Equal(t, 250, ps.Credits)
	assert.Equal(t, 7, ps.Materials)
	assert.Equal(t, 20, ps.XP)
	assert.Equal(t, vitals.HP, ps.Stats.HP)
	assert.InDelta(t, 40, ps.Stats.Cap.Current, 1e-9)

	assert.Equal(t, PhaseMap, c.Phase())
	assert.Equal(t, 1, c.Tier())
	assert.True(t, c.Map()[0][0].Completed)
	assert.Nil(t, c.Session())
	assert.Equal(t, combat.StateClosed, s.State(), "session is closed on completion")

	assert.ErrorIs(t, c.Complete(combat.Completion{}), ErrWrongPhase)
}

func TestEliteCompletionOffersRelic(t *testing.T) {
	for _, nt := range []NodeType{NodeElite, NodeBoss} {
		t.Run(nt.String(), func(t *testing.T) {
			c := newTestController(t)
			forceTier(c, nt)
			_, err := c.Select(0)
			require.NoError(t, err)
			require.NoError(t, c.Complete(combat.Completion{Vitals: combat.VitalsOf(c.player)}))

			assert.Equal(t, PhaseRelic, c.Phase())
			assert.Equal(t, 0, c.Tier(), "tier waits for the relic choice")
			opts := c.RelicOptions()
			require.Len(t, opts, RelicChoices)

			require.ErrorIs(t, c.ApplyRelic(RelicChoices), ErrNoSuchOption)
			require.NoError(t, c.ApplyRelic(1))
			assert.Equal(t, []ship.Relic{opts[1]}, c.Player().Relics)
			assert.Equal(t, PhaseMap, c.Phase())
			assert.Equal(t, 1, c.Tier())
			assert.Empty(t, c.RelicOptions())
		})
	}
}

// reachLevelUp starts a session for a player sitting on the XP threshold
// and steps it into the pending level-up.
func reachLevelUp(t *testing.T, c *Controller) *combat.Session {
	t.Helper()
	_, err := c.Select(0)
	require.NoError(t, err)
	c.player.XP = c.player.XPToNextLevel
	s, err := c.StartSession()
	require.NoError(t, err)
	require.Equal(t, combat.OutcomeLevelUp, s.Step(core.InputFrame{}).Outcome)
	require.Equal(t, combat.StateLevelUpPending, s.State())
	return s
}

func TestLevelUp(t *testing.T) {
	c := newTestController(t)
	s := reachLevelUp(t, c)

	opts := c.LevelUpOptions()
	require.Len(t, opts, LevelUpChoices)
	assert.Equal(t, opts, c.LevelUpOptions(), "options are stable until applied")

	require.ErrorIs(t, c.ApplyLevelUp(5), ErrNoSuchOption)
	require.NoError(t, c.ApplyLevelUp(2))

	ps := c.Player()
	assert.Equal(t, 2, ps.Level)
	assert.Zero(t, ps.XP)
	assert.Equal(t, 195, ps.XPToNextLevel)
	require.Len(t, ps.Inventory, 3)
	assert.Equal(t, opts[2], ps.Inventory[2], "the item goes to the inventory, not the fit")
	assert.Len(t, ps.Modules, 1)

	assert.Equal(t, combat.StateRunning, s.State())
	assert.Equal(t, combat.OutcomeRunning, s.Step(core.InputFrame{}).Outcome)
	assert.Nil(t, c.LevelUpOptions(), "no choice once the session resumed")
	require.ErrorIs(t, c.ApplyLevelUp(0), ErrNoLevelUpAvailable)
	assert.Equal(t, 2, c.Player().Level)
}

func TestLevelUpNeedsPendingSession(t *testing.T) {
	c := newTestController(t)
	c.player.XP = c.player.XPToNextLevel

	assert.Nil(t, c.LevelUpOptions(), "map phase")
	require.ErrorIs(t, c.ApplyLevelUp(0), ErrNoLevelUpAvailable)

	_, err := c.Select(0)
	require.NoError(t, err)
	_, err = c.StartSession()
	require.NoError(t, err)
	assert.Nil(t, c.LevelUpOptions(), "session not stepped yet")
	require.ErrorIs(t, c.ApplyLevelUp(0), ErrNoLevelUpAvailable)

	ps := c.Player()
	assert.Equal(t, 1, ps.Level)
	assert.Equal(t, 150, ps.XPToNextLevel)
	assert.Len(t, ps.Inventory, 2)
}

func TestLevelUpOptionsDroppedWithSession(t *testing.T) {
	c := newTestController(t)
	s := reachLevelUp(t, c)
	require.Len(t, c.LevelUpOptions(), LevelUpChoices)

	require.NoError(t, c.Complete(combat.Completion{Vitals: combat.VitalsOf(c.player)}))
	assert.Equal(t, combat.StateClosed, s.State())
	assert.Nil(t, c.levelUpOptions)
	require.ErrorIs(t, c.ApplyLevelUp(0), ErrNoLevelUpAvailable)
}

func TestLevelUpUpdatesLiveSession(t *testing.T) {
	c := newTestController(t)
	s := reachLevelUp(t, c)

	plate, ok := ship.FindItem("plate_1")
	require.True(t, ok)
	c.LevelUpOptions()
	c.levelUpOptions[0] = plate
	require.NoError(t, c.ApplyLevelUp(0))

	require.NoError(t, c.Equip(len(c.player.Inventory)-1))
	assert.InDelta(t, 400, s.Frame().Player.MaxHP.Armor, 1e-9, "session follows the new fit")
	assert.Equal(t, combat.StateRunning, s.State())
}

func TestRest(t *testing.T) {
	c := newTestController(t)
	forceTier(c, NodeRest)
	c.player.Stats.HP = ship.Layers{Shield: 1, Armor: 2, Hull: 3}
	require.ErrorIs(t, c.Rest(), ErrWrongPhase)

	_, err := c.Select(0)
	require.NoError(t, err)
	require.NoError(t, c.Rest())

	ps := c.Player()
	assert.Equal(t, ps.Stats.MaxHP, ps.Stats.HP)
	assert.Equal(t, ship.Layers{Shield: 150, Armor: 100, Hull: 100}, ps.Stats.HP)
	assert.Equal(t, 1, c.Tier())
}

func TestShop(t *testing.T) {
	c := newTestController(t)
	forceTier(c, NodeShop)
	require.ErrorIs(t, c.Buy(0), ErrWrongPhase)

	_, err := c.Select(0)
	require.NoError(t, err)
	offers := c.ShopOffers()
	require.Equal(t, len(ship.ItemPool), len(offers))

	idx := -1
	for i, it := range offers {
		if it.ID == "missile_1" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	require.ErrorIs(t, c.Buy(idx), ErrInsufficientFunds)
	require.ErrorIs(t, c.Buy(len(offers)), ErrNoSuchOption)

	c.player.Credits = 1000
	require.NoError(t, c.Buy(idx))
	ps := c.Player()
	assert.Equal(t, 200, ps.Credits)
	assert.Equal(t, "missile_1", ps.Inventory[len(ps.Inventory)-1].ID)

	require.NoError(t, c.LeaveShop())
	assert.Equal(t, PhaseMap, c.Phase())
	assert.Equal(t, 1, c.Tier())
}

func TestUpgradeHull(t *testing.T) {
	c := newTestController(t)
	forceTier(c, NodeShop)
	_, err := c.Select(0)
	require.NoError(t, err)

	next, cost, ok := c.HullUpgrade()
	require.True(t, ok)
	assert.Equal(t, ship.Destroyer, next)
	assert.Equal(t, ship.UpgradeCost{Materials: 40, Credits: 1000}, cost)

	require.ErrorIs(t, c.UpgradeHull(), ErrInsufficientFunds)

	c.player.Credits = 6000
	c.player.Materials = 200
	require.NoError(t, c.UpgradeHull())
	ps := c.Player()
	assert.Equal(t, ship.Destroyer, ps.Class)
	assert.Equal(t, 5000, ps.Credits)
	assert.Equal(t, 160, ps.Materials)
	assert.InDelta(t, 350, ps.Stats.MaxHP.Shield, 1e-9)
	assert.Equal(t, 5, ps.Stats.Slots.High)
	assert.InDelta(t, 5, ps.Stats.Cap.Recharge, 1e-9, "destroyer recharge, not the frigate's")

	require.NoError(t, c.UpgradeHull())
	assert.Equal(t, ship.Cruiser, c.Player().Class)
	assert.InDelta(t, 10, c.Player().Stats.Cap.Recharge, 1e-9)
	assert.ErrorIs(t, c.UpgradeHull(), ErrMaxHull)
}

func TestEquipUnequip(t *testing.T) {
	c := newTestController(t)
	require.NoError(t, c.Equip(0))
	ps := c.Player()
	assert.Len(t, ps.Modules, 2)
	assert.Len(t, ps.Inventory, 1)

	require.NoError(t, c.Unequip(1))
	assert.Len(t, c.Player().Modules, 1)

	assert.ErrorIs(t, c.Equip(10), ship.ErrNoSuchItem)
}

func TestFallbackEventFlow(t *testing.T) {
	c := newTestController(t, WithEventGenerator(nil))
	forceTier(c, NodeEvent)

	_, err := c.Event(context.Background())
	require.ErrorIs(t, err, ErrWrongPhase)

	_, err = c.Select(0)
	require.NoError(t, err)
	evt, err := c.Event(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Derelict Signal", evt.Title)

	_, err = c.ResolveEvent(2)
	require.ErrorIs(t, err, ErrNoSuchOption)

	res, err := c.ResolveEvent(0)
	require.NoError(t, err)
	assert.Equal(t, "You find some usable materials in the wreck.", res.Outcome)
	assert.Equal(t, 15, c.Player().Materials)
	assert.Equal(t, PhaseMap, c.Phase())
	assert.Equal(t, 1, c.Tier())
}

func TestEventRewards(t *testing.T) {
	gen := EventGeneratorFunc(func(context.Context, int) (Event, error) {
		return Event{
			Title: "Mixed",
			Choices: []Choice{
				{Text: "hurt", Reward: Reward{Damage: 500}},
				{Text: "heal", Reward: Reward{Repair: true, Credits: 300}},
			},
		}, nil
	})

	c := newTestController(t, WithEventGenerator(gen))
	forceTier(c, NodeEvent)
	_, err := c.Select(0)
	require.NoError(t, err)
	_, err = c.Event(context.Background())
	require.NoError(t, err)

	res, err := c.ResolveEvent(0)
	require.NoError(t, err)
	assert.Equal(t, "The event ends.", res.Outcome)
	assert.InDelta(t, 1, c.Player().Stats.HP.Hull, 1e-9, "event damage never destroys the ship")

	forceTier(c, NodeEvent)
	_, err = c.Select(0)
	require.NoError(t, err)
	_, err = c.Event(context.Background())
	require.NoError(t, err)
	_, err = c.ResolveEvent(1)
	require.NoError(t, err)
	ps := c.Player()
	assert.InDelta(t, 100, ps.Stats.HP.Hull, 1e-9)
	assert.Equal(t, 400, ps.Credits)
}

func TestEventCachedPerNode(t *testing.T) {
	calls := 0
	gen := EventGeneratorFunc(func(context.Context, int) (Event, error) {
		calls++
		return FallbackEvent(), nil
	})
	c := newTestController(t, WithEventGenerator(gen))
	forceTier(c, NodeEvent)
	_, err := c.Select(0)
	require.NoError(t, err)

	for range 3 {
		_, err = c.Event(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestSectorWrap(t *testing.T) {
	c := newTestController(t)
	c.tier = MapDepth - 1
	forceTier(c, NodeRest)
	_, err := c.Select(0)
	require.NoError(t, err)
	require.NoError(t, c.Rest())

	assert.Equal(t, 2, c.Sector())
	assert.Equal(t, 0, c.Tier())
	assert.Equal(t, MapDepth, c.Depth())
	for _, n := range c.Nodes() {
		assert.Equal(t, NodeStart, n.Type)
		assert.False(t, n.Completed)
	}
}

func TestDieResetsRun(t *testing.T) {
	c := newTestController(t)
	oldID := c.ID()
	_, err := c.Select(0)
	require.NoError(t, err)
	s, err := c.StartSession()
	require.NoError(t, err)
	for range 10 {
		s.Step(core.NewInputFrame())
	}
	c.player.Credits = 5000
	c.player.Level = 4

	sum := c.Die()
	assert.Equal(t, oldID, sum.RunID)
	assert.Equal(t, "destroyed", sum.Reason)
	assert.Equal(t, 5000, sum.Credits)
	assert.Equal(t, 4, sum.Level)

	assert.NotEqual(t, oldID, c.ID())
	assert.Equal(t, ship.NewPlayer().Credits, c.Player().Credits)
	assert.Equal(t, PhaseMap, c.Phase())
	assert.Equal(t, 0, c.Tier())
	assert.Nil(t, c.Session())
	assert.Equal(t, combat.StateClosed, s.State())
}

func TestWithRand(t *testing.T) {
	c := New(WithRand(constRand{f: 0.9, i: 1}))
	for i, row := range c.Map() {
		assert.Len(t, row, 4, "every tier at its widest")
		if i > 0 && i < MapDepth-1 && i%3 != 0 {
			assert.Equal(t, NodeCombat, row[0].Type)
		}
	}
}

func TestLevelUpDoesNotAlias(t *testing.T) {
	ps := ship.NewPlayer()
	ps.XP = 140

	next := LevelUp(ps, ship.Nanofiber)
	assert.Equal(t, 2, next.Level)
	assert.Zero(t, next.XP)
	assert.Equal(t, 195, next.XPToNextLevel)
	require.Len(t, next.Inventory, 3)
	assert.Equal(t, "nano_1", next.Inventory[2].ID)

	assert.Equal(t, 1, ps.Level)
	assert.Equal(t, 140, ps.XP)
	assert.Len(t, ps.Inventory, 2)
	assert.Equal(t, 253, LevelUp(next, ship.Nanofiber).XPToNextLevel, "floor(195*1.3)")
}
