package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/voidrun/internal/config"
	"github.com/vovakirdan/voidrun/internal/core"
	"github.com/vovakirdan/voidrun/internal/ship"
)

// constRand always draws the same values.
type constRand struct {
	f float64
	i int
}

func (r constRand) Float64() float64 { return r.f }
func (r constRand) Intn(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

// noKiters makes every spawn a chaser and every chance-based drop fail.
var noKiters = constRand{f: 0.99}

func newTestSession(t *testing.T, ps ship.PlayerState, node NodeKind, rng Rand) *Session {
	t.Helper()
	return New(Start{Player: ps, Node: node, Vitals: VitalsOf(ps)}, config.DefaultCombatConfig(), rng)
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func item(t *testing.T, id string) ship.Item {
	t.Helper()
	it, ok := ship.FindItem(id)
	require.True(t, ok, id)
	return it
}

func addEnemy(s *Session, kind EnemyKind, pos core.Vec2, hp float64) *Enemy {
	e := &Enemy{ID: s.newID(), Kind: kind, Pos: pos, HP: hp, MaxHP: max(hp, 1), Radius: 10}
	s.enemies = append(s.enemies, e)
	return e
}

func playerShots(s *Session) int {
	n := 0
	for _, p := range s.projectiles {
		if p.Owner == OwnerPlayer {
			n++
		}
	}
	return n
}

func TestNewSession(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Stats.HP = ship.Layers{Shield: 900, Armor: 40, Hull: 30}
	ps.Stats.Cap.Current = 55

	s := newTestSession(t, ps, NodeStandard, noKiters)

	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, core.V(600, 400), s.avatar.Pos, "player starts at arena centre")
	assert.Equal(t, ship.Layers{Shield: 150, Armor: 40, Hull: 30}, s.avatar.HP, "vitals resume, clamped to max")
	assert.InDelta(t, 55, s.avatar.Cap, 1e-9)
	assert.Equal(t, 18, s.killTarget)
	require.Len(t, s.weapons, 1)
	assert.Empty(t, s.modules)

	ps.Modules[0].Damage = 1000
	assert.InDelta(t, 6, s.player.Modules[0].Damage, 1e-9, "session keeps its own copy")
}

func TestApplyDamageOrder(t *testing.T) {
	tests := []struct {
		name string
		hp   ship.Layers
		dmg  float64
		want ship.Layers
	}{
		{"shield absorbs, no spillover", ship.Layers{Shield: 10, Armor: 50, Hull: 50}, 30, ship.Layers{Shield: 0, Armor: 50, Hull: 50}},
		{"armor before hull", ship.Layers{Shield: 0, Armor: 50, Hull: 50}, 30, ship.Layers{Shield: 0, Armor: 20, Hull: 50}},
		{"hull last", ship.Layers{Shield: 0, Armor: 0, Hull: 50}, 30, ship.Layers{Shield: 0, Armor: 0, Hull: 20}},
		{"hull clamps at zero", ship.Layers{Hull: 5}, 30, ship.Layers{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hp := tc.hp
			applyDamage(&hp, tc.dmg)
			assert.Equal(t, tc.want, hp)
		})
	}
}

func TestVitalsStayInBounds(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Level = 4
	ps.Modules = append(ps.Modules, ship.CivilianShieldBooster, item(t, "sar_1"))
	ps.Relics = []ship.Relic{{CapRefillOnKill: 10, HealOnKill: 2, ShieldRegenMult: 0.25}}
	s := newTestSession(t, ps, NodeStandard, NewRand(7))

	dirs := []core.Action{core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft}
	for i := range 2400 {
		res := s.Step(core.InputOf(dirs[(i/40)%len(dirs)]))

		a := s.avatar
		for _, pair := range [][2]float64{
			{a.HP.Shield, a.MaxHP.Shield},
			{a.HP.Armor, a.MaxHP.Armor},
			{a.HP.Hull, a.MaxHP.Hull},
			{a.Cap, a.CapMax},
		} {
			require.GreaterOrEqual(t, pair[0], 0.0, "frame %d", s.frame)
			require.LessOrEqual(t, pair[0], pair[1], "frame %d", s.frame)
		}

		if res.Outcome == OutcomeLevelUp {
			s.AcknowledgeLevelUp()
			ps.XP, ps.XPToNextLevel = 0, ps.XPToNextLevel*10
			s.UpdatePlayer(ps)
		}
		if res.Outcome == OutcomeDied || res.Outcome == OutcomeCompleted {
			break
		}
	}
}

func TestReloadStartsOnEmptyMagazine(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Modules = []ship.Item{item(t, "missile_1")}
	s := newTestSession(t, ps, NodeStandard, noKiters)
	addEnemy(s, EnemyChaser, s.avatar.Pos.Add(core.V(100, 0)), 500)

	s.weapons[0].Ammo = 0
	s.frame = 209 // next frame is a 210-frame cadence boundary

	s.Step(idle())

	assert.Equal(t, 0, s.weapons[0].Ammo, "ammo is unchanged when the reload starts")
	assert.Equal(t, 4*60, s.weapons[0].ReloadTimer)
	assert.Zero(t, playerShots(s), "no shot on the frame the reload starts")

	for range 239 {
		s.Step(idle())
	}
	assert.Equal(t, 0, s.weapons[0].Ammo)
	assert.Equal(t, 1, s.weapons[0].ReloadTimer)

	s.Step(idle())
	assert.Equal(t, 12, s.weapons[0].Ammo, "magazine refills when the timer runs out")
	assert.Zero(t, s.weapons[0].ReloadTimer)
}

func TestWeaponFiresOnCadence(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Modules = []ship.Item{item(t, "missile_1")}
	s := newTestSession(t, ps, NodeStandard, noKiters)
	target := addEnemy(s, EnemyChaser, s.avatar.Pos.Add(core.V(200, 0)), 500)
	target.Speed = 0

	s.frame = 208
	s.Step(idle())
	assert.Zero(t, playerShots(s))

	s.Step(idle())
	require.Equal(t, 1, playerShots(s))
	assert.Equal(t, 11, s.weapons[0].Ammo)

	shot := s.projectiles[0]
	assert.True(t, shot.Homing, "missiles home")
	assert.Equal(t, target.ID, shot.TargetID)
	assert.InDelta(t, 40, shot.Damage, 1e-9)
}

func TestWeaponIgnoresTargetsOutOfRange(t *testing.T) {
	ps := ship.NewPlayer()
	s := newTestSession(t, ps, NodeStandard, noKiters)
	addEnemy(s, EnemyChaser, s.avatar.Pos.Add(core.V(300, 0)), 500).Speed = 0

	// civ_pulse: 300 range, cadence ceil(0.8*60) = 48
	s.frame = 47
	s.Step(idle())
	assert.Zero(t, playerShots(s), "range is strict")
}

func TestRangeBonusExtendsReach(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Modules = append(ps.Modules, item(t, "tc_1"))
	s := newTestSession(t, ps, NodeStandard, noKiters)
	addEnemy(s, EnemyChaser, s.avatar.Pos.Add(core.V(340, 0)), 500).Speed = 0

	s.frame = 47
	s.Step(idle())
	assert.Equal(t, 1, playerShots(s))
}

func TestNearestTargetTieBreak(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	first := addEnemy(s, EnemyChaser, s.avatar.Pos.Add(core.V(100, 0)), 50)
	addEnemy(s, EnemyChaser, s.avatar.Pos.Add(core.V(-100, 0)), 50)
	addEnemy(s, EnemyChaser, s.avatar.Pos.Add(core.V(0, 150)), 50)

	got := s.nearestEnemy(300)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID, "equidistant targets resolve to the earliest spawned")

	assert.Nil(t, s.nearestEnemy(100), "nothing strictly within range")
}

func TestShotDamageBonuses(t *testing.T) {
	ps := ship.NewPlayer()
	launcher := item(t, "missile_1")
	ps.Modules = []ship.Item{launcher, item(t, "bcs_1"), item(t, "bcs_1"), item(t, "gyro_1")}
	ps.Relics = []ship.Relic{{DamageMult: 0.2}}
	s := newTestSession(t, ps, NodeStandard, noKiters)

	assert.InDelta(t, 40*1.2*1.1*1.1, s.shotDamage(launcher), 1e-9, "turret mods do not touch missiles")

	pulse := item(t, "pulse_1")
	s.player.Modules = []ship.Item{pulse, item(t, "gyro_1"), item(t, "hs_1"), item(t, "bcs_1")}
	assert.InDelta(t, 12*1.2*1.1*1.05, s.shotDamage(pulse), 1e-9)

	// the firing module's own bonus counts once
	rigged := pulse
	rigged.TurretDamageBonus = 0.5
	s.player.Modules = []ship.Item{rigged}
	assert.InDelta(t, 12*1.2*1.5, s.shotDamage(rigged), 1e-9)
}

func TestCompletionExactlyAtKillTarget(t *testing.T) {
	for _, level := range []int{1, 3} {
		ps := ship.NewPlayer()
		ps.Level = level
		s := newTestSession(t, ps, NodeStandard, noKiters)
		target := 15 + 3*level
		require.Equal(t, target, s.killTarget)

		far := core.V(20, 20)
		for range target - 1 {
			addEnemy(s, EnemyChaser, far, 0)
		}
		res := s.Step(idle())
		assert.Equal(t, OutcomeRunning, res.Outcome, "level %d: one kill short", level)
		assert.Equal(t, target-1, s.kills)

		addEnemy(s, EnemyChaser, far, 0)
		res = s.Step(idle())
		require.Equal(t, OutcomeCompleted, res.Outcome, "level %d", level)
		require.NotNil(t, res.Completion)
		assert.Equal(t, target, s.kills)
		assert.Equal(t, s.avatar.HP, res.Completion.Vitals.HP)
		assert.Equal(t, StateCompleted, s.State())

		again := s.Step(idle())
		assert.Equal(t, OutcomeCompleted, again.Outcome, "terminal state is sticky")
	}
}

func TestLevelUpOverflow(t *testing.T) {
	ps := ship.NewPlayer()
	ps.XP = 140
	s := newTestSession(t, ps, NodeStandard, noKiters)

	s.addLoot(s.avatar.Pos, core.Vec2{}, LootXP, 10, xpLootRadius)
	s.addLoot(s.avatar.Pos, core.Vec2{}, LootXP, 10, xpLootRadius)

	res := s.Step(idle())
	require.Equal(t, OutcomeLevelUp, res.Outcome)
	assert.Equal(t, 10, s.collected.XP, "pool loses exactly the 10 XP the threshold needed")
	assert.Equal(t, 140, s.player.XP, "persistent XP is left to the run controller")
	assert.Equal(t, 150, s.player.XPToNextLevel)
	assert.Equal(t, StateLevelUpPending, s.State())

	frame := s.frame
	assert.Equal(t, OutcomePaused, s.Step(idle()).Outcome)
	assert.Equal(t, frame, s.frame, "pending level-up freezes the loop")

	ps.XP = 0
	ps.Level = 2
	ps.XPToNextLevel = 195
	s.UpdatePlayer(ps)
	s.AcknowledgeLevelUp()

	assert.Equal(t, OutcomeRunning, s.Step(idle()).Outcome)
	assert.Equal(t, 10, s.Frame().XP)
}

func TestMagnetRadius(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	outside := s.avatar.Pos.Add(core.V(200, 0))
	inside := s.avatar.Pos.Add(core.V(0, 100))
	s.addLoot(outside, core.Vec2{}, LootCredit, 5, creditLootRadius)
	s.addLoot(inside, core.Vec2{}, LootCredit, 5, creditLootRadius)

	s.Step(idle())
	require.Len(t, s.loot, 2)

	far, near := s.loot[0], s.loot[1]
	assert.False(t, far.Magnetized)
	assert.Equal(t, core.Vec2{}, far.Vel, "no pull outside 150 units")
	assert.Equal(t, outside, far.Pos)

	assert.True(t, near.Magnetized)
	assert.InDelta(t, 0, near.Vel.X, 1e-9)
	assert.InDelta(t, -0.6, near.Vel.Y, 1e-9, "pulled toward the player")
}

func TestMagnetRadiusScalesWithRelic(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Relics = []ship.Relic{{LootMagnetMult: 0.5}}
	s := newTestSession(t, ps, NodeStandard, noKiters)
	s.addLoot(s.avatar.Pos.Add(core.V(200, 0)), core.Vec2{}, LootCredit, 5, creditLootRadius)

	s.Step(idle())
	require.Len(t, s.loot, 1)
	assert.True(t, s.loot[0].Magnetized, "225 unit radius")
	assert.Less(t, s.loot[0].Vel.X, 0.0)
}

func TestLootTerminalSpeed(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	s.addLoot(s.avatar.Pos.Add(core.V(-140, 0)), core.V(40, 0), LootXP, 10, xpLootRadius)

	s.Step(idle())
	require.Len(t, s.loot, 1)
	assert.InDelta(t, 7, s.loot[0].Vel.Len(), 1e-9)

	for range 40 {
		s.Step(idle())
		for _, l := range s.loot {
			assert.LessOrEqual(t, l.Vel.Len(), 7+1e-9)
		}
	}
	assert.Empty(t, s.loot, "pulled in and collected")
	assert.Equal(t, 10, s.collected.XP)
}

func TestBossSessionSpawnsExactlyOneBoss(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Level = 2
	s := newTestSession(t, ps, NodeBoss, NewRand(3))
	assert.Equal(t, 1, s.killTarget)

	for range 300 {
		res := s.Step(idle())
		if res.Outcome == OutcomeDied {
			break
		}
		require.Len(t, s.enemies, 1)
		assert.Equal(t, EnemyBoss, s.enemies[0].Kind)
	}
	assert.InDelta(t, 1400, s.enemies[0].MaxHP, 1e-9)
}

func TestBossKillCompletesWithBossLoot(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeBoss, noKiters)
	s.Step(idle())
	require.Len(t, s.enemies, 1)
	s.enemies[0].HP = 0

	res := s.Step(idle())
	assert.Equal(t, OutcomeCompleted, res.Outcome)

	var xp, credits, materials int
	for _, l := range s.loot {
		switch l.Kind {
		case LootXP:
			xp++
		case LootCredit:
			credits += l.Value
		case LootMaterial:
			materials += l.Value
		}
	}
	assert.Equal(t, 20, xp)
	assert.Equal(t, 10*10, credits, "boss drops always land, times ten")
	assert.Equal(t, 1*10, materials)
}

func TestStandardSpawn(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, constRand{f: 0.1})

	for range 59 {
		s.Step(idle())
	}
	assert.Empty(t, s.enemies)

	s.Step(idle())
	require.Len(t, s.enemies, 1)
	e := s.enemies[0]
	assert.Equal(t, EnemyKiter, e.Kind)
	assert.InDelta(t, 25, e.HP, 1e-9)
	assert.InDelta(t, 650, e.Pos.Dist(s.avatar.Pos), 1.0)
}

func TestSpawnCap(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	for range 50 {
		addEnemy(s, EnemyChaser, core.V(5, 5), 100).Speed = 0
	}
	s.frame = 59
	s.Step(idle())
	assert.Len(t, s.enemies, 50)
}

func TestEnemyFiresOnlyInRange(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	kiter := addEnemy(s, EnemyKiter, s.avatar.Pos.Add(core.V(0, 400)), 100)
	kiter.AttackRange = 300
	kiter.Damage = 5

	s.Step(idle())
	assert.Empty(t, s.projectiles, "out of band, holds fire")

	kiter.Pos = s.avatar.Pos.Add(core.V(0, 300))
	s.Step(idle())
	require.Len(t, s.projectiles, 1)
	assert.Equal(t, OwnerEnemy, s.projectiles[0].Owner)
	assert.InDelta(t, 120, kiter.ReloadTimer, 1e-9)
}

func TestChaserContactDamage(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	e := addEnemy(s, EnemyChaser, s.avatar.Pos.Add(core.V(10, 0)), 100)

	s.Step(idle())
	assert.InDelta(t, 149.5, s.avatar.HP.Shield, 1e-9)
	assert.InDelta(t, 612, e.Pos.X, 1e-9, "pushed back")
}

func TestProjectileHitsOnce(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	pos := s.avatar.Pos.Add(core.V(100, 0))
	a := addEnemy(s, EnemyChaser, pos, 100)
	b := addEnemy(s, EnemyChaser, pos, 100)
	a.Speed, b.Speed = 0, 0

	s.projectiles = append(s.projectiles, &Projectile{
		ID: s.newID(), Pos: pos, Radius: 3, Damage: 30, Life: 120, Owner: OwnerPlayer,
	})

	s.Step(idle())
	assert.Empty(t, s.projectiles)
	assert.InDelta(t, 70, a.HP, 1e-9)
	assert.InDelta(t, 100, b.HP, 1e-9, "no pass-through")

	s.Step(idle())
	assert.InDelta(t, 70, a.HP, 1e-9)
}

func TestProjectileLifetime(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	p := &Projectile{ID: s.newID(), Pos: core.V(50, 50), Vel: core.V(1, 0), Radius: 3, Life: 3, Owner: OwnerPlayer}
	s.projectiles = append(s.projectiles, p)

	prev := p.Life
	for range 2 {
		s.Step(idle())
		require.Len(t, s.projectiles, 1)
		assert.Less(t, p.Life, prev)
		prev = p.Life
	}
	s.Step(idle())
	assert.Empty(t, s.projectiles)
}

func TestEnemyShotDamagesPlayer(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	s.projectiles = append(s.projectiles, &Projectile{
		ID: s.newID(), Pos: s.avatar.Pos, Radius: 4, Damage: 5, Life: 120, Owner: OwnerEnemy,
	})

	s.Step(idle())
	assert.Empty(t, s.projectiles)
	assert.InDelta(t, 145, s.avatar.HP.Shield, 1e-9)
}

func TestHomingSteersTowardLiveTarget(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	target := addEnemy(s, EnemyChaser, core.V(100, 300), 100)
	target.Speed = 0

	p := &Projectile{ID: s.newID(), Pos: core.V(100, 100), Vel: core.V(6, 0), Radius: 5, Life: 120,
		Owner: OwnerPlayer, Homing: true, TargetID: target.ID}
	s.projectiles = append(s.projectiles, p)

	s.Step(idle())
	assert.InDelta(t, 6*0.85, p.Vel.X, 1e-9)
	assert.InDelta(t, 6*0.15, p.Vel.Y, 1e-9)
}

func TestHomingTargetGone(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	p := &Projectile{ID: s.newID(), Pos: core.V(100, 100), Vel: core.V(6, 0), Radius: 5, Life: 120,
		Owner: OwnerPlayer, Homing: true, TargetID: 9999}
	s.projectiles = append(s.projectiles, p)

	s.Step(idle())
	assert.Equal(t, core.V(6, 0), p.Vel, "keeps its last heading")
	assert.Equal(t, core.V(106, 100), p.Pos)
}

func TestRegen(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)
	s.avatar.HP.Shield = 100
	s.avatar.Cap = 50

	s.frame = 58
	s.Step(idle())
	assert.InDelta(t, 100, s.avatar.HP.Shield, 1e-9)

	s.Step(idle())
	assert.InDelta(t, 101.5, s.avatar.HP.Shield, 1e-9)
	assert.InDelta(t, 51, s.avatar.Cap, 1e-9)
}

func TestActiveModuleAutoTrigger(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Modules = append(ps.Modules, ship.CivilianShieldBooster)
	s := newTestSession(t, ps, NodeStandard, noKiters)
	s.avatar.HP.Shield = 100 // below 90% of 150

	s.Step(idle())
	assert.InDelta(t, 115, s.avatar.HP.Shield, 1e-9)
	assert.InDelta(t, 90, s.avatar.Cap, 1e-9)
	assert.Equal(t, 180, s.modules[0].Cooldown)
	assert.NotEmpty(t, s.particles)

	s.Step(idle())
	assert.InDelta(t, 115, s.avatar.HP.Shield, 1e-9)
	assert.Equal(t, 179, s.modules[0].Cooldown)
}

func TestActiveModuleNeedsCapacitor(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Modules = append(ps.Modules, ship.CivilianShieldBooster)
	s := newTestSession(t, ps, NodeStandard, noKiters)
	s.avatar.HP.Shield = 100
	s.avatar.Cap = 5

	s.Step(idle())
	assert.InDelta(t, 100, s.avatar.HP.Shield, 1e-9)
	assert.InDelta(t, 5, s.avatar.Cap, 1e-9)
	assert.Zero(t, s.modules[0].Cooldown)
}

func TestMovement(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, noKiters)

	s.Step(core.InputOf(core.ActionRight))
	assert.InDelta(t, 600.15, s.avatar.Pos.X, 1e-9)
	assert.InDelta(t, 0.15*0.92, s.avatar.Vel.X, 1e-9)
	assert.InDelta(t, 0, s.avatar.Heading, 1e-9)

	for range 600 {
		s.Step(core.InputOf(core.ActionRight, core.ActionDown))
		require.LessOrEqual(t, s.avatar.Vel.Len(), 3.5+1e-9)
	}
	assert.InDelta(t, 1200, s.avatar.Pos.X, 1e-9, "clamped to the arena")
	assert.InDelta(t, 800, s.avatar.Pos.Y, 1e-9)

	heading := s.avatar.Heading
	for range 200 {
		s.Step(idle())
	}
	assert.InDelta(t, heading, s.avatar.Heading, 1e-9, "heading holds once the ship drifts to rest")
}

func TestRelicOnKillEffects(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Modules = []ship.Item{item(t, "missile_1")}
	ps.Relics = []ship.Relic{{AmmoRefillOnKill: 1}, {CapRefillOnKill: 10}, {HealOnKill: 2}}
	s := newTestSession(t, ps, NodeStandard, noKiters)
	s.avatar.Cap = 50
	s.avatar.HP.Hull = 90
	s.weapons[0].Ammo = 5

	addEnemy(s, EnemyChaser, core.V(10, 10), 0)
	s.Step(idle())

	assert.Equal(t, 6, s.weapons[0].Ammo)
	assert.InDelta(t, 60, s.avatar.Cap, 1e-9)
	assert.InDelta(t, 92, s.avatar.HP.Hull, 1e-9)
}

func TestDeath(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Stats.HP = ship.Layers{Hull: 3}
	s := newTestSession(t, ps, NodeStandard, noKiters)
	s.projectiles = append(s.projectiles, &Projectile{
		ID: s.newID(), Pos: s.avatar.Pos, Radius: 4, Damage: 5, Life: 120, Owner: OwnerEnemy,
	})

	res := s.Step(idle())
	assert.Equal(t, OutcomeDied, res.Outcome)
	assert.Nil(t, res.Completion)
	assert.Equal(t, StateDied, s.State())
}

func TestPauseFreezesState(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, NewRand(1))
	for range 90 {
		s.Step(core.InputOf(core.ActionUp))
	}
	before := s.Snapshot().Hash()

	s.SetPaused(true)
	for range 30 {
		assert.Equal(t, OutcomePaused, s.Step(core.InputOf(core.ActionLeft)).Outcome)
	}
	assert.Equal(t, before, s.Snapshot().Hash())

	s.SetPaused(false)
	s.Step(idle())
	assert.NotEqual(t, before, s.Snapshot().Hash())
}

func TestUpdatePlayerSyncsMaxOnly(t *testing.T) {
	ps := ship.NewPlayer()
	s := newTestSession(t, ps, NodeStandard, noKiters)
	s.avatar.HP.Shield = 100

	ps.Modules = append(ps.Modules, item(t, "mse_2"), item(t, "missile_1"))
	s.UpdatePlayer(ps)

	assert.InDelta(t, 550, s.avatar.MaxHP.Shield, 1e-9)
	assert.InDelta(t, 100, s.avatar.HP.Shield, 1e-9, "current shield is not rescaled")
	require.Len(t, s.weapons, 2)
	assert.Equal(t, 12, s.weapons[1].Ammo)
}

func TestUpdatePlayerKeepsWeaponState(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Modules = []ship.Item{item(t, "missile_1")}
	s := newTestSession(t, ps, NodeStandard, noKiters)
	s.weapons[0].Ammo = 3
	s.weapons[0].ReloadTimer = 17

	ps.Modules = append([]ship.Item{ship.CivilianPulse}, ps.Modules...)
	s.UpdatePlayer(ps)

	require.Len(t, s.weapons, 2)
	assert.Equal(t, "missile_1", s.weapons[1].Def.ID)
	assert.Equal(t, 3, s.weapons[1].Ammo)
	assert.Equal(t, 17, s.weapons[1].ReloadTimer)
}

func TestCloseReleasesStores(t *testing.T) {
	s := newTestSession(t, ship.NewPlayer(), NodeStandard, NewRand(5))
	for range 200 {
		s.Step(idle())
	}
	s.Close()

	assert.Equal(t, OutcomeClosed, s.Step(idle()).Outcome)
	assert.Equal(t, StateClosed, s.State())
	f := s.Frame()
	assert.Empty(t, f.Enemies)
	assert.Empty(t, f.Projectiles)
	assert.Empty(t, f.Loot)
	assert.Empty(t, f.Weapons)
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := newTestSession(t, ship.NewPlayer(), NodeStandard, NewRand(12345))
		for i := range 900 {
			in := core.NewInputFrame()
			switch (i / 30) % 4 {
			case 0:
				in.Set(core.ActionUp)
			case 1:
				in.Set(core.ActionRight)
			case 2:
				in.Set(core.ActionDown)
			}
			res := s.Step(in)
			if res.Outcome == OutcomeLevelUp {
				s.AcknowledgeLevelUp()
			}
			if res.Outcome == OutcomeDied || res.Outcome == OutcomeCompleted {
				break
			}
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Tick, b.Tick)
	assert.Equal(t, a.EnemyData, b.EnemyData)
}

func TestFrameView(t *testing.T) {
	ps := ship.NewPlayer()
	ps.Credits = 100
	ps.Modules = append(ps.Modules, item(t, "missile_1"))
	s := newTestSession(t, ps, NodeBoss, noKiters)
	s.Step(idle())
	s.weapons[1].ReloadTimer = 120
	s.collected.Credits = 25

	f := s.Frame()
	assert.True(t, f.HasBoss)
	assert.InDelta(t, 1, f.BossHP, 1e-9)
	assert.Equal(t, 125, f.Credits)
	require.Len(t, f.Weapons, 2)
	assert.Zero(t, f.Weapons[0].Capacity)
	assert.True(t, f.Weapons[1].Reloading)
	assert.InDelta(t, 0.5, f.Weapons[1].Reload, 1e-9)

	f.Enemies[0].HP = -1
	assert.Positive(t, s.enemies[0].HP, "frame holds copies")
}

func TestHeadingGlyph(t *testing.T) {
	assert.Equal(t, '→', headingGlyph(0))
	assert.Equal(t, '↓', headingGlyph(math.Pi/2))
	assert.Equal(t, '←', headingGlyph(math.Pi))
	assert.Equal(t, '↑', headingGlyph(-math.Pi/2))
	assert.Equal(t, '↖', headingGlyph(-3*math.Pi/4))
}
