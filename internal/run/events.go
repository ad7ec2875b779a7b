package run

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/voidrun/internal/combat"
)

// DefaultEventTimeout bounds how long a generator may take.
const DefaultEventTimeout = 5 * time.Second

// ErrEmptyEvent is returned for events without choices.
var ErrEmptyEvent = errors.New("run: event has no choices")

// Reward is what an event choice grants or costs.
type Reward struct {
	Credits   int
	Materials int
	Repair    bool    // full heal to the recalculated maximum
	Damage    float64 // hull damage, never below 1 hull
}

// Empty reports whether the reward does nothing.
func (r Reward) Empty() bool {
	return r == Reward{}
}

// String summarises the reward for display.
func (r Reward) String() string {
	var parts []string
	if r.Credits != 0 {
		parts = append(parts, fmt.Sprintf("%d credits", r.Credits))
	}
	if r.Materials != 0 {
		parts = append(parts, fmt.Sprintf("%d materials", r.Materials))
	}
	if r.Repair {
		parts = append(parts, "full repair")
	}
	if r.Damage > 0 {
		parts = append(parts, fmt.Sprintf("%.0f hull damage", r.Damage))
	}
	return strings.Join(parts, ", ")
}

// Choice is one option of an event.
type Choice struct {
	Text    string
	Outcome string
	Reward  Reward
}

// Event is a narrative encounter with a handful of choices.
type Event struct {
	Title       string
	Description string
	Choices     []Choice
}

// Validate checks that the event can be presented.
func (e Event) Validate() error {
	if len(e.Choices) == 0 {
		return ErrEmptyEvent
	}
	return nil
}

// EventGenerator produces events for a sector level. Implementations
// should honour ctx cancellation.
type EventGenerator interface {
	Generate(ctx context.Context, sector int) (Event, error)
}

// EventGeneratorFunc adapts a function to EventGenerator.
type EventGeneratorFunc func(ctx context.Context, sector int) (Event, error)

// Generate calls f.
func (f EventGeneratorFunc) Generate(ctx context.Context, sector int) (Event, error) {
	return f(ctx, sector)
}

// FallbackEvent is used whenever generation fails.
func FallbackEvent() Event {
	return Event{
		Title:       "Derelict Signal",
		Description: "A faint beacon pulses from a gutted freighter. It looks safe to investigate, but pirates could be close.",
		Choices: []Choice{
			{
				Text:    "Salvage the wreck",
				Outcome: "You find some usable materials in the wreck.",
				Reward:  Reward{Materials: 15},
			},
			{
				Text:    "Leave",
				Outcome: "Safety first. You leave.",
			},
		},
	}
}

// GenerateEvent asks gen for an event and falls back to FallbackEvent on
// error, timeout or an invalid result. The returned error reports why the
// fallback was used; the event is always usable.
func GenerateEvent(ctx context.Context, gen EventGenerator, sector int, timeout time.Duration) (Event, error) {
	if gen == nil {
		return FallbackEvent(), nil
	}
	if timeout <= 0 {
		timeout = DefaultEventTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		evt Event
		err error
	}
	done := make(chan result, 1)
	go func() {
		evt, err := gen.Generate(ctx, sector)
		done <- result{evt, err}
	}()

	select {
	case <-ctx.Done():
		return FallbackEvent(), fmt.Errorf("run: generate event: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return FallbackEvent(), fmt.Errorf("run: generate event: %w", res.err)
		}
		if err := res.evt.Validate(); err != nil {
			return FallbackEvent(), fmt.Errorf("run: generate event: %w", err)
		}
		return res.evt, nil
	}
}

// eventTemplate is a table entry for TableGenerator. Reward amounts are
// drawn from the ranges when the event is built.
type eventTemplate struct {
	title       string
	description string
	choices     []choiceTemplate
}

type rewardKind int

const (
	rewardNothing rewardKind = iota
	rewardCredits
	rewardMaterials
	rewardRepair
	rewardDamage
)

type choiceTemplate struct {
	text    string
	outcome string
	kind    rewardKind
	lo, hi  int
}

var eventTable = []eventTemplate{
	{
		title:       "Drifting Cargo Pod",
		description: "An unmarked cargo pod tumbles through the debris field, its locks half melted.",
		choices: []choiceTemplate{
			{text: "Crack it open", outcome: "The pod is packed with trade goods.", kind: rewardCredits, lo: 100, hi: 1000},
			{text: "Scan it first", outcome: "The scan trips a charge. The blast scorches your hull.", kind: rewardDamage, lo: 10, hi: 100},
			{text: "Leave it", outcome: "You leave the pod to the void."},
		},
	},
	{
		title:       "Mining Outpost",
		description: "A lonely outpost hails you. The foreman offers spare ore in exchange for an escort run.",
		choices: []choiceTemplate{
			{text: "Take the ore", outcome: "The foreman loads your hold.", kind: rewardMaterials, lo: 10, hi: 50},
			{text: "Ask for repairs", outcome: "Their drones patch your ship from bow to stern.", kind: rewardRepair},
		},
	},
	{
		title:       "Ion Storm",
		description: "A wall of charged particles rolls across the sector. Your sensors flicker.",
		choices: []choiceTemplate{
			{text: "Punch through", outcome: "Arcs crawl over the hull before you break free.", kind: rewardDamage, lo: 10, hi: 100},
			{text: "Harvest the charge", outcome: "Your collectors skim exotic particles worth a fortune.", kind: rewardCredits, lo: 100, hi: 1000},
			{text: "Wait it out", outcome: "The storm passes. Nothing gained, nothing lost."},
		},
	},
	{
		title:       "Abandoned Drone Bay",
		description: "A derelict carrier still holds a rack of dormant repair drones.",
		choices: []choiceTemplate{
			{text: "Wake the drones", outcome: "The drones hum to life and mend your ship.", kind: rewardRepair},
			{text: "Strip them for parts", outcome: "You salvage the drone frames.", kind: rewardMaterials, lo: 10, hi: 50},
		},
	},
}

// TableGenerator builds events from a fixed table. It needs no network and
// is deterministic for a given Rand. It is safe for concurrent use: a call
// abandoned by GenerateEvent on timeout may still be drawing when the next
// one starts.
type TableGenerator struct {
	mu  sync.Mutex
	rng combat.Rand
}

// NewTableGenerator creates a table-backed generator.
func NewTableGenerator(rng combat.Rand) *TableGenerator {
	return &TableGenerator{rng: rng}
}

// Generate implements EventGenerator.
func (g *TableGenerator) Generate(ctx context.Context, sector int) (Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}

	tpl := eventTable[g.rng.Intn(len(eventTable))]
	evt := Event{
		Title:       tpl.title,
		Description: fmt.Sprintf("Sector %d. %s", sector, tpl.description),
		Choices:     make([]Choice, len(tpl.choices)),
	}
	for i, ct := range tpl.choices {
		evt.Choices[i] = Choice{Text: ct.text, Outcome: ct.outcome, Reward: g.reward(ct)}
	}
	return evt, nil
}

// reward draws a choice's amount; g.mu must be held.
func (g *TableGenerator) reward(ct choiceTemplate) Reward {
	amount := ct.lo
	if ct.hi > ct.lo {
		amount += g.rng.Intn(ct.hi - ct.lo + 1)
	}
	switch ct.kind {
	case rewardCredits:
		return Reward{Credits: amount}
	case rewardMaterials:
		return Reward{Materials: amount}
	case rewardRepair:
		return Reward{Repair: true}
	case rewardDamage:
		return Reward{Damage: float64(amount)}
	default:
		return Reward{}
	}
}
