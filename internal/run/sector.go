package run

import (
	"fmt"

	"github.com/vovakirdan/voidrun/internal/combat"
)

// Map shape.
const (
	MapDepth    = 10
	minTierSize = 3
	tierSpread  = 2 // tiers hold minTierSize..minTierSize+tierSpread-1 nodes
	shopEvery   = 3
)

// Node type draw thresholds for ordinary tiers (cumulative).
const (
	eventChance = 0.25
	eliteChance = 0.40
	restChance  = 0.50
)

// NodeType is what happens at a sector node.
type NodeType int

const (
	NodeStart NodeType = iota
	NodeCombat
	NodeElite
	NodeEvent
	NodeShop
	NodeRest
	NodeBoss
)

// String returns the node type name.
func (t NodeType) String() string {
	switch t {
	case NodeStart:
		return "Start"
	case NodeCombat:
		return "Combat"
	case NodeElite:
		return "Elite"
	case NodeEvent:
		return "Event"
	case NodeShop:
		return "Shop"
	case NodeRest:
		return "Rest"
	case NodeBoss:
		return "Boss"
	default:
		return "Unknown"
	}
}

// IsCombat reports whether selecting the node starts a combat session.
func (t NodeType) IsCombat() bool {
	switch t {
	case NodeStart, NodeCombat, NodeElite, NodeBoss:
		return true
	default:
		return false
	}
}

// SessionNode maps a node type to the combat spawn policy.
func (t NodeType) SessionNode() combat.NodeKind {
	if t == NodeBoss {
		return combat.NodeBoss
	}
	return combat.NodeStandard
}

// Node is one selectable position on the sector map.
type Node struct {
	ID        string
	Type      NodeType
	Tier      int
	Col       int
	Completed bool
}

// GenerateMap lays out a sector of depth tiers. The first tier is all
// Start nodes, the last all Boss, every third tier a Shop row, and the
// rest are drawn at random.
func GenerateMap(rng combat.Rand, depth int) [][]Node {
	tiers := make([][]Node, depth)
	for i := range tiers {
		width := minTierSize + rng.Intn(tierSpread)
		row := make([]Node, width)
		for j := range row {
			row[j] = Node{
				ID:   fmt.Sprintf("node-%d-%d", i, j),
				Type: drawNodeType(rng, i, depth),
				Tier: i,
				Col:  j,
			}
		}
		tiers[i] = row
	}
	return tiers
}

func drawNodeType(rng combat.Rand, tier, depth int) NodeType {
	switch {
	case tier == 0:
		return NodeStart
	case tier == depth-1:
		return NodeBoss
	case tier%shopEvery == 0:
		return NodeShop
	}

	r := rng.Float64()
	switch {
	case r < eventChance:
		return NodeEvent
	case r < eliteChance:
		return NodeElite
	case r < restChance:
		return NodeRest
	default:
		return NodeCombat
	}
}
