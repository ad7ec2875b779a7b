package run

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/voidrun/internal/combat"
)

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

func TestGenerateMapShape(t *testing.T) {
	nodes := GenerateMap(combat.NewRand(42), MapDepth)
	require.Len(t, nodes, MapDepth)

	for i, row := range nodes {
		assert.GreaterOrEqual(t, len(row), 3, "tier %d", i)
		assert.LessOrEqual(t, len(row), 4, "tier %d", i)
		for j, n := range row {
			assert.Equal(t, fmt.Sprintf("node-%d-%d", i, j), n.ID)
			assert.Equal(t, i, n.Tier)
			assert.Equal(t, j, n.Col)
			assert.False(t, n.Completed)

			switch {
			case i == 0:
				assert.Equal(t, NodeStart, n.Type)
			case i == MapDepth-1:
				assert.Equal(t, NodeBoss, n.Type)
			case i%3 == 0:
				assert.Equal(t, NodeShop, n.Type)
			default:
				assert.Contains(t, []NodeType{NodeEvent, NodeElite, NodeRest, NodeCombat}, n.Type)
			}
		}
	}
}

func TestGenerateMapDeterministic(t *testing.T) {
	a := GenerateMap(combat.NewRand(7), MapDepth)
	b := GenerateMap(combat.NewRand(7), MapDepth)
	assert.Equal(t, a, b)
}

func TestDrawNodeType(t *testing.T) {
	tests := []struct {
		roll float64
		want NodeType
	}{
		{0.0, NodeEvent},
		{0.24, NodeEvent},
		{0.25, NodeElite},
		{0.39, NodeElite},
		{0.4, NodeRest},
		{0.49, NodeRest},
		{0.5, NodeCombat},
		{0.99, NodeCombat},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%.2f", tc.roll), func(t *testing.T) {
			assert.Equal(t, tc.want, drawNodeType(constRand{f: tc.roll}, 1, MapDepth))
		})
	}
}

func TestNodeTypeCombatMapping(t *testing.T) {
	for _, nt := range []NodeType{NodeStart, NodeCombat, NodeElite} {
		assert.True(t, nt.IsCombat(), nt.String())
		assert.Equal(t, combat.NodeStandard, nt.SessionNode())
	}
	assert.True(t, NodeBoss.IsCombat())
	assert.Equal(t, combat.NodeBoss, NodeBoss.SessionNode())

	for _, nt := range []NodeType{NodeEvent, NodeShop, NodeRest} {
		assert.False(t, nt.IsCombat(), nt.String())
	}
}
