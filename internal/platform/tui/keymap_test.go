package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/voidrun/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{runeKey("w"), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{runeKey("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runeKey("p"), core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("z"), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			got, quit := km.MapKey(tc.msg)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.isQuit, quit)
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runeKey("k")))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionLeft, km.MapKeyToMenuAction(runeKey("a")))
	assert.Equal(t, MenuActionRight, km.MapKeyToMenuAction(runeKey("l")))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionSwitch, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(runeKey("b")))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey("q")))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey("x")))
}

func TestHeldKeysExpire(t *testing.T) {
	h := NewHeldKeys(3)
	h.Press(core.ActionRight)

	for i := range 3 {
		in := h.Frame()
		assert.True(t, in.Has(core.ActionRight), "frame %d", i)
	}
	assert.False(t, h.Frame().Has(core.ActionRight))
}

func TestHeldKeysRepeatRefreshes(t *testing.T) {
	h := NewHeldKeys(2)
	h.Press(core.ActionUp)
	h.Frame()
	h.Press(core.ActionUp)
	assert.True(t, h.Frame().Has(core.ActionUp))
	assert.True(t, h.Frame().Has(core.ActionUp))
	assert.False(t, h.Frame().Has(core.ActionUp))
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := NewHeldKeys(10)
	h.Press(core.ActionLeft)
	h.Press(core.ActionUp)
	h.Press(core.ActionRight)

	in := h.Frame()
	assert.True(t, in.Has(core.ActionRight))
	assert.True(t, in.Has(core.ActionUp))
	assert.False(t, in.Has(core.ActionLeft))
}

func TestHeldKeysIgnoresNonDirections(t *testing.T) {
	h := NewHeldKeys(0)
	h.Press(core.ActionPause)
	h.Press(core.ActionConfirm)
	assert.Empty(t, h.Frame().Actions)

	h.Press(core.ActionDown)
	h.Release()
	assert.Empty(t, h.Frame().Actions)
}
