package hud

import (
	"testing"

	"arcadelab/internal/combat"

	"github.com/stretchr/testify/assert"
)

func TestHeartBar(t *testing.T) {
	h := combat.Health{Current: 3, Max: 5}
	assert.Equal(t, "❤ Health: ❤❤❤♡♡", HeartBar(h, HEARTS))
	assert.Equal(t, "♥ Health: ♥♥♥··", HeartBar(h, PLAIN_HEARTS))

	h.Current = -2
	assert.Equal(t, "❤ Health: ♡♡♡♡♡", HeartBar(h, HEARTS))
}

func TestPickGlyphs(t *testing.T) {
	all := func(rune) bool { return true }
	assert.Equal(t, HEARTS, PickGlyphs(all))

	noOutline := func(r rune) bool { return r != '♡' }
	assert.Equal(t, PLAIN_HEARTS, PickGlyphs(noOutline))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Fall Mode: REALISTIC", FallLabel(combat.Realistic))
	assert.Equal(t, "Mode: CREATIVE", GameModeNotice(combat.Creative))
	assert.Equal(t, "Fall Damage Mode: SOFT", FallModeNotice(combat.Soft))
}

func TestNoticesExpire(t *testing.T) {
	var n Notices
	n.Push("first")
	for i := 0; i < NOTICE_TICKS/2; i++ {
		n.Tick()
	}
	n.Push("second %d", 2)
	assert.Equal(t, []string{"first", "second 2"}, n.Active())

	for i := 0; i < NOTICE_TICKS/2; i++ {
		n.Tick()
	}
	assert.Equal(t, []string{"second 2"}, n.Active())

	for i := 0; i < NOTICE_TICKS; i++ {
		n.Tick()
	}
	assert.Empty(t, n.Active())
}

func TestNoticesCapped(t *testing.T) {
	var n Notices
	for i := 0; i < MAX_NOTICES+3; i++ {
		n.Push("n%d", i)
	}
	got := n.Active()
	assert.Len(t, got, MAX_NOTICES)
	assert.Equal(t, "n3", got[0])
}
