package hud

import (
	"fmt"
	"strings"

	"arcadelab/internal/combat"
)

const (
	// NOTICE_TICKS is how long a notice stays on screen at 60 ticks per second.
	NOTICE_TICKS = 150
	MAX_NOTICES  = 4
)

// Glyphs are the characters a heart bar is drawn with.
type Glyphs struct {
	Full, Empty string
}

var (
	HEARTS = Glyphs{Full: "❤", Empty: "♡"}
	// PLAIN_HEARTS stays inside WGL4, which is all Go Mono covers.
	PLAIN_HEARTS = Glyphs{Full: "♥", Empty: "·"}
)

// PickGlyphs returns HEARTS when the font has both of its runes.
func PickGlyphs(has func(rune) bool) Glyphs {
	for _, s := range []string{HEARTS.Full, HEARTS.Empty} {
		for _, r := range s {
			if !has(r) {
				return PLAIN_HEARTS
			}
		}
	}
	return HEARTS
}

func HeartBar(h combat.Health, g Glyphs) string {
	var sb strings.Builder
	sb.WriteString(g.Full + " Health: ")
	for i := 0; i < h.Max; i++ {
		if i < h.Current {
			sb.WriteString(g.Full)
		} else {
			sb.WriteString(g.Empty)
		}
	}
	return sb.String()
}

func FallLabel(m combat.FallMode) string {
	return "Fall Mode: " + strings.ToUpper(m.String())
}

func GameModeNotice(g combat.GameMode) string {
	return "Mode: " + strings.ToUpper(g.String())
}

func FallModeNotice(m combat.FallMode) string {
	return "Fall Damage Mode: " + strings.ToUpper(m.String())
}

const DEATH_NOTICE = "You died!"

type Notice struct {
	Text      string
	Remaining int
}

// Notices is a short queue of messages that expire after NOTICE_TICKS.
type Notices struct {
	items []Notice
}

func (n *Notices) Push(format string, args ...interface{}) {
	n.items = append(n.items, Notice{Text: fmt.Sprintf(format, args...), Remaining: NOTICE_TICKS})
	if len(n.items) > MAX_NOTICES {
		n.items = n.items[len(n.items)-MAX_NOTICES:]
	}
}

// Tick ages every notice by one tick and drops the expired ones.
func (n *Notices) Tick() {
	kept := n.items[:0]
	for _, it := range n.items {
		it.Remaining--
		if it.Remaining > 0 {
			kept = append(kept, it)
		}
	}
	n.items = kept
}

// Active returns the live notices, oldest first.
func (n *Notices) Active() []string {
	out := make([]string, len(n.items))
	for i, it := range n.items {
		out[i] = it.Text
	}
	return out
}

// State is everything the voxel HUD draws in one frame.
type State struct {
	Hearts   string
	FallMode string
	Notices  []string
	FPS      int
}
