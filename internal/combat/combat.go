package combat

import (
	"fmt"
	"math"
	"strings"
)

type GameMode int

const (
	Survival GameMode = iota
	Creative
)

func (g GameMode) String() string {
	if g == Creative {
		return "creative"
	}
	return "survival"
}

func (g GameMode) Toggle() GameMode {
	if g == Creative {
		return Survival
	}
	return Creative
}

func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(s) {
	case "survival":
		return Survival, nil
	case "creative":
		return Creative, nil
	}
	return Survival, fmt.Errorf("unknown game mode %q", s)
}

// FallMode selects a fall damage formula.
type FallMode int

const (
	Minecraft FallMode = iota
	Soft
	Realistic
	Hardcore
)

var fallModeNames = [...]string{"minecraft", "soft", "realistic", "hardcore"}

func (m FallMode) String() string {
	if m < 0 || int(m) >= len(fallModeNames) {
		return "unknown"
	}
	return fallModeNames[m]
}

// Next cycles minecraft -> soft -> realistic -> hardcore -> minecraft.
func (m FallMode) Next() FallMode {
	return FallMode((int(m) + 1) % len(fallModeNames))
}

func ParseFallMode(s string) (FallMode, error) {
	for i, name := range fallModeNames {
		if strings.EqualFold(s, name) {
			return FallMode(i), nil
		}
	}
	return Minecraft, fmt.Errorf("unknown fall mode %q", s)
}

// FallDamage converts an accumulated fall distance into hit points.
func FallDamage(mode FallMode, game GameMode, distance float64) int {
	if game == Creative {
		return 0
	}
	var dmg float64
	switch mode {
	case Minecraft:
		dmg = distance - 3
	case Soft:
		dmg = (distance - 4) * 0.5
	case Realistic:
		dmg = distance * 0.9
	case Hardcore:
		dmg = distance * 1.5
	}
	return int(math.Max(0, math.Floor(dmg)))
}

const MAX_HEALTH = 20

type Health struct {
	Current int
	Max     int
}

func NewHealth() Health {
	return Health{Current: MAX_HEALTH, Max: MAX_HEALTH}
}

func (h *Health) Damage(n int) {
	if n <= 0 {
		return
	}
	h.Current -= n
}

func (h Health) Dead() bool {
	return h.Current <= 0
}

func (h *Health) Reset() {
	h.Current = h.Max
}
