package flight

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Kind describes one selectable aircraft.
type Kind struct {
	Name   string
	Speed  float64
	Scale  float64
	Sprite string
}

var Catalogue = map[string]Kind{
	"jet":     {Name: "jet", Speed: 1800, Scale: 1.7, Sprite: "plane.png"},
	"fighter": {Name: "fighter", Speed: 3218, Scale: 1.7, Sprite: "fighter.png"},
}

// Kinds lists the catalogue names in a stable order.
func Kinds() []string {
	names := make([]string, 0, len(Catalogue))
	for name := range Catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LookupKind(name string) (Kind, error) {
	k, ok := Catalogue[strings.ToLower(name)]
	if !ok {
		return Kind{}, fmt.Errorf("unknown plane %q", name)
	}
	return k, nil
}

const (
	START_X    = 400
	BASE_W     = 80
	BASE_H     = 40
	ALT_TO_PX  = 0.05
	PX_TO_FT   = 20
	SPEED_UNIT = 200
)

type Plane struct {
	Kind     Kind
	X, Y     float64
	W, H     float64
	VX, VY   float64
	Angle    float64
	MaxSpeed float64
	Fuel     float64
}

// NewPlane places a plane startAlt feet above groundY. Screen y grows
// downward so altitude subtracts.
func NewPlane(kind string, startAlt, groundY float64) (*Plane, error) {
	k, err := LookupKind(kind)
	if err != nil {
		return nil, err
	}
	return &Plane{
		Kind:     k,
		X:        START_X,
		Y:        groundY - startAlt*ALT_TO_PX,
		W:        BASE_W * k.Scale,
		H:        BASE_H * k.Scale,
		MaxSpeed: k.Speed / SPEED_UNIT,
		Fuel:     1,
	}, nil
}

const (
	INITIAL_BUILDINGS = 50
	BUILDING_SPACING  = 400
	EXTEND_AHEAD      = 800
	EXTEND_GAP        = 300
	WINDOW_W          = 6
	WINDOW_H          = 10
)

// Building is a rectangle standing on the ground; Y is its base line.
type Building struct {
	X, Y float64
	W, H float64
}

// Windows calls fn with the offset of every lit window from the building's
// top-left corner.
func (b Building) Windows(fn func(dx, dy float64)) {
	for wx := 5.0; wx < b.W; wx += 15 {
		for wy := 5.0; wy < b.H; wy += 20 {
			fn(wx, wy)
		}
	}
}

// City is the append-only skyline. Buildings are never removed.
type City struct {
	Buildings []Building
	groundY   float64
	rng       *rand.Rand
	lastX     float64
}

func NewCity(rng *rand.Rand, groundY float64) *City {
	c := &City{groundY: groundY, rng: rng}
	for i := 0; i < INITIAL_BUILDINGS; i++ {
		c.add(float64(i*BUILDING_SPACING) + rng.Float64()*100)
	}
	return c
}

func (c *City) add(x float64) {
	w := 60 + c.rng.Float64()*100
	h := 100 + c.rng.Float64()*150
	c.Buildings = append(c.Buildings, Building{X: x, Y: c.groundY, W: w, H: h})
	if len(c.Buildings) == 1 || x > c.lastX {
		c.lastX = x
	}
}

func (c *City) LastX() float64 {
	return c.lastX
}

// Extend appends one building past the skyline when the plane comes within
// EXTEND_AHEAD of its end.
func (c *City) Extend(planeX float64) bool {
	if planeX+EXTEND_AHEAD <= c.lastX {
		return false
	}
	c.add(c.lastX + EXTEND_GAP + c.rng.Float64()*100)
	return true
}
