package flight

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"arcadelab/internal/logging"
)

type State int

const (
	Startup State = iota
	Flying
	Crashed
	Spectating
)

func (s State) String() string {
	switch s {
	case Startup:
		return "startup"
	case Flying:
		return "flying"
	case Crashed:
		return "crashed"
	case Spectating:
		return "spectating"
	}
	return "unknown"
}

const (
	GROUND_MARGIN     = 120
	DEFAULT_START_ALT = 1200
	DEFAULT_TARGET    = 2000
	ROLL_RATE         = 0.03
	THRUST            = 0.1
	LIFT              = 0.05
	AUTOPILOT_GAIN    = 0.002
	FUEL_BURN         = 0.002
)

// ParseAltitude reads a leading integer the way a browser's parseInt does,
// including a 0x prefix for hex. Values too large for an int saturate. It
// returns def when nothing usable is there or the value is zero.
func ParseAltitude(s string, def int) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base, isDigit := 10, func(c byte) bool { return c >= '0' && c <= '9' }
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, s = 16, s[2:]
		isDigit = func(c byte) bool {
			return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
		}
	}
	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return def
	}
	n, err := strconv.ParseInt(s[:end], base, 0)
	if err != nil {
		// only digits reach here, so the error is a range overflow
		n = math.MaxInt
	}
	if neg {
		n = -n
	}
	if n == 0 {
		return def
	}
	return int(n)
}

type Settings struct {
	Plane         string
	StartAltitude string
	AutopilotAlt  string
	Autopilot     bool
	UnlimitedFuel bool
	NoCrash       bool
	ScreenW       float64
	ScreenH       float64
}

type Controls struct {
	RollLeft, RollRight bool
	Throttle            bool
}

type Telemetry struct {
	SpeedMPH    float64
	RatedMPH    float64 // plane's nominal top speed; not enforced
	VerticalFPM float64
	AltitudeFt  float64
}

// Flight owns the plane, the skyline and the camera for one play session.
type Flight struct {
	Settings Settings
	State    State
	Plane    *Plane
	City     *City
	Throttle float64
	CameraX  float64
	CameraY  float64
	rng      *rand.Rand
}

func New(s Settings, rng *rand.Rand) (*Flight, error) {
	f := &Flight{Settings: s, rng: rng}
	if err := f.init(s.Plane); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Flight) GroundY() float64 {
	return f.Settings.ScreenH - GROUND_MARGIN
}

func (f *Flight) init(kind string) error {
	alt := ParseAltitude(f.Settings.StartAltitude, DEFAULT_START_ALT)
	p, err := NewPlane(kind, float64(alt), f.GroundY())
	if err != nil {
		return err
	}
	f.Plane = p
	f.Settings.Plane = p.Kind.Name
	f.City = NewCity(f.rng, f.GroundY())
	f.Throttle = 0
	f.follow()
	return nil
}

// Start leaves the startup screen with the chosen plane and altitude text.
func (f *Flight) Start(kind, altitude string) error {
	f.Settings.StartAltitude = altitude
	if err := f.init(kind); err != nil {
		return err
	}
	f.State = Flying
	logging.LogInfo("Takeoff: %s at %d ft", f.Plane.Kind.Name, ParseAltitude(altitude, DEFAULT_START_ALT))
	return nil
}

// Reset re-creates the plane and the skyline from the configured start
// altitude and resumes flying.
func (f *Flight) Reset() error {
	if err := f.init(f.Settings.Plane); err != nil {
		return err
	}
	f.State = Flying
	logging.LogInfo("Flight reset")
	return nil
}

func (f *Flight) Spectate() {
	f.State = Spectating
}

// SwitchPlane swaps the aircraft in place, keeping the current altitude.
func (f *Flight) SwitchPlane(kind string) error {
	alt := (f.GroundY() - f.Plane.Y) * PX_TO_FT
	p, err := NewPlane(kind, alt, f.GroundY())
	if err != nil {
		return err
	}
	f.Plane = p
	f.Settings.Plane = p.Kind.Name
	logging.LogInfo("Switched to %s at %.0f ft", p.Kind.Name, alt)
	return nil
}

func (f *Flight) ToggleUnlimitedFuel() bool {
	f.Settings.UnlimitedFuel = !f.Settings.UnlimitedFuel
	return f.Settings.UnlimitedFuel
}

func (f *Flight) follow() {
	f.CameraX = f.Plane.X - f.Settings.ScreenW/2
	f.CameraY = f.Plane.Y - f.Settings.ScreenH/2
}

// Update advances one frame. The plane only moves while flying.
func (f *Flight) Update(c Controls) {
	f.follow()
	if f.State != Flying {
		f.Throttle = 0
		return
	}
	p := f.Plane

	roll := 0.0
	if c.RollLeft {
		roll = -1
	}
	if c.RollRight {
		roll = 1
	}
	f.Throttle = 0
	if c.Throttle && (p.Fuel > 0 || f.Settings.UnlimitedFuel) {
		f.Throttle = 1
	}

	if f.Settings.Autopilot {
		target := f.GroundY() - float64(ParseAltitude(f.Settings.AutopilotAlt, DEFAULT_TARGET))*ALT_TO_PX
		p.VY += (target - p.Y) * AUTOPILOT_GAIN
	}

	p.Angle += roll * ROLL_RATE
	p.VX += math.Cos(p.Angle) * f.Throttle * THRUST
	p.VY += math.Sin(p.Angle)*f.Throttle*THRUST + LIFT

	if !f.Settings.UnlimitedFuel && p.Fuel > 0 {
		p.Fuel = math.Max(0, p.Fuel-f.Throttle*FUEL_BURN)
	}

	p.X += p.VX
	p.Y += p.VY

	if p.Y+p.H/2 > f.GroundY() {
		p.Y = f.GroundY() - p.H/2
		if f.Settings.NoCrash {
			p.VY = math.Min(p.VY, 0)
		} else {
			f.crash()
		}
	}

	f.City.Extend(p.X)
}

func (f *Flight) crash() {
	f.State = Crashed
	f.Plane.VX, f.Plane.VY = 0, 0
	f.Throttle = 0
	logging.LogInfo("Crashed at x=%.0f", f.Plane.X)
}

func (f *Flight) Telemetry() Telemetry {
	p := f.Plane
	return Telemetry{
		SpeedMPH:    math.Hypot(p.VX, p.VY) * SPEED_UNIT * 0.621371,
		RatedMPH:    p.MaxSpeed * SPEED_UNIT * 0.621371,
		VerticalFPM: -p.VY * SPEED_UNIT * 196.85,
		AltitudeFt:  (f.GroundY() - p.Y - p.H/2) * PX_TO_FT,
	}
}
