package flight

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settings() Settings {
	return Settings{
		Plane:         "jet",
		StartAltitude: "1200",
		AutopilotAlt:  "2000",
		ScreenW:       1600,
		ScreenH:       900,
	}
}

func flying(t *testing.T, s Settings) *Flight {
	t.Helper()
	f, err := New(s, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.NoError(t, f.Start(s.Plane, s.StartAltitude))
	return f
}

func TestNewPlane(t *testing.T) {
	p, err := NewPlane("jet", 1200, 780)
	require.NoError(t, err)
	assert.Equal(t, 400.0, p.X)
	assert.InDelta(t, 720, p.Y, 1e-9)
	assert.InDelta(t, 136, p.W, 1e-9)
	assert.InDelta(t, 68, p.H, 1e-9)
	assert.InDelta(t, 9, p.MaxSpeed, 1e-9)
	assert.Equal(t, 1.0, p.Fuel)

	p, err = NewPlane("Fighter", 0, 780)
	require.NoError(t, err)
	assert.InDelta(t, 16.09, p.MaxSpeed, 1e-9)

	_, err = NewPlane("blimp", 1200, 780)
	assert.Error(t, err)
	assert.Equal(t, []string{"fighter", "jet"}, Kinds())
}

func TestCityGenerationAndExtend(t *testing.T) {
	c := NewCity(rand.New(rand.NewSource(1)), 780)
	require.Len(t, c.Buildings, INITIAL_BUILDINGS)
	for i, b := range c.Buildings {
		assert.GreaterOrEqual(t, b.X, float64(i*400))
		assert.Less(t, b.X, float64(i*400+100))
		assert.GreaterOrEqual(t, b.W, 60.0)
		assert.Less(t, b.W, 160.0)
		assert.GreaterOrEqual(t, b.H, 100.0)
		assert.Less(t, b.H, 250.0)
		assert.Equal(t, 780.0, b.Y)
	}

	last := c.LastX()
	assert.False(t, c.Extend(0))
	assert.True(t, c.Extend(last))
	require.Len(t, c.Buildings, INITIAL_BUILDINGS+1)
	added := c.Buildings[INITIAL_BUILDINGS]
	assert.GreaterOrEqual(t, added.X, last+300)
	assert.Less(t, added.X, last+400)
	assert.Equal(t, added.X, c.LastX())
}

func TestBuildingWindows(t *testing.T) {
	var got [][2]float64
	Building{W: 20, H: 30}.Windows(func(dx, dy float64) {
		got = append(got, [2]float64{dx, dy})
	})
	assert.Equal(t, [][2]float64{{5, 5}, {5, 25}}, got)
}

func TestParseAltitude(t *testing.T) {
	cases := map[string]int{
		"":                      1200,
		"abc":                   1200,
		"0":                     1200,
		"1500ft":                1500,
		"  800":                 800,
		"-50":                   -50,
		"+7":                    7,
		"-":                     1200,
		"0x10":                  16,
		"-0X1f":                 -31,
		"0x":                    1200,
		"0x2g":                  2,
		"99999999999999999999":  math.MaxInt,
		"-99999999999999999999": -math.MaxInt,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseAltitude(in, 1200), "input %q", in)
	}
}

func TestStartupDoesNotMove(t *testing.T) {
	f, err := New(settings(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, Startup, f.State)
	y := f.Plane.Y
	f.Update(Controls{Throttle: true})
	assert.Equal(t, y, f.Plane.Y)
	assert.Equal(t, 0.0, f.Throttle)
}

func TestGlideAndThrottle(t *testing.T) {
	f := flying(t, settings())
	y := f.Plane.Y
	f.Update(Controls{})
	assert.InDelta(t, LIFT, f.Plane.VY, 1e-12)
	assert.InDelta(t, y+LIFT, f.Plane.Y, 1e-12)

	f.Update(Controls{Throttle: true})
	assert.Equal(t, 1.0, f.Throttle)
	assert.InDelta(t, THRUST, f.Plane.VX, 1e-12)
	assert.InDelta(t, 1-FUEL_BURN, f.Plane.Fuel, 1e-12)

	f.Update(Controls{RollRight: true})
	assert.InDelta(t, ROLL_RATE, f.Plane.Angle, 1e-12)
}

func TestFuelExhaustion(t *testing.T) {
	f := flying(t, settings())
	f.Plane.Fuel = 0.001
	f.Update(Controls{Throttle: true})
	assert.Equal(t, 0.0, f.Plane.Fuel)

	f.Update(Controls{Throttle: true})
	assert.Equal(t, 0.0, f.Throttle)

	assert.True(t, f.ToggleUnlimitedFuel())
	f.Update(Controls{Throttle: true})
	assert.Equal(t, 1.0, f.Throttle)
	assert.Equal(t, 0.0, f.Plane.Fuel)
}

func TestSpeedNotCapped(t *testing.T) {
	s := settings()
	s.UnlimitedFuel = true
	f := flying(t, s)
	f.Plane.Y = f.GroundY() - 1e6
	for i := 0; i < 300; i++ {
		f.Update(Controls{Throttle: true})
	}
	require.Equal(t, Flying, f.State)
	assert.InDelta(t, 30, f.Plane.VX, 1e-6)
	assert.InDelta(t, 15, f.Plane.VY, 1e-6)
	assert.Greater(t, math.Hypot(f.Plane.VX, f.Plane.VY), f.Plane.MaxSpeed)
	assert.InDelta(t, f.Plane.MaxSpeed*SPEED_UNIT*0.621371, f.Telemetry().RatedMPH, 1e-9)
}

func TestAutopilotPullsTowardTarget(t *testing.T) {
	s := settings()
	s.Autopilot = true
	f := flying(t, s)
	target := f.GroundY() - 2000*ALT_TO_PX
	f.Plane.Y = target + 100
	f.Update(Controls{})
	assert.InDelta(t, -100*AUTOPILOT_GAIN+LIFT, f.Plane.VY, 1e-12)
}

func TestCrashAndReset(t *testing.T) {
	f := flying(t, settings())
	f.Plane.Y = f.GroundY() - f.Plane.H/2 - 0.01
	f.Update(Controls{})
	require.Equal(t, Crashed, f.State)
	assert.Equal(t, f.GroundY()-f.Plane.H/2, f.Plane.Y)
	assert.Equal(t, 0.0, f.Plane.VY)

	x := f.Plane.X
	f.Update(Controls{Throttle: true})
	assert.Equal(t, x, f.Plane.X)

	f.Spectate()
	assert.Equal(t, Spectating, f.State)

	require.NoError(t, f.Reset())
	assert.Equal(t, Flying, f.State)
	assert.InDelta(t, f.GroundY()-1200*ALT_TO_PX, f.Plane.Y, 1e-9)
	assert.Len(t, f.City.Buildings, INITIAL_BUILDINGS)
}

func TestNoCrashRestsOnGround(t *testing.T) {
	s := settings()
	s.NoCrash = true
	f := flying(t, s)
	f.Plane.Y = f.GroundY() - f.Plane.H/2 - 0.01
	for i := 0; i < 10; i++ {
		f.Update(Controls{})
	}
	assert.Equal(t, Flying, f.State)
	assert.Equal(t, f.GroundY()-f.Plane.H/2, f.Plane.Y)
	assert.InDelta(t, 0, f.Telemetry().AltitudeFt, 1e-9)
}

func TestTelemetry(t *testing.T) {
	f := flying(t, settings())
	f.Plane.VX, f.Plane.VY = 3, -4
	f.Plane.Y = f.GroundY() - f.Plane.H/2 - 10
	tm := f.Telemetry()
	assert.InDelta(t, 621.371, tm.SpeedMPH, 1e-6)
	assert.InDelta(t, 157480, tm.VerticalFPM, 1e-6)
	assert.InDelta(t, 200, tm.AltitudeFt, 1e-9)
}

func TestSwitchPlaneKeepsAltitude(t *testing.T) {
	f := flying(t, settings())
	y := f.Plane.Y
	require.NoError(t, f.SwitchPlane("fighter"))
	assert.Equal(t, "fighter", f.Plane.Kind.Name)
	assert.InDelta(t, y, f.Plane.Y, 1e-9)
	assert.Error(t, f.SwitchPlane("zeppelin"))
	assert.Equal(t, "fighter", f.Settings.Plane)
}
