package controller

import (
	"path/filepath"
	"testing"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/imu"
	"github.com/acroloop/acroloop/internal/mixer"
	"github.com/acroloop/acroloop/internal/persistence"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/rc"
	"github.com/stretchr/testify/assert"
)

var testLoopConfig = configuration.LoopConfig{
	FrequencyHz:    500,
	Controller:     "mwrewrite",
	MaxInclination: 500,
	StickCenter:    1500,
	GyroWindowSize: 8,
}

func testProfile() *pid.TuningProfile {
	return &pid.TuningProfile{
		P8: [pid.AxisCount]uint8{40, 40, 64},
		I8: [pid.AxisCount]uint8{30, 30, 100},
		D8: [pid.AxisCount]uint8{23, 23, 0},

		Pf: [pid.AxisCount]float64{1.4, 1.4, 2.0},
		If: [pid.AxisCount]float64{0.4, 0.4, 1.0},
		Df: [pid.AxisCount]float64{0.03, 0.03, 0},
	}
}

// yaw rate 5 makes the fixed-point yaw target equal the yaw command
const yawUnityRate = 5

func testRates() pid.RateConfig {
	return pid.RateConfig{Rates: [pid.AxisCount]uint8{0, 0, yawUnityRate}}
}

type loopFixture struct {
	loop     RateLoop
	rcSource *rc.VirtualSource
	mix      *mixer.NullMixer
	db       persistence.Persistence
}

func createLoop(t *testing.T) loopFixture {
	return createLoopWithConfig(t, testLoopConfig)
}

func createLoopWithConfig(t *testing.T, config configuration.LoopConfig) loopFixture {
	imuSource := imu.NewVirtualSource(configuration.VirtualImuConfig{})
	rcSource := rc.NewVirtualSource(configuration.VirtualRcConfig{}, config.StickCenter)
	mix := &mixer.NullMixer{}
	db := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))

	loop := NewRateLoop(config, db, imuSource, rcSource, mix, testProfile(), testRates())
	return loopFixture{
		loop:     loop,
		rcSource: rcSource,
		mix:      mix,
		db:       db,
	}
}

func TestRateLoopZeroInputZeroDemand(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)

	// WHEN
	err := fixture.loop.Cycle(pid.Timing(2000))

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, [pid.AxisCount]int32{0, 0, 0}, fixture.mix.LastDemand())
}

func TestRateLoopYawCommandProducesYawDemand(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)
	fixture.rcSource.SetCommand(pid.Yaw, 1000)

	// WHEN
	err := fixture.loop.Cycle(pid.Timing(2000))

	// THEN
	assert.NoError(t, err)
	demand := fixture.mix.LastDemand()
	assert.Positive(t, demand[pid.Yaw])
	assert.Zero(t, demand[pid.Roll])
	assert.Zero(t, demand[pid.Pitch])
}

func TestRateLoopDefaultController(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)

	// WHEN
	active := fixture.loop.ActiveController()

	// THEN
	assert.Equal(t, pid.ControllerMwRewrite, active)
}

func TestRateLoopSelectController(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)

	// WHEN
	err := fixture.loop.SelectController(pid.ControllerLuxFloat)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, pid.ControllerLuxFloat, fixture.loop.ActiveController())
}

func TestRateLoopSelectUnknownController(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)

	// WHEN
	err := fixture.loop.SelectController("bogus")

	// THEN
	assert.Error(t, err)
	assert.Equal(t, pid.ControllerMwRewrite, fixture.loop.ActiveController())
}

func TestRateLoopArmDisarm(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)
	assert.False(t, fixture.loop.IsArmed())

	// WHEN
	fixture.loop.Arm()

	// THEN
	assert.True(t, fixture.loop.IsArmed())

	// WHEN
	fixture.loop.Disarm()

	// THEN
	assert.False(t, fixture.loop.IsArmed())
}

func TestRateLoopBlackboxFlushOnDisarm(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)
	fixture.rcSource.SetCommand(pid.Yaw, 100)
	fixture.loop.Arm()
	for i := 0; i < 5; i++ {
		assert.NoError(t, fixture.loop.Cycle(pid.Timing(2000)))
	}

	// WHEN
	fixture.loop.Disarm()

	// THEN
	ids, err := fixture.db.ListBlackboxSessions()
	assert.NoError(t, err)
	assert.Len(t, ids, 1)

	session, err := fixture.db.LoadBlackboxSession(ids[0])
	assert.NoError(t, err)
	assert.Len(t, session.Frames, 5)
	assert.Equal(t, "mwrewrite", session.Controller)
}

func TestRateLoopNoBlackboxWithoutArming(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)
	for i := 0; i < 5; i++ {
		assert.NoError(t, fixture.loop.Cycle(pid.Timing(2000)))
	}

	// WHEN
	fixture.loop.Disarm()

	// THEN
	ids, err := fixture.db.ListBlackboxSessions()
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRateLoopSnapshot(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)
	fixture.rcSource.SetCommand(pid.Yaw, 1000)
	assert.NoError(t, fixture.loop.Cycle(pid.Timing(2000)))
	assert.NoError(t, fixture.loop.Cycle(pid.Timing(2100)))

	// WHEN
	telemetry := fixture.loop.Snapshot()

	// THEN
	assert.False(t, telemetry.Armed)
	assert.Equal(t, pid.ControllerMwRewrite, telemetry.Controller)
	assert.Equal(t, uint64(2), telemetry.CycleCount)
	assert.Equal(t, 2100, telemetry.CycleTimeUs)
	// the window is primed with the first sample, the second replaces one of
	// the 64 buckets: (63*2000 + 2100) / 64
	assert.InDelta(t, 2001.5625, telemetry.CycleTimeAvgUs, 0.001)
	assert.InDelta(t, 2100, telemetry.CycleTimeMaxUs, 0.001)
	assert.Positive(t, telemetry.Demand[pid.Yaw])
	assert.Positive(t, telemetry.Terms[pid.Yaw].P)
}

func TestRateLoopPidWeights(t *testing.T) {
	// GIVEN
	config := testLoopConfig
	config.PidWeights = configuration.AxisInts{Roll: 100, Pitch: 100, Yaw: 50}
	fixture := createLoopWithConfig(t, config)
	reference := createLoop(t)
	fixture.rcSource.SetCommand(pid.Yaw, 1000)
	reference.rcSource.SetCommand(pid.Yaw, 1000)

	// WHEN
	assert.NoError(t, fixture.loop.Cycle(pid.Timing(2000)))
	assert.NoError(t, reference.loop.Cycle(pid.Timing(2000)))

	// THEN
	// (1000 * 64 * 50 / 100) >> 7 vs (1000 * 64 * 100 / 100) >> 7
	assert.Equal(t, int32(250), fixture.loop.Snapshot().Terms[pid.Yaw].P)
	assert.Equal(t, int32(500), reference.loop.Snapshot().Terms[pid.Yaw].P)
}

func TestRateLoopUnconfiguredPidWeightsMeanFullWeight(t *testing.T) {
	// GIVEN
	weights := pid.WeightsFromConfig(configuration.AxisInts{})

	// THEN
	assert.Equal(t, [pid.AxisCount]uint8{100, 100, 100}, weights)
}

func TestRateLoopCycleTimeStatsNotCapacityDiluted(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)

	// WHEN
	assert.NoError(t, fixture.loop.Cycle(pid.Timing(2000)))

	// THEN
	// a single observed cycle must read as a 2000us average, not as
	// 2000 divided by the window capacity
	telemetry := fixture.loop.Snapshot()
	assert.InDelta(t, 2000, telemetry.CycleTimeAvgUs, 0.001)
	assert.InDelta(t, 2000, telemetry.CycleTimeMaxUs, 0.001)

	// WHEN
	assert.NoError(t, fixture.loop.Cycle(pid.Timing(2100)))

	// THEN
	telemetry = fixture.loop.Snapshot()
	assert.GreaterOrEqual(t, telemetry.CycleTimeAvgUs, 2000.0)
	assert.LessOrEqual(t, telemetry.CycleTimeAvgUs, 2100.0)
	assert.InDelta(t, 2100, telemetry.CycleTimeMaxUs, 0.001)
}

func TestRateLoopAutotuneHook(t *testing.T) {
	// GIVEN
	fixture := createLoop(t)
	var seen []pid.Axis
	fixture.loop.SetAutotuneHook(func(axis pid.Axis, terms pid.AxisTerms) {
		seen = append(seen, axis)
	})
	fixture.rcSource.SetModes(pid.ModeAutotune)
	fixture.loop.Arm()

	// WHEN
	assert.NoError(t, fixture.loop.Cycle(pid.Timing(2000)))

	// THEN
	assert.Equal(t, []pid.Axis{pid.Roll, pid.Pitch, pid.Yaw}, seen)
}
