package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/acroloop/acroloop/internal/configuration"
	"github.com/acroloop/acroloop/internal/imu"
	"github.com/acroloop/acroloop/internal/mixer"
	"github.com/acroloop/acroloop/internal/persistence"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/rc"
	"github.com/acroloop/acroloop/internal/ui"
	"github.com/acroloop/acroloop/internal/util"
	"github.com/asecurityteam/rolling"
	"github.com/oklog/run"
)

const cycleTimeWindowSize = 64

// upper bound on buffered blackbox frames per armed period, about two
// minutes at a 500 Hz loop
const maxBlackboxFrames = 60000

// Telemetry is a consistent snapshot of the loop state, taken between cycles.
type Telemetry struct {
	Armed      bool
	Controller pid.ControllerType

	// measured duration of the last cycle in microseconds
	CycleTimeUs int
	// average cycle time over the rolling window in microseconds
	CycleTimeAvgUs float64
	// worst cycle time over the rolling window in microseconds
	CycleTimeMaxUs float64
	CycleCount     uint64

	// smoothed gyro rate per axis in deg/s
	GyroRateAvg [pid.AxisCount]float64
	Attitude    [pid.AxisCount]int

	Terms  [pid.AxisCount]pid.AxisTerms
	Demand [pid.AxisCount]int32
}

// RateLoop drives the control cycle: read sensors and pilot input, run the
// active control law, hand the demands to the mixer.
type RateLoop interface {
	Run(ctx context.Context) error
	// Cycle executes exactly one control cycle with the given measured
	// cycle time
	Cycle(timing pid.CycleTiming) error

	Arm()
	Disarm()
	IsArmed() bool
	SelectController(controllerType pid.ControllerType) error
	ActiveController() pid.ControllerType
	SetProfile(profile *pid.TuningProfile)
	SetAutotuneHook(hook pid.AutotuneFunc)

	Snapshot() Telemetry
}

type rateLoop struct {
	// serializes cycle execution with arm/disarm/select/profile changes
	mu sync.Mutex

	config      configuration.LoopConfig
	persistence persistence.Persistence

	imuSource imu.Source
	rcSource  rc.Source
	mix       mixer.Mixer

	selector *pid.Selector
	profile  *pid.TuningProfile
	rates    pid.RateConfig
	weights  [pid.AxisCount]uint8

	armed      bool
	cycleCount uint64
	lastOutput pid.Output
	attitude   [pid.AxisCount]int

	cycleTimeUs     int
	cycleTimeWindow *rolling.PointPolicy
	gyroWindows     [pid.AxisCount]*rolling.PointPolicy
	gyroWindowSize  int
	// the rolling windows average over their full capacity, so they are
	// filled with the first sample before regular appending starts
	windowsPrimed bool

	blackboxStart  time.Time
	blackboxFrames []persistence.BlackboxFrame
}

func NewRateLoop(
	config configuration.LoopConfig,
	p persistence.Persistence,
	imuSource imu.Source,
	rcSource rc.Source,
	mix mixer.Mixer,
	profile *pid.TuningProfile,
	rates pid.RateConfig,
) RateLoop {
	gyroWindowSize := config.GyroWindowSize
	if gyroWindowSize <= 0 {
		gyroWindowSize = 1
	}

	loop := &rateLoop{
		config:          config,
		persistence:     p,
		imuSource:       imuSource,
		rcSource:        rcSource,
		mix:             mix,
		selector:        pid.NewSelector(),
		profile:         profile,
		rates:           rates,
		weights:         pid.WeightsFromConfig(config.PidWeights),
		cycleTimeWindow: util.CreateRollingWindow(cycleTimeWindowSize),
		gyroWindowSize:  gyroWindowSize,
	}
	for _, axis := range pid.Axes {
		loop.gyroWindows[axis] = util.CreateRollingWindow(gyroWindowSize)
	}

	if err := loop.selector.Select(pid.ControllerType(config.Controller)); err != nil {
		ui.Warning("Unknown controller '%s', falling back to %s", config.Controller, loop.selector.ActiveType())
	}

	return loop
}

func (l *rateLoop) Run(ctx context.Context) error {
	if l.config.FrequencyHz <= 0 {
		return fmt.Errorf("invalid loop frequency: %d", l.config.FrequencyHz)
	}
	period := time.Second / time.Duration(l.config.FrequencyHz)

	ui.Info("Starting rate loop at %d Hz (controller: %s)", l.config.FrequencyHz, l.ActiveController())

	var g run.Group
	{
		g.Add(func() error {
			tick := time.Tick(period)
			lastCycle := time.Now()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-tick:
					now := time.Now()
					timing := pid.Timing(int(now.Sub(lastCycle).Microseconds()))
					lastCycle = now

					err := l.Cycle(timing)
					if err != nil {
						ui.Error("Error in rate loop cycle: %v", err)
					}
				}
			}
		}, func(err error) {
			if err != nil {
				ui.Warning("Rate loop stopped: %v", err)
			}
		})
	}

	err := g.Run()

	// make sure a flight log is not lost on shutdown
	l.Disarm()
	return err
}

func (l *rateLoop) Cycle(timing pid.CycleTiming) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sample, err := l.imuSource.Read()
	if err != nil {
		return fmt.Errorf("imu read: %w", err)
	}
	frame, err := l.rcSource.Read()
	if err != nil {
		return fmt.Errorf("rc read: %w", err)
	}

	in := &pid.CycleInput{
		Profile:        l.profile,
		Rates:          l.rates,
		MaxInclination: l.config.MaxInclination,
		StickCenter:    l.config.StickCenter,
		Modes:          frame.Modes,
		Armed:          l.armed,
		Command:        frame.Command,
		Stick:          frame.Stick,
		GyroRaw:        sample.GyroRaw,
		GyroRate:       sample.GyroRate,
		Attitude:       sample.Attitude,
		Weights:        l.weights,
		Timing:         timing,
	}

	output := l.selector.Compute(in)

	if err := l.mix.Apply(output.Demand); err != nil {
		return fmt.Errorf("mixer apply: %w", err)
	}

	l.lastOutput = output
	l.attitude = sample.Attitude
	l.cycleCount++
	l.cycleTimeUs = timing.CycleTimeUs
	if !l.windowsPrimed {
		util.FillWindow(l.cycleTimeWindow, cycleTimeWindowSize, float64(timing.CycleTimeUs))
		for _, axis := range pid.Axes {
			util.FillWindow(l.gyroWindows[axis], l.gyroWindowSize, sample.GyroRate[axis])
		}
		l.windowsPrimed = true
	} else {
		l.cycleTimeWindow.Append(float64(timing.CycleTimeUs))
		for _, axis := range pid.Axes {
			l.gyroWindows[axis].Append(sample.GyroRate[axis])
		}
	}

	if l.armed && len(l.blackboxFrames) < maxBlackboxFrames {
		l.blackboxFrames = append(l.blackboxFrames, persistence.BlackboxFrame{
			TimeUs:   time.Since(l.blackboxStart).Microseconds(),
			Command:  frame.Command,
			GyroRaw:  sample.GyroRaw,
			Attitude: sample.Attitude,
			Terms:    output.Terms,
			Demand:   output.Demand,
		})
	}

	return nil
}

// Arm resets all controller state and starts a fresh flight log.
func (l *rateLoop) Arm() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.armed {
		return
	}
	l.armed = true
	l.selector.Reset()
	l.blackboxStart = time.Now()
	l.blackboxFrames = l.blackboxFrames[:0]
	ui.Info("Armed")
}

// Disarm resets all controller state and flushes the flight log of the
// armed period, if any.
func (l *rateLoop) Disarm() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.armed {
		return
	}
	l.armed = false
	l.selector.Reset()
	l.flushBlackbox()
	ui.Info("Disarmed")
}

func (l *rateLoop) IsArmed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.armed
}

// SelectController switches the active control law between cycles. Both laws
// keep their state across the switch.
func (l *rateLoop) SelectController(controllerType pid.ControllerType) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selector.Select(controllerType)
}

func (l *rateLoop) ActiveController() pid.ControllerType {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selector.ActiveType()
}

func (l *rateLoop) SetProfile(profile *pid.TuningProfile) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.profile = profile
}

func (l *rateLoop) SetAutotuneHook(hook pid.AutotuneFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selector.SetAutotuneHook(hook)
}

func (l *rateLoop) Snapshot() Telemetry {
	l.mu.Lock()
	defer l.mu.Unlock()

	telemetry := Telemetry{
		Armed:          l.armed,
		Controller:     l.selector.ActiveType(),
		CycleTimeUs:    l.cycleTimeUs,
		CycleTimeAvgUs: util.GetWindowAvg(l.cycleTimeWindow),
		CycleTimeMaxUs: util.GetWindowMax(l.cycleTimeWindow),
		CycleCount:     l.cycleCount,
		Attitude:       l.attitude,
		Terms:          l.lastOutput.Terms,
		Demand:         l.lastOutput.Demand,
	}
	for _, axis := range pid.Axes {
		telemetry.GyroRateAvg[axis] = util.GetWindowAvg(l.gyroWindows[axis])
	}
	return telemetry
}

func (l *rateLoop) flushBlackbox() {
	if len(l.blackboxFrames) == 0 || l.persistence == nil {
		return
	}

	session := persistence.BlackboxSession{
		ID:         l.blackboxStart.UTC().Format(time.RFC3339Nano),
		StartedAt:  l.blackboxStart.UTC(),
		Controller: string(l.selector.ActiveType()),
		Frames:     l.blackboxFrames,
	}
	if err := l.persistence.SaveBlackboxSession(session); err != nil {
		ui.Error("Unable to save blackbox session %s: %v", session.ID, err)
		return
	}
	ui.Info("Saved blackbox session %s (%d frames)", session.ID, len(session.Frames))
	l.blackboxFrames = nil
}
