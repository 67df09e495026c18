package host

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

const (
	// FrameRate is the rate the timers are decremented and frames are
	// presented at.
	FrameRate = 60

	// SpeedStep is the cycles per second change of a single speed action.
	SpeedStep = 100

	// MinCyclesPerSecond is the lowest speed the speed actions can select.
	MinCyclesPerSecond = 100
)

// Config contains the settings of the frame loop.
type Config struct {
	CyclesPerSecond int
	MaxCycles       uint64 // stop after this many cycles, 0 runs until the platform closes
	Trace           bool   // log every executed instruction at debug level
	Unthrottled     bool   // do not wait for the next frame, used for headless runs
}

// Option configures optional parts of a Runner.
type Option func(*Runner)

// WithBeeper sets the output that receives the buzzer state.
func WithBeeper(beeper Beeper) Option {
	return func(r *Runner) {
		r.beeper = beeper
	}
}

// WithFrameSink sets a receiver for every rendered display.
func WithFrameSink(sink FrameSink) Option {
	return func(r *Runner) {
		r.sink = sink
	}
}

// Runner multiplexes the instruction cycles of a machine onto 60 Hz frames.
// Each frame it reads the input, executes the cycles that are due at the
// configured speed, decrements the timers once, renders and updates the
// buzzer.
type Runner struct {
	logger   *log.Logger
	machine  *chip8.Machine
	platform Platform
	beeper   Beeper
	sink     FrameSink
	config   Config

	cyclesPerSecond int
	budget          int // cycles owed in units of 1/FrameRate

	showCycles    bool
	showRegisters bool
	showDisplay   bool

	totalCycles    uint64
	frames         uint64
	secondCycles   uint64 // cycles executed in the current emulated second
	measuredCycles uint64
}

// New returns a runner for the given machine and platform.
func New(logger *log.Logger, machine *chip8.Machine, platform Platform, cfg Config, options ...Option) *Runner {
	r := &Runner{
		logger:          logger,
		machine:         machine,
		platform:        platform,
		config:          cfg,
		cyclesPerSecond: max(cfg.CyclesPerSecond, 1),
		showDisplay:     true,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run executes frames until the platform requests to close, the cycle limit
// is reached or the context is canceled. It returns the context error on
// cancellation.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		running, err := r.RunFrame()
		if err != nil {
			return err
		}
		if !running {
			r.logger.Debug("Emulation stopped",
				log.Int("cycles", int(r.totalCycles)),
				log.Int("frames", int(r.frames)))
			return nil
		}

		if r.config.Unthrottled {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("running emulation: %w", err)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("running emulation: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// RunFrame executes a single frame. It returns false once the emulation
// should stop.
func (r *Runner) RunFrame() (bool, error) {
	if r.platform.ShouldClose() {
		return false, nil
	}

	keys, actions := r.platform.ProcessInput()
	r.applyActions(actions)

	r.budget += r.cyclesPerSecond
	cycles := r.budget / FrameRate
	r.budget %= FrameRate

	for range cycles {
		if r.cycleLimitReached() {
			break
		}
		r.step(keys)
	}

	r.machine.TickTimers()
	r.frames++
	if r.frames%FrameRate == 0 {
		r.measuredCycles = r.secondCycles
		r.secondCycles = 0
	}

	frame := Frame{
		Display: r.machine.Display(),
		Debug:   r.DebugInfo(),
	}
	if r.sink != nil {
		r.sink.AddFrame(&frame.Display)
	}
	if err := r.platform.Render(frame); err != nil {
		return false, fmt.Errorf("rendering frame: %w", err)
	}

	if r.beeper != nil {
		r.beeper.SetBeep(r.machine.Sound())
	}

	return !r.cycleLimitReached(), nil
}

func (r *Runner) cycleLimitReached() bool {
	return r.config.MaxCycles > 0 && r.totalCycles >= r.config.MaxCycles
}

func (r *Runner) step(keys chip8.Keys) {
	if r.config.Trace {
		pc := r.machine.PC()
		opcode := r.machine.Opcode()
		r.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.String("instruction", disasm.Format(opcode)))
	}

	r.machine.Step(keys)
	r.totalCycles++
	r.secondCycles++
}

func (r *Runner) applyActions(actions Actions) {
	if actions.ToggleCycles {
		r.showCycles = !r.showCycles
	}
	if actions.ToggleRegisters {
		r.showRegisters = !r.showRegisters
	}
	if actions.ToggleDisplay {
		r.showDisplay = !r.showDisplay
	}

	speed := r.cyclesPerSecond
	if actions.IncreaseSpeed {
		speed += SpeedStep
	}
	if actions.DecreaseSpeed && speed > MinCyclesPerSecond {
		speed = max(speed-SpeedStep, MinCyclesPerSecond)
	}
	if speed != r.cyclesPerSecond {
		r.cyclesPerSecond = speed
		r.logger.Info("Speed changed", log.Int("cycles_per_second", speed))
	}
}

// CyclesPerSecond returns the current target speed.
func (r *Runner) CyclesPerSecond() int {
	return r.cyclesPerSecond
}

// TotalCycles returns the number of executed instruction cycles.
func (r *Runner) TotalCycles() uint64 {
	return r.totalCycles
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// DebugInfo returns the current statistics and overlay settings.
func (r *Runner) DebugInfo() DebugInfo {
	return DebugInfo{
		ShowCycles:            r.showCycles,
		ShowRegisters:         r.showRegisters,
		ShowDisplay:           r.showDisplay,
		TargetCyclesPerSecond: r.cyclesPerSecond,
		CyclesPerSecond:       r.measuredCycles,
		TotalCycles:           r.totalCycles,
		Frames:                r.frames,
		State:                 r.machine.State(),
	}
}
