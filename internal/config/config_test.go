package config

import (
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}

func TestQuietLogging(t *testing.T) {
	assert.False(t, quietLogging(options.Program{Flags: options.Flags{Frontend: options.FrontendEbiten}}))
	assert.False(t, quietLogging(options.Program{Flags: options.Flags{Frontend: options.FrontendHeadless}}))
	assert.True(t, quietLogging(options.Program{Flags: options.Flags{Frontend: options.FrontendHeadless, Quiet: true}}))
	assert.True(t, quietLogging(options.Program{Flags: options.Flags{Frontend: options.FrontendTerminal}}))

	assert.NotNil(t, CreateProgramLogger(options.Program{Flags: options.Flags{Frontend: options.FrontendTerminal}}))
}

func TestCreateQuirks(t *testing.T) {
	quirks := CreateQuirks(options.Program{Flags: options.Flags{ShiftVY: true}})
	assert.True(t, quirks.ShiftVY)

	quirks = CreateQuirks(options.Program{})
	assert.False(t, quirks.ShiftVY)
}

func TestCreateMachineOptions(t *testing.T) {
	logger := log.NewTestLogger(t)

	assert.Len(t, CreateMachineOptions(logger, options.Program{}), 1)
	assert.Len(t, CreateMachineOptions(logger, options.Program{Flags: options.Flags{Seed: 7}}), 2)
}

func TestCreateRunnerConfig(t *testing.T) {
	opts := options.Program{
		Flags:   options.Flags{Frontend: options.FrontendHeadless, Cycles: 100, Trace: true},
		Display: options.Display{CyclesPerSecond: 500},
	}

	cfg := CreateRunnerConfig(opts)
	assert.Equal(t, 500, cfg.CyclesPerSecond)
	assert.Equal(t, uint64(100), cfg.MaxCycles)
	assert.True(t, cfg.Trace)
	assert.True(t, cfg.Unthrottled)
}

func TestCreatePlatform_Headless(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{Flags: options.Flags{Frontend: options.FrontendHeadless}}

	platform, err := CreatePlatform(logger, opts)
	assert.NoError(t, err)
	_, ok := platform.(*host.Headless)
	assert.True(t, ok)
	assert.NoError(t, platform.Close())
}

func TestCreatePlatform_Unsupported(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{Flags: options.Flags{Frontend: "vulkan"}}

	_, err := CreatePlatform(logger, opts)
	assert.ErrorContains(t, err, "unsupported frontend")
}

func TestCreateBeeper_Wav(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{
		Parameters: options.Parameters{WavFile: filepath.Join(t.TempDir(), "beep.wav")},
		Flags:      options.Flags{Frontend: options.FrontendHeadless},
	}

	beeper, err := CreateBeeper(logger, opts)
	assert.NoError(t, err)
	assert.Equal(t, 1, beeper.Len())

	beeper.SetBeep(true)
	assert.NoError(t, beeper.Close())
}

func TestCreateBeeper_Headless(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.Program{Flags: options.Flags{Frontend: options.FrontendHeadless}}

	beeper, err := CreateBeeper(logger, opts)
	assert.NoError(t, err)
	assert.Equal(t, 0, beeper.Len())
	assert.NoError(t, beeper.Close())
}
