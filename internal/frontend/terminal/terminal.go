// Package terminal implements a frontend that renders to an ANSI terminal
// and reads the keypad from raw terminal input.
//
// Terminals only report key presses, a pressed key is therefore held for a
// few frames. Keys 0-9 and A-F map to the keypad, Esc or Ctrl+C quits, F1-F3
// toggle the overlays and PageUp/PageDown change the speed.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	// holdFrames is the number of frames a key stays pressed after its byte
	// was received.
	holdFrames = 6

	// rows of text needed to show the display with half block characters.
	displayRows = chip8.DisplayHeight / 2

	keyEscape = 0x1B
	keyCtrlC  = 0x03
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	clearLine   = "\x1b[K"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// ErrNotTerminal is returned when the input is not connected to a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// Terminal is a platform using the terminal for input and output.
type Terminal struct {
	logger *log.Logger
	out    io.Writer

	fd       int
	oldState *term.State

	mutex   sync.Mutex
	hold    [chip8.KeyCount]int
	actions host.Actions
	closed  atomic.Bool
}

// New switches the given terminal into raw mode and starts reading key
// presses from it.
func New(logger *log.Logger, in *os.File, out io.Writer) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	width, height, err := term.GetSize(fd)
	if err == nil && (width < chip8.DisplayWidth || height < displayRows+1) {
		logger.Warn("Terminal is smaller than the display",
			log.Int("width", width),
			log.Int("height", height),
			log.Int("required_width", chip8.DisplayWidth),
			log.Int("required_height", displayRows+1))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	t := newTerminal(logger, out)
	t.fd = fd
	t.oldState = oldState

	if _, err := io.WriteString(out, hideCursor+clearScreen); err != nil {
		_ = term.Restore(fd, oldState)
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	go t.readInput(in)
	return t, nil
}

func newTerminal(logger *log.Logger, out io.Writer) *Terminal {
	return &Terminal{
		logger: logger,
		out:    out,
	}
}

// readInput processes the input until it fails. A blocked read can not be
// interrupted, the goroutine ends with the process.
func (t *Terminal) readInput(in io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			t.handleInput(buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.logger.Error("Reading terminal input failed", log.Err(err))
			}
			t.closed.Store(true)
			return
		}
	}
}

// handleInput decodes a chunk of raw terminal input.
func (t *Terminal) handleInput(data []byte) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for i := 0; i < len(data); i++ {
		b := data[i]

		switch {
		case b == keyCtrlC:
			t.closed.Store(true)

		case b == keyEscape:
			consumed, ok := t.handleEscape(data[i+1:])
			if !ok {
				t.closed.Store(true)
			}
			i += consumed

		default:
			if key, ok := hexKey(b); ok {
				t.hold[key] = holdFrames
			}
		}
	}
}

// handleEscape decodes the escape sequences of the function keys. It returns
// the number of consumed bytes following the escape byte and false for a
// single escape key press.
func (t *Terminal) handleEscape(data []byte) (int, bool) {
	switch {
	case len(data) >= 2 && data[0] == 'O':
		switch data[1] {
		case 'P':
			t.actions.ToggleCycles = true
		case 'Q':
			t.actions.ToggleRegisters = true
		case 'R':
			t.actions.ToggleDisplay = true
		}
		return 2, true

	case len(data) >= 3 && data[0] == '[' && data[2] == '~':
		switch data[1] {
		case '5':
			t.actions.IncreaseSpeed = true
		case '6':
			t.actions.DecreaseSpeed = true
		}
		return 3, true

	case len(data) >= 1 && (data[0] == '[' || data[0] == 'O'):
		// unsupported sequence, skip its final byte
		for i, b := range data[1:] {
			if b >= 0x40 && b <= 0x7E {
				return i + 2, true
			}
		}
		return len(data), true

	default:
		return 0, false
	}
}

func hexKey(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// ShouldClose returns whether Esc or Ctrl+C was pressed.
func (t *Terminal) ShouldClose() bool {
	return t.closed.Load()
}

// ProcessInput returns the held keys and the actions since the last call.
func (t *Terminal) ProcessInput() (chip8.Keys, host.Actions) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	var keys chip8.Keys
	for key, frames := range t.hold {
		if frames > 0 {
			keys[key] = true
			t.hold[key]--
		}
	}

	actions := t.actions
	t.actions = host.Actions{}
	return keys, actions
}

// Render draws the frame using half block characters, each text row shows
// two display rows.
func (t *Terminal) Render(frame host.Frame) error {
	if _, err := io.WriteString(t.out, renderFrame(frame)); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	t.closed.Store(true)
	if t.oldState == nil {
		return nil
	}

	_, _ = io.WriteString(t.out, showCursor+"\r\n")
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

func renderFrame(frame host.Frame) string {
	var b strings.Builder
	b.WriteString(cursorHome)

	for row := range displayRows {
		for x := range chip8.DisplayWidth {
			var top, bottom byte
			if frame.Debug.ShowDisplay {
				top = frame.Display.Pixel(x, row*2)
				bottom = frame.Display.Pixel(x, row*2+1)
			}
			b.WriteString(halfBlock(top, bottom))
		}
		b.WriteString(clearLine + "\r\n")
	}

	debug := frame.Debug
	if debug.ShowCycles {
		fmt.Fprintf(&b, "Cycles per second: %d (target %d)  Total cycles: %d%s\r\n",
			debug.CyclesPerSecond, debug.TargetCyclesPerSecond, debug.TotalCycles, clearLine)
	}
	if debug.ShowRegisters {
		state := strings.TrimSuffix(debug.State.String(), "\n")
		b.WriteString(strings.ReplaceAll(state, "\n", clearLine+"\r\n"))
		b.WriteString(clearLine + "\r\n")
	}
	b.WriteString("\x1b[J")
	return b.String()
}

func halfBlock(top, bottom byte) string {
	switch {
	case top != 0 && bottom != 0:
		return "█"
	case top != 0:
		return "▀"
	case bottom != 0:
		return "▄"
	default:
		return " "
	}
}

// Bell rings the terminal bell when the buzzer turns on.
type Bell struct {
	out io.Writer
	on  bool
}

// NewBell returns a beeper writing the bell character to the given output.
func NewBell(out io.Writer) *Bell {
	return &Bell{
		out: out,
	}
}

// SetBeep rings the bell on the rising edge of the buzzer state.
func (b *Bell) SetBeep(on bool) {
	if on && !b.on {
		_, _ = io.WriteString(b.out, "\a")
	}
	b.on = on
}

// Close does nothing.
func (b *Bell) Close() error {
	return nil
}
