//go:build !headless

package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	lineHeight    = 16
	overlayMargin = 10
	registerWidth = 80
)

var keyMap = map[ebiten.Key]int{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyC: 0xC,
	ebiten.KeyDigit4: 0x4, ebiten.KeyDigit5: 0x5, ebiten.KeyDigit6: 0x6, ebiten.KeyD: 0xD,
	ebiten.KeyDigit7: 0x7, ebiten.KeyDigit8: 0x8, ebiten.KeyDigit9: 0x9, ebiten.KeyE: 0xE,
	ebiten.KeyA: 0xA, ebiten.KeyDigit0: 0x0, ebiten.KeyB: 0xB, ebiten.KeyF: 0xF,
}

// Window is a platform rendering to a desktop window. The ebiten game loop
// has to run on the main goroutine by calling RunMain, the emulation runner
// exchanges input and frames with it through the Platform methods.
type Window struct {
	logger *log.Logger
	config Config
	width  int
	height int
	ctx    context.Context

	mutex   sync.Mutex
	frame   host.Frame
	keys    chip8.Keys
	actions host.Actions
	color   int

	image  *ebiten.Image
	pixels []byte
	closed atomic.Bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

// New returns a window platform. The window is opened by RunMain.
func New(logger *log.Logger, cfg Config) (*Window, error) {
	if cfg.PixelSize < 1 {
		return nil, fmt.Errorf("invalid pixel size %d", cfg.PixelSize)
	}

	return &Window{
		logger: logger,
		config: cfg,
		width:  chip8.DisplayWidth * cfg.PixelSize,
		height: chip8.DisplayHeight * cfg.PixelSize,
		ctx:    context.Background(),
		pixels: make([]byte, chip8.DisplaySize*4),
	}, nil
}

// RunMain opens the window and runs the ebiten game loop until the window is
// closed or the context is canceled.
func (w *Window) RunMain(ctx context.Context) error {
	w.ctx = ctx

	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(w.config.Title)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(w)
	w.closed.Store(true)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// ShouldClose returns whether the window was closed.
func (w *Window) ShouldClose() bool {
	return w.closed.Load()
}

// ProcessInput returns the held keys and the actions since the last call.
func (w *Window) ProcessInput() (chip8.Keys, host.Actions) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	actions := w.actions
	w.actions = host.Actions{}
	return w.keys, actions
}

// Render stores the frame for the next window refresh.
func (w *Window) Render(frame host.Frame) error {
	w.mutex.Lock()
	w.frame = frame
	w.mutex.Unlock()
	return nil
}

// Close requests the game loop to terminate.
func (w *Window) Close() error {
	w.closed.Store(true)
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || w.closed.Load() || w.ctx.Err() != nil {
		w.closed.Store(true)
		return ebiten.Termination
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	for key, index := range keyMap {
		w.keys[index] = ebiten.IsKeyPressed(key)
	}

	w.actions.ToggleCycles = w.actions.ToggleCycles || inpututil.IsKeyJustPressed(ebiten.KeyF1)
	w.actions.ToggleRegisters = w.actions.ToggleRegisters || inpututil.IsKeyJustPressed(ebiten.KeyF2)
	w.actions.ToggleDisplay = w.actions.ToggleDisplay || inpututil.IsKeyJustPressed(ebiten.KeyF3)
	w.actions.IncreaseSpeed = w.actions.IncreaseSpeed || inpututil.IsKeyJustPressed(ebiten.KeyPageUp)
	w.actions.DecreaseSpeed = w.actions.DecreaseSpeed || inpututil.IsKeyJustPressed(ebiten.KeyPageDown)

	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		w.color = cyclePalette(w.color, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		w.color = cyclePalette(w.color, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		w.copyState(w.frame.Debug.State)
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}

	w.mutex.Lock()
	frame := w.frame
	pixelColor := palette[w.color]
	w.mutex.Unlock()

	screen.Fill(color.Black)

	if frame.Debug.ShowDisplay {
		fillPixels(w.pixels, &frame.Display, pixelColor)
		w.image.WritePixels(w.pixels)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(w.config.PixelSize), float64(w.config.PixelSize))
		screen.DrawImage(w.image, op)
	}

	if frame.Debug.ShowCycles {
		w.drawLines(screen, overlayMargin, cycleLines(frame.Debug))
	}
	if frame.Debug.ShowRegisters {
		w.drawLines(screen, w.width-registerWidth, registerLines(frame.Debug))
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}

func (w *Window) drawLines(screen *ebiten.Image, x int, lines []string) {
	face := basicfont.Face7x13

	width := 0
	for _, line := range lines {
		width = max(width, text.BoundString(face, line).Dx())
	}
	ebitenutil.DrawRect(screen, float64(x-4), float64(overlayMargin-4),
		float64(width+8), float64(len(lines)*lineHeight+8), color.RGBA{0, 0, 0, 180})

	for i, line := range lines {
		text.Draw(screen, line, face, x, overlayMargin+lineHeight*(i+1)-4, color.White)
	}
}

func (w *Window) copyState(state chip8.State) {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		w.logger.Warn("Clipboard not available")
		return
	}

	clipboard.Write(clipboard.FmtText, []byte(state.String()))
	w.logger.Info("Machine state copied to clipboard")
}
