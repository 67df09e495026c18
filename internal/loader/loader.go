// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyFile is returned for ROM files that do not contain any data.
var ErrEmptyFile = errors.New("ROM file is empty")

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads the program image from the given file. CHIP-8 ROMs have no
// header, the file is loaded as raw buffer. Images that are larger than the
// available program memory are returned unchanged, the machine truncates
// them on load.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w", path, err)
	}
	size := int(info.Size())
	if size == 0 {
		return nil, fmt.Errorf("loading %s: %w", path, ErrEmptyFile)
	}

	cart, err := cartridge.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM image: %w", err)
	}

	// the buffer is padded to a full PRG bank
	data := cart.PRG[:min(size, len(cart.PRG))]

	if len(data) > chip8.MaxProgramSize {
		l.logger.Warn("ROM is larger than program memory, excess data will be ignored",
			log.String("file", path),
			log.Int("size", len(data)),
			log.Int("max_size", chip8.MaxProgramSize))
	}

	l.logger.Debug("Loaded ROM", log.String("file", path), log.Int("size", len(data)))
	return data, nil
}
