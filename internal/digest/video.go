// Package digest fingerprints the video output of a machine. The digest of
// each frame is chained with the digest of the previous frame, so the final
// hash identifies the complete sequence of rendered frames.
package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Video computes a chained SHA-1 digest over rendered displays.
type Video struct {
	digest [sha1.Size]byte
	pixels []byte // previous digest followed by the display of the frame
	frames int
}

// NewVideo returns an empty video digest.
func NewVideo() *Video {
	return &Video{
		pixels: make([]byte, sha1.Size+chip8.DisplaySize),
	}
}

// AddFrame chains the given display into the digest.
func (v *Video) AddFrame(display *chip8.Display) {
	copy(v.pixels, v.digest[:])
	copy(v.pixels[sha1.Size:], display[:])
	v.digest = sha1.Sum(v.pixels)
	v.frames++
}

// Hash returns the current digest as hex string.
func (v *Video) Hash() string {
	return fmt.Sprintf("%x", v.digest)
}

// Frames returns the number of frames added since the last reset.
func (v *Video) Frames() int {
	return v.frames
}

// Reset clears the digest.
func (v *Video) Reset() {
	v.digest = [sha1.Size]byte{}
	v.frames = 0
}
