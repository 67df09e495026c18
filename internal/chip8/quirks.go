package chip8

// Quirks selects between legacy behavior variants of the instruction set.
// The quirks of a machine are fixed at construction time.
type Quirks struct {
	// ShiftVY makes 8xy6 and 8xyE copy Vy into Vx before shifting, as the
	// original COSMAC VIP interpreter did. When disabled, Vx is shifted in place.
	ShiftVY bool
}
