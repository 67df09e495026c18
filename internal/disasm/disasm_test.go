package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x1234, "jp $234"},
		{0xB234, "jp V0, $234"},
		{0x2300, "call $300"},
		{0x3234, "se V2, $34"},
		{0x4A01, "sne VA, $01"},
		{0x5120, "se V1, V2"},
		{0x9120, "sne V1, V2"},
		{0x610A, "ld V1, $0A"},
		{0x8120, "ld V1, V2"},
		{0xA2F0, "ld I, $2F0"},
		{0x7105, "add V1, $05"},
		{0x8124, "add V1, V2"},
		{0xF31E, "add I, V3"},
		{0x8121, "or V1, V2"},
		{0x8125, "sub V1, V2"},
		{0xC3FF, "rnd V3, $FF"},
		{0xD015, "drw V0, V1, $5"},
		{0xE59E, "skp V5"},
		{0xF307, "ld V3, DT"},
		{0xF315, "ld DT, V3"},
		{0xF333, "ld B, V3"},
		{0xF355, "ld [I], V3"},
		{0xF365, "ld V3, [I]"},
		{0xF0FF, ".word $F0FF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.opcode))
		})
	}
}

func TestListing(t *testing.T) {
	var buf bytes.Buffer
	err := Listing(&buf, []byte{0x60, 0x05, 0x70, 0x0A, 0x12, 0x04, 0xAB})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "200: 60 05  ld V0, $05", lines[0])
	assert.Equal(t, "202: 70 0A  add V0, $0A", lines[1])
	assert.Equal(t, "204: 12 04  jp $204", lines[2])
	assert.Equal(t, "206: AB     .byte $AB", lines[3])
}

func TestListing_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Listing(&buf, nil))
	assert.Equal(t, "", buf.String())
}
