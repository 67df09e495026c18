// Package disasm formats CHIP-8 instruction words as assembly text.
// It is used for execution traces and for printing ROM listings.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookup returns the instruction definition matching the given word from
// the CHIP-8 opcode table, or nil if the word is not a valid instruction.
func lookup(opcode uint16) *cpu.Instruction {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range cpu.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Format returns the assembly text for an instruction word, for example
// "jp $234" or "drw V0, V1, $5". Words that are not valid instructions are
// returned as a data directive.
func Format(opcode uint16) string {
	ins := lookup(opcode)
	if ins == nil || chip8.Decode(opcode).Op == chip8.OpUnknown {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	if params := formatInstruction(ins.Name, opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// Listing writes a linear listing of a program image, starting at the
// program load address. Every line contains the address, the raw bytes and
// the assembly text.
func Listing(w io.Writer, data []byte) error {
	address := uint16(chip8.ProgramStart)

	for offset := 0; offset < len(data); offset += 2 {
		if offset+1 >= len(data) {
			if _, err := fmt.Fprintf(w, "%03X: %02X     .byte $%02X\n", address, data[offset], data[offset]); err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			break
		}

		opcode := uint16(data[offset])<<8 | uint16(data[offset+1])
		if _, err := fmt.Fprintf(w, "%03X: %02X %02X  %s\n", address, data[offset], data[offset+1], Format(opcode)); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		address += 2
	}
	return nil
}
