package chip8

import "fmt"

// Op identifies a decoded CHIP-8 operation.
type Op uint8

// All operations of the base CHIP-8 instruction set.
const (
	OpUnknown Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1nnn
	OpCall       // 2nnn
	OpSeByte     // 3xkk
	OpSneByte    // 4xkk
	OpSeReg      // 5xy0
	OpLdByte     // 6xkk
	OpAddByte    // 7xkk
	OpLdReg      // 8xy0
	OpOr         // 8xy1
	OpAnd        // 8xy2
	OpXor        // 8xy3
	OpAddReg     // 8xy4
	OpSub        // 8xy5
	OpShr        // 8xy6
	OpSubn       // 8xy7
	OpShl        // 8xyE
	OpSneReg     // 9xy0
	OpLdI        // Annn
	OpJpV0       // Bnnn
	OpRnd        // Cxkk
	OpDrw        // Dxyn
	OpSkp        // Ex9E
	OpSknp       // ExA1
	OpLdVxDT     // Fx07
	OpLdVxK      // Fx0A
	OpLdDTVx     // Fx15
	OpLdSTVx     // Fx18
	OpAddI       // Fx1E
	OpLdF        // Fx29
	OpLdB        // Fx33
	OpLdIVx      // Fx55
	OpLdVxI      // Fx65
)

var opNames = [...]string{
	OpUnknown: "unknown",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP addr",
	OpCall:    "CALL addr",
	OpSeByte:  "SE Vx, byte",
	OpSneByte: "SNE Vx, byte",
	OpSeReg:   "SE Vx, Vy",
	OpLdByte:  "LD Vx, byte",
	OpAddByte: "ADD Vx, byte",
	OpLdReg:   "LD Vx, Vy",
	OpOr:      "OR Vx, Vy",
	OpAnd:     "AND Vx, Vy",
	OpXor:     "XOR Vx, Vy",
	OpAddReg:  "ADD Vx, Vy",
	OpSub:     "SUB Vx, Vy",
	OpShr:     "SHR Vx, Vy",
	OpSubn:    "SUBN Vx, Vy",
	OpShl:     "SHL Vx, Vy",
	OpSneReg:  "SNE Vx, Vy",
	OpLdI:     "LD I, addr",
	OpJpV0:    "JP V0, addr",
	OpRnd:     "RND Vx, byte",
	OpDrw:     "DRW Vx, Vy, n",
	OpSkp:     "SKP Vx",
	OpSknp:    "SKNP Vx",
	OpLdVxDT:  "LD Vx, DT",
	OpLdVxK:   "LD Vx, K",
	OpLdDTVx:  "LD DT, Vx",
	OpLdSTVx:  "LD ST, Vx",
	OpAddI:    "ADD I, Vx",
	OpLdF:     "LD F, Vx",
	OpLdB:     "LD B, Vx",
	OpLdIVx:   "LD [I], Vx",
	OpLdVxI:   "LD Vx, [I]",
}

// String returns the operation in its assembly syntax form.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// Instruction is a decoded 16-bit instruction word.
type Instruction struct {
	Op     Op
	Opcode uint16 // raw instruction word

	NNN uint16 // lowest 12 bits
	KK  uint8  // lowest 8 bits
	X   uint8  // second nibble
	Y   uint8  // third nibble
	N   uint8  // lowest nibble
}

// Decode splits an instruction word into its operand fields and identifies
// the operation. Words that do not match any known pattern decode to
// OpUnknown with all operand fields still set.
func Decode(opcode uint16) Instruction {
	ins := Instruction{
		Opcode: opcode,
		NNN:    opcode & 0x0FFF,
		KK:     uint8(opcode),
		X:      uint8(opcode>>8) & 0x0F,
		Y:      uint8(opcode>>4) & 0x0F,
		N:      uint8(opcode) & 0x0F,
	}
	ins.Op = decodeOp(opcode, ins)
	return ins
}

func decodeOp(opcode uint16, ins Instruction) Op {
	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeByte
	case 0x4:
		return OpSneByte
	case 0x5:
		return OpSeReg
	case 0x6:
		return OpLdByte
	case 0x7:
		return OpAddByte
	case 0x8:
		return decodeALU(ins.N)
	case 0x9:
		return OpSneReg
	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpV0
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw
	case 0xE:
		switch ins.KK {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF:
		return decodeMisc(ins.KK)
	}
	return OpUnknown
}

func decodeALU(n uint8) Op {
	switch n {
	case 0x0:
		return OpLdReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	default:
		return OpUnknown
	}
}

func decodeMisc(kk uint8) Op {
	switch kk {
	case 0x07:
		return OpLdVxDT
	case 0x0A:
		return OpLdVxK
	case 0x15:
		return OpLdDTVx
	case 0x18:
		return OpLdSTVx
	case 0x1E:
		return OpAddI
	case 0x29:
		return OpLdF
	case 0x33:
		return OpLdB
	case 0x55:
		return OpLdIVx
	case 0x65:
		return OpLdVxI
	default:
		return OpUnknown
	}
}
