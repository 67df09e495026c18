package chip8

import (
	"github.com/retroenv/retrogolib/log"
)

// execute runs a decoded instruction. The program counter already points to
// the following instruction.
func (m *Machine) execute(ins Instruction, keys Keys) {
	switch ins.Op {
	case OpCls:
		m.display = Display{}
	case OpRet:
		m.ret()
	case OpJp:
		m.pc = ins.NNN
	case OpCall:
		m.call(ins.NNN)
	case OpSeByte:
		m.skipIf(m.v[ins.X] == ins.KK)
	case OpSneByte:
		m.skipIf(m.v[ins.X] != ins.KK)
	case OpSeReg:
		m.skipIf(m.v[ins.X] == m.v[ins.Y])
	case OpLdByte:
		m.v[ins.X] = ins.KK
	case OpAddByte:
		m.v[ins.X] += ins.KK

	case OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpShr, OpSubn, OpShl:
		m.executeALU(ins)

	case OpSneReg:
		m.skipIf(m.v[ins.X] != m.v[ins.Y])
	case OpLdI:
		m.i = ins.NNN
	case OpJpV0:
		m.pc = ins.NNN + uint16(m.v[0])
	case OpRnd:
		m.v[ins.X] = byte(m.random.Uint32()) & ins.KK
	case OpDrw:
		m.draw(ins)
	case OpSkp:
		m.skipIf(keys[m.v[ins.X]&0x0F])
	case OpSknp:
		m.skipIf(!keys[m.v[ins.X]&0x0F])

	case OpLdVxDT, OpLdVxK, OpLdDTVx, OpLdSTVx, OpAddI, OpLdF, OpLdB, OpLdIVx, OpLdVxI:
		m.executeMisc(ins, keys)

	default:
		m.unknown(ins)
	}
}

// executeALU runs the 8xyN register to register operations.
func (m *Machine) executeALU(ins Instruction) {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpLdReg:
		m.v[x] = m.v[y]
	case OpOr:
		m.v[x] |= m.v[y]
	case OpAnd:
		m.v[x] &= m.v[y]
	case OpXor:
		m.v[x] ^= m.v[y]

	case OpAddReg:
		sum := uint16(m.v[x]) + uint16(m.v[y])
		m.v[flagRegister] = boolToByte(sum > 0xFF)
		m.v[x] = byte(sum)

	case OpSub:
		m.v[flagRegister] = boolToByte(m.v[x] > m.v[y])
		m.v[x] -= m.v[y]

	case OpSubn:
		m.v[flagRegister] = boolToByte(m.v[y] > m.v[x])
		m.v[x] = m.v[y] - m.v[x]

	case OpShr:
		if m.quirks.ShiftVY {
			m.v[x] = m.v[y]
		}
		m.v[flagRegister] = m.v[x] & 0x01
		m.v[x] >>= 1

	case OpShl:
		if m.quirks.ShiftVY {
			m.v[x] = m.v[y]
		}
		m.v[flagRegister] = m.v[x] >> 7
		m.v[x] <<= 1
	}
}

// executeMisc runs the Fxkk timer, keypad and memory operations.
func (m *Machine) executeMisc(ins Instruction, keys Keys) {
	x := ins.X

	switch ins.Op {
	case OpLdVxDT:
		m.v[x] = m.delayTimer

	case OpLdVxK:
		pressed := false
		for key, down := range keys {
			if down {
				m.v[x] = byte(key)
				pressed = true
			}
		}
		if !pressed {
			m.pc -= opcodeSize // execute this instruction again on the next step
		}

	case OpLdDTVx:
		m.delayTimer = m.v[x]
	case OpLdSTVx:
		m.soundTimer = m.v[x]
	case OpAddI:
		m.i += uint16(m.v[x])
	case OpLdF:
		m.i = GlyphAddress(m.v[x])

	case OpLdB:
		value := m.v[x]
		m.write(m.i, value/100)
		m.write(m.i+1, value/10%10)
		m.write(m.i+2, value%10)

	case OpLdIVx:
		for r := uint16(0); r <= uint16(x); r++ {
			m.write(m.i+r, m.v[r])
		}

	case OpLdVxI:
		for r := uint16(0); r <= uint16(x); r++ {
			m.v[r] = m.read(m.i + r)
		}
	}
}

func (m *Machine) call(address uint16) {
	if m.sp >= StackSize {
		return
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = address
}

func (m *Machine) ret() {
	if m.sp == 0 {
		return
	}
	m.sp--
	m.pc = m.stack[m.sp]
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

// draw XORs an n byte sprite read from memory at I onto the display at
// position (Vx, Vy). Pixel positions are wrapped around the whole display
// buffer. VF is set if any set pixel was erased.
func (m *Machine) draw(ins Instruction) {
	x := int(m.v[ins.X])
	y := int(m.v[ins.Y])

	var collision byte
	for row := range int(ins.N) {
		sprite := m.read(m.i + uint16(row))

		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			index := (x + col + (y+row)*DisplayWidth) % DisplaySize
			if m.display[index] == 1 {
				collision = 1
			}
			m.display[index] ^= 1
		}
	}
	m.v[flagRegister] = collision
}

func (m *Machine) unknown(ins Instruction) {
	m.unknownOpcodes++
	if m.logger == nil {
		return
	}
	m.logger.Warn("Unknown opcode",
		log.Hex("address", m.pc-opcodeSize),
		log.Hex("opcode", ins.Opcode))
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
