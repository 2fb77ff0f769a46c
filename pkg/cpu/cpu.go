// Package cpu implements the CDP1802's fetch/decode/execute cycle: the
// single Step function that reads one opcode from memory, dispatches on
// its high nibble, and mutates machine state exactly as the 1802
// reference manual specifies.
package cpu

import (
	"github.com/jsalvino/emu1802/pkg/alu"
	"github.com/jsalvino/emu1802/pkg/ioport"
	"github.com/jsalvino/emu1802/pkg/machine"
	"github.com/jsalvino/emu1802/pkg/predicate"
	"github.com/jsalvino/emu1802/pkg/reg"
	"github.com/jsalvino/emu1802/pkg/tracer"
)

// Step executes exactly one instruction against s, routing OUT/INP
// through port and reporting a snapshot to sink after the instruction
// completes. halted is true only when the executed opcode was IDL.
//
// Unless an opcode documents otherwise, the register acting as the
// program counter at fetch time is incremented by one at the end of the
// instruction. SEP, RET, and DIS reassign P (and, for RET/DIS, X) outright
// and never advance any register themselves — not the register that was P
// before the switch, nor the one that becomes P after it. The next fetch
// simply reads from wherever the newly selected R(P) already points. IDL
// also leaves R(P) unchanged, and the short-branch, long-branch and
// long-skip opcodes set R(P)'s final value themselves.
func Step(s *machine.State, port ioport.Port, sink tracer.Sink) (halted bool, err error) {
	pc := s.PC()
	pcBefore := pc.Value
	opcode := s.RAM[pc.Value]
	i, n := opcode>>4, opcode&0xF
	s.I, s.N = i, n

	event := tracer.NoEvent
	advance := true

	switch i {
	case 0x0:
		if n == 0 {
			halted = true
			advance = false
			event = tracer.Halt
		} else {
			s.D = s.RAM[s.R[n].Value]
		}
	case 0x1:
		s.R[n].Incr()
	case 0x2:
		s.R[n].Decr()
	case 0x3:
		advance = false
		if predicate.Short[n](s) {
			pc.Plo(s.RAM[pc.Value+1])
		} else {
			pc.Value += 2
		}
	case 0x4:
		s.D = s.RAM[s.R[n].Value]
		s.R[n].Incr()
	case 0x5:
		s.RAM[s.R[n].Value] = s.D
	case 0x6:
		execFamily6(s, n, port, &event)
	case 0x7:
		advance = execFamily7(s, n)
	case 0x8:
		s.D = s.R[n].Glo()
	case 0x9:
		s.D = s.R[n].Ghi()
	case 0xA:
		s.R[n].Plo(s.D)
	case 0xB:
		s.R[n].Phi(s.D)
	case 0xC:
		advance = execFamilyC(s, n, pc)
	case 0xD: // SEP: P is reassigned directly, no R(P) advance at all
		s.P = n
		advance = false
	case 0xE:
		s.X = n
	case 0xF:
		execFamilyF(s, n, pc)
	}

	if advance {
		pc.Incr()
	}

	if sink != nil {
		sink.Trace(tracer.Step{
			PCBefore: pcBefore,
			Opcode:   opcode,
			I:        i,
			N:        n,
			D:        s.D,
			DF:       s.DF,
			P:        s.P,
			X:        s.X,
			T:        s.T,
			IE:       s.IE,
			Q:        s.Q,
			R:        registerValues(s),
			MRX:      s.RAM[s.RX().Value],
			Event:    event,
		})
	}
	return halted, nil
}

func registerValues(s *machine.State) [16]uint16 {
	var vals [16]uint16
	for i := range s.R {
		vals[i] = s.R[i].Value
	}
	return vals
}

// execFamily6 handles IRX, OUT, and INP (opcode family 6).
func execFamily6(s *machine.State, n uint8, port ioport.Port, event *tracer.Event) {
	switch {
	case n == 0:
		s.RX().Incr()
	case n >= 1 && n <= 7:
		if ioport.Supported(n) {
			port.Out(n, s.RAM[s.RX().Value])
		} else {
			*event = tracer.UnsupportedIO
		}
		s.RX().Incr()
	default: // 9..F
		pn := n - 8
		var v uint8
		if ioport.Supported(pn) {
			ok := true
			v, ok = port.In(pn)
			if !ok {
				v = 0
				*event = tracer.InvalidInput
			}
		} else {
			*event = tracer.UnsupportedIO
		}
		s.D = v
		s.RAM[s.RX().Value] = v
	}
}

// execFamily7 handles the register-X-indirect ALU and subroutine-linkage
// opcodes (RET, DIS, LDXA, STXD, ADC, SDB, SHRC, SMB, SAV, MARK, REQ,
// SEQ, ADCI, SDBI, SHLC, SMBI). It returns the advance flag Step should
// use: RET and DIS reassign P directly and, like SEP, never advance
// R(P) at all.
func execFamily7(s *machine.State, n uint8) bool {
	switch n {
	case 0x0, 0x1: // RET, DIS
		m := s.RAM[s.RX().Value]
		s.X = m >> 4
		s.P = m & 0xF
		s.RX().Incr()
		if n == 0x0 {
			s.IE = 1
		} else {
			s.IE = 0
		}
		return false
	case 0x2: // LDXA
		s.D = s.RAM[s.RX().Value]
		s.RX().Incr()
	case 0x3: // STXD
		s.RAM[s.RX().Value] = s.D
		s.RX().Decr()
	case 0x4: // ADC
		s.D, s.DF = alu.Add(s.RAM[s.RX().Value], s.D, s.DF)
	case 0x5: // SDB
		s.D, s.DF = alu.SubtractWithBorrow(s.RAM[s.RX().Value], s.D, s.DF)
	case 0x6: // SHRC
		s.D, s.DF = alu.ShiftRightCarry(s.D, s.DF)
	case 0x7: // SMB
		s.D, s.DF = alu.SubtractWithBorrow(s.D, s.RAM[s.RX().Value], s.DF)
	case 0x8: // SAV
		s.RAM[s.RX().Value] = s.T
	case 0x9: // MARK
		s.T = s.X<<4 | s.P
		s.RAM[s.R[2].Value] = s.T
		s.X = s.P
		s.R[2].Decr()
	case 0xA: // REQ
		s.Q = 0
	case 0xB: // SEQ
		s.Q = 1
	case 0xC: // ADCI
		s.PC().Incr()
		s.D, s.DF = alu.Add(s.RAM[s.PC().Value], s.D, s.DF)
	case 0xD: // SDBI
		s.PC().Incr()
		s.D, s.DF = alu.SubtractWithBorrow(s.RAM[s.PC().Value], s.D, s.DF)
	case 0xE: // SHLC
		s.D, s.DF = alu.ShiftLeftCarry(s.D, s.DF)
	case 0xF: // SMBI
		s.PC().Incr()
		s.D, s.DF = alu.SubtractWithBorrow(s.D, s.RAM[s.PC().Value], s.DF)
	}
	return true
}

// longBranchNibbles and longSkipNibbles classify opcode family C's N
// values; N=4 (NOP) is neither and is handled as a plain fall-through.
var longBranchNibbles = map[uint8]bool{0x0: true, 0x1: true, 0x2: true, 0x3: true, 0x9: true, 0xA: true, 0xB: true}
var longSkipNibbles = map[uint8]bool{0x5: true, 0x6: true, 0x7: true, 0x8: true, 0xC: true, 0xD: true, 0xE: true, 0xF: true}

// execFamilyC handles NOP, the long branches, and the long skips. It
// returns the advance flag Step should use: false whenever it has
// already computed R(P)'s full post-instruction value itself.
func execFamilyC(s *machine.State, n uint8, pc *reg.R) bool {
	switch {
	case n == 0x4: // NOP
		return true
	case longBranchNibbles[n]:
		if predicate.Long[n](s) {
			hi, lo := s.RAM[pc.Value+1], s.RAM[pc.Value+2]
			pc.Phi(hi)
			pc.Plo(lo)
		} else {
			pc.Value += 3
		}
		return false
	default: // longSkipNibbles
		if predicate.Long[n](s) {
			pc.Value += 3
		} else {
			pc.Value++
		}
		return false
	}
}

// execFamilyF handles the memory-indirect and immediate ALU/load
// opcodes (LDX, OR, AND, XOR, ADD, SD, SHR, SM, LDI, ORI, ANI, XRI, ADI,
// SDI, SHL, SMI). All of the N>=8 forms except SHL read their operand from
// the byte immediately following the opcode, advancing pc to it first.
func execFamilyF(s *machine.State, n uint8, pc *reg.R) {
	mrx := func() uint8 { return s.RAM[s.RX().Value] }
	immediate := func() uint8 {
		pc.Incr()
		return s.RAM[pc.Value]
	}

	switch n {
	case 0x0: // LDX
		s.D = mrx()
	case 0x1: // OR
		s.D = alu.Or(mrx(), s.D)
	case 0x2: // AND
		s.D = alu.And(mrx(), s.D)
	case 0x3: // XOR
		s.D = alu.Xor(mrx(), s.D)
	case 0x4: // ADD
		s.D, s.DF = alu.Add(mrx(), s.D, 0)
	case 0x5: // SD
		s.D, s.DF = alu.Subtract(mrx(), s.D)
	case 0x6: // SHR
		s.D, s.DF = alu.ShiftRight(s.D)
	case 0x7: // SM
		s.D, s.DF = alu.Subtract(s.D, mrx())
	case 0x8: // LDI
		s.D = immediate()
	case 0x9: // ORI
		s.D = alu.Or(immediate(), s.D)
	case 0xA: // ANI
		s.D = alu.And(immediate(), s.D)
	case 0xB: // XRI
		s.D = alu.Xor(immediate(), s.D)
	case 0xC: // ADI
		s.D, s.DF = alu.Add(immediate(), s.D, 0)
	case 0xD: // SDI
		s.D, s.DF = alu.Subtract(immediate(), s.D)
	case 0xE: // SHL
		s.D, s.DF = alu.ShiftLeft(s.D)
	case 0xF: // SMI
		s.D, s.DF = alu.Subtract(s.D, immediate())
	}
}
