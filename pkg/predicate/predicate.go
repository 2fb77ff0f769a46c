// Package predicate holds the CDP1802's branch/skip condition tables:
// a fixed dispatch table of closures over machine state, never runtime
// string evaluation — each entry is pure and takes only the state it
// needs to decide.
package predicate

import "github.com/jsalvino/emu1802/pkg/machine"

// Func evaluates a single branch/skip condition against machine state.
type Func func(s *machine.State) bool

// Short is the 16-entry short-branch (I=3) predicate table, indexed by N.
var Short = [16]Func{
	0x0: func(s *machine.State) bool { return true },       // BR
	0x1: func(s *machine.State) bool { return s.Q == 1 },    // BQ
	0x2: func(s *machine.State) bool { return s.D == 0 },    // BZ
	0x3: func(s *machine.State) bool { return s.DF == 1 },   // BDF
	0x4: func(s *machine.State) bool { return s.EF1 == 1 },  // B1
	0x5: func(s *machine.State) bool { return s.EF2 == 1 },  // B2
	0x6: func(s *machine.State) bool { return s.EF3 == 1 },  // B3
	0x7: func(s *machine.State) bool { return s.EF4 == 1 },  // B4
	0x8: func(s *machine.State) bool { return false },       // SKP / NBR
	0x9: func(s *machine.State) bool { return s.Q == 0 },    // BNQ
	0xA: func(s *machine.State) bool { return s.D != 0 },    // BNZ
	0xB: func(s *machine.State) bool { return s.DF == 0 },   // BNF
	0xC: func(s *machine.State) bool { return s.EF1 == 0 },  // BN1
	0xD: func(s *machine.State) bool { return s.EF2 == 0 },  // BN2
	0xE: func(s *machine.State) bool { return s.EF3 == 0 },  // BN3
	0xF: func(s *machine.State) bool { return s.EF4 == 0 },  // BN4
}

// Long is the 16-entry long-branch/skip (I=C) predicate table, indexed
// by N. Entry 4 (NOP) evaluates true but pkg/cpu never consults it: NOP
// is handled structurally and never branches. Entry 8 (LSKP) is always
// true, so LSKP always skips.
var Long = [16]Func{
	0x0: func(s *machine.State) bool { return true },       // LBR
	0x1: func(s *machine.State) bool { return s.Q == 1 },    // LBQ
	0x2: func(s *machine.State) bool { return s.D == 0 },    // LBZ
	0x3: func(s *machine.State) bool { return s.DF == 1 },   // LBDF
	0x4: func(s *machine.State) bool { return true },        // NOP (unused by dispatch)
	0x5: func(s *machine.State) bool { return s.Q == 0 },    // LSNQ
	0x6: func(s *machine.State) bool { return s.D != 0 },    // LSNZ
	0x7: func(s *machine.State) bool { return s.DF == 0 },   // LSNF
	0x8: func(s *machine.State) bool { return true },        // LSKP
	0x9: func(s *machine.State) bool { return s.Q == 0 },    // LBNQ
	0xA: func(s *machine.State) bool { return s.D != 0 },    // LBNZ
	0xB: func(s *machine.State) bool { return s.DF == 0 },   // LBNF
	0xC: func(s *machine.State) bool { return s.IE == 1 },   // LSIE
	0xD: func(s *machine.State) bool { return s.Q == 1 },    // LSQ
	0xE: func(s *machine.State) bool { return s.D == 0 },    // LSZ
	0xF: func(s *machine.State) bool { return s.DF == 1 },   // LSDF
}
