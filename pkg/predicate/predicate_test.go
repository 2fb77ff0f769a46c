package predicate

import (
	"testing"

	"github.com/jsalvino/emu1802/pkg/machine"
)

func TestShortBranchAlwaysAndNever(t *testing.T) {
	s := machine.New(nil)
	if !Short[0x0](s) {
		t.Error("BR (N=0) must always be true")
	}
	if Short[0x8](s) {
		t.Error("NBR (N=8) must always be false")
	}
}

func TestShortBranchComplementaryPairs(t *testing.T) {
	s := machine.New(nil)
	cases := []struct {
		name       string
		cond, comp int
		set        func(*machine.State)
	}{
		{"Q/NQ", 0x1, 0x9, func(s *machine.State) { s.Q = 1 }},
		{"Z/NZ", 0x2, 0xA, func(s *machine.State) { s.D = 0 }},
		{"DF/NF", 0x3, 0xB, func(s *machine.State) { s.DF = 1 }},
		{"1/N1", 0x4, 0xC, func(s *machine.State) { s.EF1 = 1 }},
		{"2/N2", 0x5, 0xD, func(s *machine.State) { s.EF2 = 1 }},
		{"3/N3", 0x6, 0xE, func(s *machine.State) { s.EF3 = 1 }},
		{"4/N4", 0x7, 0xF, func(s *machine.State) { s.EF4 = 1 }},
	}
	for _, c := range cases {
		s.Reset()
		c.set(s)
		if !Short[c.cond](s) {
			t.Errorf("%s: condition %X should hold after set", c.name, c.cond)
		}
		if Short[c.comp](s) {
			t.Errorf("%s: complement %X should not hold after set", c.name, c.comp)
		}
	}
}

func TestLongBranchMatchesShortForSharedConditions(t *testing.T) {
	s := machine.New(nil)
	s.Q, s.D, s.DF = 1, 0, 1
	for _, n := range []int{0x0, 0x1, 0x2, 0x3, 0x9, 0xA, 0xB} {
		if Long[n](s) != Short[n](s) {
			t.Errorf("Long[%X] and Short[%X] disagree for shared condition", n, n)
		}
	}
}

func TestLSIEReflectsInterruptEnable(t *testing.T) {
	s := machine.New(nil)
	s.IE = 1
	if !Long[0xC](s) {
		t.Error("LSIE should hold when IE=1")
	}
	s.IE = 0
	if Long[0xC](s) {
		t.Error("LSIE should not hold when IE=0")
	}
}

func TestLSKPAlwaysSkips(t *testing.T) {
	s := machine.New(nil)
	if !Long[0x8](s) {
		t.Error("LSKP (N=8) must always be true")
	}
}
