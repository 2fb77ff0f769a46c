// Package machine holds the CDP1802's architectural state: the sixteen
// R registers, D/DF, the I/N/P/X pointers, T, IE, Q, the four external
// flags, and the 64 KiB RAM. ALU primitives in pkg/alu borrow bytes from
// it but never retain a reference; pkg/cpu is the only package that
// mutates it.
package machine

import "github.com/jsalvino/emu1802/pkg/reg"

// RAMSize is the CDP1802's address space: 64 KiB, byte-addressable.
const RAMSize = 65536

// State is the full architectural state of one CDP1802.
type State struct {
	R   [16]reg.R
	D   uint8
	DF  uint8
	I   uint8
	N   uint8
	P   uint8
	X   uint8
	T   uint8
	IE  uint8
	Q   uint8
	EF1 uint8
	EF2 uint8
	EF3 uint8
	EF4 uint8

	RAM [RAMSize]byte
}

// New builds a machine at reset state with the given memory image loaded
// at address 0. Images longer than RAMSize are truncated; shorter images
// leave the remainder zeroed. IE resets to 1, matching the real 1802's
// power-up value.
func New(image []byte) *State {
	s := &State{IE: 1}
	s.LoadImage(image)
	return s
}

// LoadImage copies image into RAM starting at address 0, zeroing the
// remainder, without resetting registers or flags.
func (s *State) LoadImage(image []byte) {
	n := copy(s.RAM[:], image)
	clear(s.RAM[n:])
}

// Reset returns every register and flag to its power-up value without
// touching RAM.
func (s *State) Reset() {
	for i := range s.R {
		s.R[i].Zero()
	}
	s.D, s.DF = 0, 0
	s.I, s.N = 0, 0
	s.P, s.X = 0, 0
	s.T = 0
	s.IE = 1
	s.Q = 0
	s.EF1, s.EF2, s.EF3, s.EF4 = 0, 0, 0, 0
}

// PC returns the register currently acting as the program counter.
func (s *State) PC() *reg.R {
	return &s.R[s.P]
}

// RX returns the register currently acting as the data pointer.
func (s *State) RX() *reg.R {
	return &s.R[s.X]
}
