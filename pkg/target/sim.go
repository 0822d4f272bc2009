package target

import (
	"context"

	"github.com/juju/errors"
)

// ErrBusFault is returned by SimMemory for accesses outside any populated word
// when faults are enabled.
var ErrBusFault = errors.New("target: bus fault")

// AccessOp identifies the kind of a recorded access.
type AccessOp uint8

const (
	AccessRead32 AccessOp = iota
	AccessWrite8
)

// Access is one recorded memory access.
type Access struct {
	Op    AccessOp
	Addr  uint32
	Value uint32
}

// SimMemory is a sparse in-memory device image useful for tests and the
// simulator adapter. Unpopulated words read as zero.
type SimMemory struct {
	words map[uint32]uint32

	// FaultUnmapped makes reads of unpopulated words fail with ErrBusFault.
	FaultUnmapped bool

	log []Access
}

// NewSimMemory creates an empty image.
func NewSimMemory() *SimMemory {
	return &SimMemory{words: make(map[uint32]uint32)}
}

// SetWord populates one aligned word.
func (s *SimMemory) SetWord(addr, value uint32) {
	s.words[addr&^3] = value
}

// SetBytes populates memory byte by byte starting at addr.
func (s *SimMemory) SetBytes(addr uint32, data []byte) {
	for i, b := range data {
		s.setByte(addr+uint32(i), b)
	}
}

// Word returns the current content of the word containing addr.
func (s *SimMemory) Word(addr uint32) (uint32, bool) {
	v, ok := s.words[addr&^3]
	return v, ok
}

func (s *SimMemory) setByte(addr uint32, b byte) {
	base := addr &^ 3
	shift := (addr & 3) * 8
	w := s.words[base]
	w = w&^(0xFF<<shift) | uint32(b)<<shift
	s.words[base] = w
}

func (s *SimMemory) Read32(_ context.Context, addr uint32) (uint32, error) {
	s.log = append(s.log, Access{Op: AccessRead32, Addr: addr})
	if addr&3 != 0 {
		return 0, errors.Errorf("target: unaligned read at 0x%08X", addr)
	}
	v, ok := s.words[addr]
	if !ok && s.FaultUnmapped {
		return 0, ErrBusFault
	}
	s.log[len(s.log)-1].Value = v
	return v, nil
}

func (s *SimMemory) Write8(_ context.Context, addr uint32, value uint8) error {
	s.log = append(s.log, Access{Op: AccessWrite8, Addr: addr, Value: uint32(value)})
	s.setByte(addr, value)
	return nil
}

// Accesses returns a copy of the access log in issue order.
func (s *SimMemory) Accesses() []Access {
	return append([]Access(nil), s.log...)
}

// Reads returns the addresses of all recorded word reads in issue order.
func (s *SimMemory) Reads() []uint32 {
	var out []uint32
	for _, a := range s.log {
		if a.Op == AccessRead32 {
			out = append(out, a.Addr)
		}
	}
	return out
}

// ClearLog forgets recorded accesses.
func (s *SimMemory) ClearLog() {
	s.log = nil
}
