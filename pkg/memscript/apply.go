package memscript

import (
	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/juju/errors"
)

const (
	pnrLen           = 16
	pnrReversedChars = 13
)

// Apply writes the script into mem, statement by statement. Word statements
// need aligned addresses.
func (s *Script) Apply(mem *target.SimMemory) error {
	for _, st := range s.Statements {
		if err := st.apply(mem); err != nil {
			return errors.Annotatef(err, "%s", st.Pos)
		}
	}
	return nil
}

func (st *Statement) apply(mem *target.SimMemory) error {
	switch {
	case st.Word != nil:
		if st.Word.Addr%4 != 0 {
			return errors.Errorf("unaligned word address 0x%08X", uint32(st.Word.Addr))
		}
		mem.SetWord(uint32(st.Word.Addr), uint32(st.Word.Value))

	case st.Words != nil:
		if st.Words.Addr%4 != 0 {
			return errors.Errorf("unaligned word address 0x%08X", uint32(st.Words.Addr))
		}
		for i, v := range st.Words.Values {
			mem.SetWord(uint32(st.Words.Addr)+uint32(i)*4, uint32(v.Value))
		}

	case st.ASCII != nil:
		mem.SetBytes(uint32(st.ASCII.Addr), []byte(st.ASCII.Text))

	case st.RASCII != nil:
		img, err := reversed(st.RASCII.Text)
		if err != nil {
			return err
		}
		mem.SetBytes(uint32(st.RASCII.Addr), img)

	case st.Fault != nil:
		mem.FaultUnmapped = st.Fault.State == "on"
	}
	return nil
}

// reversed builds the 16 byte image of text as stored at fixed location 1.
func reversed(text string) ([]byte, error) {
	if len(text) < pnrReversedChars || len(text) > pnrLen {
		return nil, errors.Errorf("rascii needs %d to %d characters, got %d", pnrReversedChars, pnrLen, len(text))
	}
	img := []byte("                ")
	for i := 0; i < pnrReversedChars; i++ {
		img[pnrReversedChars-1-i] = text[i]
	}
	copy(img[pnrReversedChars:], text[pnrReversedChars:])
	return img, nil
}
