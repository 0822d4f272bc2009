package partid

import "fmt"

// Offsets of PIDR4 and PIDR0..PIDR3 within a 4 KiB CoreSight component.
const (
	PIDR4Offset = 0xFD0
	PIDR0Offset = 0xFE0
)

// FromPIDR decodes the five meaningful peripheral ID registers. Only the low
// byte of each register is significant.
func FromPIDR(pidr0, pidr1, pidr2, pidr3, pidr4 uint32) PartID {
	id := (pidr1>>4)&0xF | (pidr2&0x7)<<4
	cont := pidr4 & 0xF
	return PartID{
		Designer:   uint16(cont<<8 | id),
		PartNumber: uint16(pidr0&0xFF | (pidr1&0xF)<<8),
		Revision:   uint8((pidr2 >> 4) & 0xF),
		JEDEC:      pidr2&0x8 != 0,
	}
}

func (p PartID) String() string {
	d, _ := LookupDesigner(p.Designer)
	return fmt.Sprintf("%s part 0x%03X rev %d", d.Name, p.PartNumber, p.Revision)
}
