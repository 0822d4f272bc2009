// Package partid decodes the coarse identity a debug port reports before any
// device-specific driver runs: the JEP106 designer and part number found in
// a CoreSight component's peripheral ID registers.
package partid

// PartID is a decoded CoreSight peripheral identifier.
type PartID struct {
	Designer   uint16 // continuation code in [11:8], JEP106 identity in [6:0]
	PartNumber uint16 // 12 bits
	Revision   uint8
	JEDEC      bool // designer field uses JEP106
}

// Designer is a JEP106 designer entry
type Designer struct {
	Code         uint16
	Name         string
	Abbreviation string
}
