package partid

import "fmt"

// Designer codes of MCU vendors commonly found behind a debug port.
const (
	DesignerFreescale  uint16 = 0x00E
	DesignerNXP        uint16 = 0x015
	DesignerTI         uint16 = 0x017
	DesignerAtmel      uint16 = 0x01F
	DesignerST         uint16 = 0x020
	DesignerCypress    uint16 = 0x034
	DesignerInfineon   uint16 = 0x041
	DesignerNordic     uint16 = 0x244
	DesignerRenesas    uint16 = 0x423
	DesignerARM        uint16 = 0x43B
	DesignerGigaDevice uint16 = 0x751
	DesignerRaspberry  uint16 = 0x913
)

var designers = map[uint16]Designer{
	DesignerFreescale:  {Code: DesignerFreescale, Name: "Freescale", Abbreviation: "Freescale"},
	DesignerNXP:        {Code: DesignerNXP, Name: "NXP Semiconductors", Abbreviation: "NXP"},
	DesignerTI:         {Code: DesignerTI, Name: "Texas Instruments", Abbreviation: "TI"},
	DesignerAtmel:      {Code: DesignerAtmel, Name: "Atmel", Abbreviation: "Atmel"},
	DesignerST:         {Code: DesignerST, Name: "STMicroelectronics", Abbreviation: "STM"},
	DesignerCypress:    {Code: DesignerCypress, Name: "Cypress", Abbreviation: "Cypress"},
	DesignerInfineon:   {Code: DesignerInfineon, Name: "Infineon", Abbreviation: "Infineon"},
	DesignerNordic:     {Code: DesignerNordic, Name: "Nordic Semiconductor", Abbreviation: "Nordic"},
	DesignerRenesas:    {Code: DesignerRenesas, Name: "Renesas Electronics", Abbreviation: "Renesas"},
	DesignerARM:        {Code: DesignerARM, Name: "ARM", Abbreviation: "ARM"},
	DesignerGigaDevice: {Code: DesignerGigaDevice, Name: "GigaDevice", Abbreviation: "GD"},
	DesignerRaspberry:  {Code: DesignerRaspberry, Name: "Raspberry Pi", Abbreviation: "RPi"},
}

// LookupDesigner returns designer info for a JEP106 code
func LookupDesigner(code uint16) (Designer, bool) {
	d, ok := designers[code]
	if !ok {
		return Designer{
			Code:         code,
			Name:         fmt.Sprintf("Unknown (0x%03X)", code),
			Abbreviation: "Unknown",
		}, false
	}
	return d, true
}
