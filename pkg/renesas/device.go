package renesas

// Device is the record a successful probe attaches to the session. It is
// never modified; probing again builds a new one.
type Device struct {
	pnr            PNR
	series         Series
	flashRootTable uint32
}

func newDevice(pnr PNR, series Series, flashRootTable uint32) *Device {
	return &Device{pnr: pnr, series: series, flashRootTable: flashRootTable}
}

// PNR returns the decoded part numbering register.
func (d *Device) PNR() PNR { return d.pnr }

// Series returns the classified series.
func (d *Device) Series() Series { return d.series }

// FlashRootTable returns the Flash Root Table base address and whether the
// device was found through it.
func (d *Device) FlashRootTable() (uint32, bool) {
	return d.flashRootTable, d.flashRootTable != 0
}

// DriverName implements target.Storage.
func (d *Device) DriverName() string {
	return d.pnr.String()
}
