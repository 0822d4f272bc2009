// Package renesas identifies Renesas RA microcontrollers behind a debug port
// and describes their memory layout.
//
// # Part numbering
//
// Every RA device carries a read-only 16 byte part numbering register (PNR)
// holding its ASCII part number, for example "R7FA4M3AF3CFP   ":
//
//	R7   F   A   4M  3   A   F   3   C   FP
//	|    |   |   |   |   |   |   |   |   |
//	|    |   |   |   |   |   |   |   |   package
//	|    |   |   |   |   |   |   |   quality grade
//	|    |   |   |   |   |   |   operating temperature
//	|    |   |   |   |   |   code flash size
//	|    |   |   |   |   feature set
//	|    |   |   |   group number
//	|    |   |   series
//	|    |   family (A: RA)
//	|    flash memory
//	Renesas microcontroller (always "R7")
//
// Bytes three to six name the series and byte eight encodes the code flash
// capacity. The "R7" prefix is the only integrity check available.
//
// # Register location
//
// Where the PNR lives depends on the series. Older parts keep it at one of two
// fixed addresses; newer ones publish a Flash Root Table whose base address is
// read from the FMIFRT register, and the PNR sits at a fixed offset from it.
// Parts using the first fixed location store the part number reversed.
//
// The coarse part ID read from the debug port selects where to look. When the
// part ID is not recognised every location is tried in turn; see Probe.
package renesas
