package renesas

import "fmt"

// Series is a family, series and group triple ("A4M3") packed most
// significant byte first.
type Series uint32

func seriesCode(a, b, c, d byte) Series {
	return Series(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

const (
	SeriesRA2L1 = Series('A'<<24 | '2'<<16 | 'L'<<8 | '1')
	SeriesRA2E1 = Series('A'<<24 | '2'<<16 | 'E'<<8 | '1')
	SeriesRA2E2 = Series('A'<<24 | '2'<<16 | 'E'<<8 | '2')
	SeriesRA2A1 = Series('A'<<24 | '2'<<16 | 'A'<<8 | '1')
	SeriesRA4M1 = Series('A'<<24 | '4'<<16 | 'M'<<8 | '1')
	SeriesRA4M2 = Series('A'<<24 | '4'<<16 | 'M'<<8 | '2')
	SeriesRA4M3 = Series('A'<<24 | '4'<<16 | 'M'<<8 | '3')
	SeriesRA4E1 = Series('A'<<24 | '4'<<16 | 'E'<<8 | '1')
	SeriesRA4W1 = Series('A'<<24 | '4'<<16 | 'W'<<8 | '1')
	SeriesRA6M1 = Series('A'<<24 | '6'<<16 | 'M'<<8 | '1')
	SeriesRA6M2 = Series('A'<<24 | '6'<<16 | 'M'<<8 | '2')
	SeriesRA6M3 = Series('A'<<24 | '6'<<16 | 'M'<<8 | '3')
	SeriesRA6M4 = Series('A'<<24 | '6'<<16 | 'M'<<8 | '4')
	SeriesRA6M5 = Series('A'<<24 | '6'<<16 | 'M'<<8 | '5')
	SeriesRA6E1 = Series('A'<<24 | '6'<<16 | 'E'<<8 | '1')
	SeriesRA6T1 = Series('A'<<24 | '6'<<16 | 'T'<<8 | '1')
	SeriesRA6T2 = Series('A'<<24 | '6'<<16 | 'T'<<8 | '2')
)

// String returns "RA" followed by the series and group, e.g. "RA4M3", for
// any printable code.
func (s Series) String() string {
	b := [4]byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)}
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("Series(0x%08X)", uint32(s))
		}
	}
	return "R" + string(b[:])
}

// SeriesOf packs the series code of p without checking the catalog.
func SeriesOf(p PNR) Series {
	i := pnrFamilyIndex
	return seriesCode(p[i], p[i+1], p[i+2], p[i+3])
}

// Classify returns the series of p and whether the catalog knows it.
func Classify(p PNR) (Series, bool) {
	s := SeriesOf(p)
	_, ok := catalog[s]
	return s, ok
}
