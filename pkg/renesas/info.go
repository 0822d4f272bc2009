package renesas

import (
	"context"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
)

// Field positions past the capacity code.
const (
	pnrFeatureIndex     = 7
	pnrTemperatureIndex = 9
	pnrQualityIndex     = 10
	pnrPackageIndex     = 11
)

var temperatures = map[byte]string{
	'2': "-40°C to +85°C",
	'3': "-40°C to +105°C",
	'4': "-40°C to +125°C",
}

var qualities = map[byte]string{
	'C': "Industrial applications",
	'D': "Consumer applications",
}

var packages = map[string]string{
	"FP": "LQFP 100 pins 0.5 mm pitch",
	"FN": "LQFP 80 pins 0.5 mm pitch",
	"FM": "LQFP 64 pins 0.5 mm pitch",
	"FL": "LQFP 48 pins 0.5 mm pitch",
	"NE": "HWQFN 48 pins 0.5 mm pitch",
	"FK": "LQFP 64 pins 0.8 mm pitch",
	"BU": "BGA 64 pins 0.4 mm pitch",
	"LM": "LGA 36 pins 0.5 mm pitch",
	"FJ": "LQFP 32 pins 0.8 mm pitch",
	"NH": "HWQFN 32 pins 0.5 mm pitch",
	"BV": "WLCSP 25 pins 0.4 mm pitch",
	"BT": "BGA 36 pins",
	"NK": "HWQFN 24 pins 0.5 mm pitch",
	"NJ": "HWQFN 20 pins 0.5 mm pitch",
	"BY": "WLCSP 16 pins 0.4 mm pitch",
	"NF": "QFN 40 pins",
	"LJ": "LGA 100 pins",
	"NB": "QFN 64 pins",
	"FB": "LQFP 144 pins",
	"NG": "QFN 56 pins",
	"LK": "LGA 145 pins",
	"BG": "BGA 176 pins",
	"FC": "LQFP 176 pins",
}

func describe(table map[byte]string, code byte) string {
	if s, ok := table[code]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%c)", code)
}

// PartInfo is the part number broken into its fields.
type PartInfo struct {
	PartNumber  string
	Series      Series
	FeatureSet  byte
	FlashSize   uint32
	Temperature string
	Quality     string
	Package     string
}

// Decode splits p into its part numbering fields.
func Decode(p PNR) PartInfo {
	pkg := string(p[pnrPackageIndex : pnrPackageIndex+2])
	pkgDesc, ok := packages[pkg]
	if !ok {
		pkgDesc = fmt.Sprintf("unknown (%s)", pkg)
	}
	return PartInfo{
		PartNumber:  p.String(),
		Series:      SeriesOf(p),
		FeatureSet:  p[pnrFeatureIndex],
		FlashSize:   FlashSize(p.MemSizeCode()),
		Temperature: describe(temperatures, p[pnrTemperatureIndex]),
		Quality:     describe(qualities, p[pnrQualityIndex]),
		Package:     pkgDesc,
	}
}

func cmdInfo(ctx context.Context, t *target.Target, _ []string) bool {
	dev, ok := deviceOf(t)
	if !ok {
		return false
	}
	pi := Decode(dev.pnr)
	t.Printf("Part Number: %s\n", pi.PartNumber)
	t.Printf("Series:      %s\n", pi.Series)
	t.Printf("Feature Set: %c\n", pi.FeatureSet)
	t.Printf("Code Flash:  %d KiB\n", pi.FlashSize/kib)
	t.Printf("Temperature: %s\n", pi.Temperature)
	t.Printf("Quality:     %s\n", pi.Quality)
	t.Printf("Package:     %s\n", pi.Package)
	if addr, err := mcuVersionAddress(dev); err == nil {
		if v, err := t.Read32(ctx, addr); err == nil {
			t.Printf("MCU Version: 0x%02x\n", uint8(v))
		}
	}
	return true
}
