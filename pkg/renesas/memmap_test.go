package renesas

import (
	"context"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/juju/errors"
)

func TestCodeFlashSizeByCapacityCode(t *testing.T) {
	tests := []struct {
		code byte
		want uint32
	}{
		{'3', 16 * 1024},
		{'5', 32 * 1024},
		{'7', 64 * 1024},
		{'9', 128 * 1024},
		{'B', 256 * 1024},
		{'C', 384 * 1024},
		{'D', 512 * 1024},
		{'E', 768 * 1024},
		{'F', 1024 * 1024},
		{'G', 1536 * 1024},
		{'H', 2048 * 1024},
		{'Z', 0},
		{'A', 0},
		{0x00, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			mm := &target.MemoryMap{}
			if err := buildMemoryMap(mm, SeriesRA4M3, tt.code); err != nil {
				t.Fatalf("buildMemoryMap returned error: %v", err)
			}
			regions := mm.Regions()
			code := regions[len(regions)-1]
			if code.Kind != target.RegionFlash || code.Start != 0 {
				t.Fatalf("last region is not code flash: %+v", code)
			}
			if code.Length != tt.want {
				t.Errorf("code flash length = %d, want %d", code.Length, tt.want)
			}
			if code.BlockSize != 8*1024 {
				t.Errorf("code flash block size = %d, want 8192", code.BlockSize)
			}
			if code.Usable() != (tt.want != 0) {
				t.Errorf("Usable() = %v for length %d", code.Usable(), code.Length)
			}
		})
	}
}

func TestFlashHandlersMatchFamily(t *testing.T) {
	tests := []struct {
		series Series
		family FlashFamily
	}{
		{SeriesRA2L1, FlashMF},
		{SeriesRA4W1, FlashMF},
		{SeriesRA4M3, FlashRV40},
		{SeriesRA6M3, FlashRV40},
	}

	for _, tt := range tests {
		t.Run(tt.series.String(), func(t *testing.T) {
			mm := &target.MemoryMap{}
			if err := buildMemoryMap(mm, tt.series, 'F'); err != nil {
				t.Fatalf("buildMemoryMap returned error: %v", err)
			}
			flash := mm.Flash()
			if len(flash) < 2 {
				t.Fatalf("want data and code flash, got %d regions", len(flash))
			}
			want := tt.family.Ops()
			for _, r := range flash {
				if r.Ops != want {
					t.Errorf("region at 0x%08X bound to %T, want %T", r.Start, r.Ops, want)
				}
				if r.Erased != 0xFF {
					t.Errorf("region at 0x%08X erased value 0x%02X", r.Start, r.Erased)
				}
			}
		})
	}
}

func TestLayoutOrder(t *testing.T) {
	mm := &target.MemoryMap{}
	if err := buildMemoryMap(mm, SeriesRA6M3, 'H'); err != nil {
		t.Fatalf("buildMemoryMap returned error: %v", err)
	}
	want := []target.Region{
		{Kind: target.RegionFlash, Start: 0x40100000, Length: 64 * 1024, BlockSize: 64},
		{Kind: target.RegionRAM, Start: 0x20000000, Length: 256 * 1024},
		{Kind: target.RegionRAM, Start: 0x20040000, Length: 256 * 1024},
		{Kind: target.RegionRAM, Start: 0x1FFE0000, Length: 128 * 1024},
		{Kind: target.RegionRAM, Start: 0x200FE000, Length: 8 * 1024},
		{Kind: target.RegionFlash, Start: 0, Length: 2048 * 1024, BlockSize: 8 * 1024},
	}
	got := mm.Regions()
	if len(got) != len(want) {
		t.Fatalf("got %d regions, want %d", len(got), len(want))
	}
	for i := range want {
		g := got[i]
		if g.Kind != want[i].Kind || g.Start != want[i].Start || g.Length != want[i].Length || g.BlockSize != want[i].BlockSize {
			t.Errorf("region %d = %v, want %v", i, g, want[i])
		}
	}
}

func TestBuildUnsupportedSeries(t *testing.T) {
	mm := &target.MemoryMap{}
	err := buildMemoryMap(mm, seriesCode('A', '9', 'Z', '9'), 'D')
	if !errors.IsNotSupported(err) {
		t.Fatalf("error = %v, want not supported", err)
	}
	if mm.Len() != 0 {
		t.Fatalf("unsupported series created %d regions", mm.Len())
	}
}

func TestBuildWithoutFlashFamily(t *testing.T) {
	s := seriesCode('A', '0', 'X', '1')
	register(SeriesInfo{
		Series:    s,
		Flash:     FlashNone,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 8 * kib, BlockSize: 64}},
		RAM:       []RAMBank{{Name: "SRAM", Start: 0x20000000, Length: 16 * kib}},
	})
	defer delete(catalog, s)

	mm := &target.MemoryMap{}
	if err := buildMemoryMap(mm, s, 'D'); err != nil {
		t.Fatalf("buildMemoryMap returned error: %v", err)
	}
	if n := len(mm.Flash()); n != 0 {
		t.Fatalf("series without flash family created %d flash regions", n)
	}
	if n := len(mm.RAM()); n != 1 {
		t.Fatalf("got %d RAM regions, want 1", n)
	}
}

func TestCatalogConsistency(t *testing.T) {
	entries := Catalog()
	if len(entries) != 17 {
		t.Fatalf("catalog has %d series, want 17", len(entries))
	}
	for i, info := range entries {
		if i > 0 && entries[i-1].Series >= info.Series {
			t.Errorf("catalog not sorted at %s", info.Series)
		}
		if info.Flash == FlashNone {
			t.Errorf("%s has no flash family", info.Series)
		}
		if info.UID == UIDUnknown {
			t.Errorf("%s has no UID location", info.Series)
		}
		if len(info.RAM) < 1 || len(info.RAM) > 4 {
			t.Errorf("%s has %d RAM banks", info.Series, len(info.RAM))
		}
	}
}

func TestFlashStubsNotImplemented(t *testing.T) {
	for _, f := range []FlashFamily{FlashMF, FlashRV40} {
		ops := f.Ops()
		if err := ops.Erase(context.Background(), nil, 0, 8192); !errors.IsNotImplemented(err) {
			t.Errorf("%s erase error = %v", f, err)
		}
		if err := ops.Write(context.Background(), nil, 0, []byte{1}); !errors.IsNotImplemented(err) {
			t.Errorf("%s write error = %v", f, err)
		}
	}
	if FlashNone.Ops() != nil {
		t.Errorf("FlashNone must not have handlers")
	}
}
