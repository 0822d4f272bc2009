package renesas

// RA2 series entries
func init() {
	register(SeriesInfo{
		Series:    SeriesRA2L1,
		Flash:     FlashMF,
		UID:       UIDFixed1,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 8 * kib, BlockSize: 64}},
		RAM:       []RAMBank{{Name: "SRAM", Start: 0x20000000, Length: 32 * kib}},
	})

	register(SeriesInfo{
		Series:    SeriesRA2E1,
		Flash:     FlashMF,
		UID:       UIDFixed1,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 4 * kib, BlockSize: 64}},
		RAM:       []RAMBank{{Name: "SRAM", Start: 0x20004000, Length: 16 * kib}},
	})

	register(SeriesInfo{
		Series:    SeriesRA2E2,
		Flash:     FlashMF,
		UID:       UIDFixed1,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 2 * kib, BlockSize: 64}},
		RAM:       []RAMBank{{Name: "SRAM", Start: 0x20004000, Length: 8 * kib}},
	})

	register(SeriesInfo{
		Series:    SeriesRA2A1,
		Flash:     FlashMF,
		UID:       UIDFixed2,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 8 * kib, BlockSize: 64}},
		RAM:       []RAMBank{{Name: "SRAM", Start: 0x20000000, Length: 32 * kib}},
		Notes:     "PNR location undocumented",
	})
}
