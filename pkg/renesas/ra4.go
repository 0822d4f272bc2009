package renesas

// RA4 series entries
func init() {
	register(SeriesInfo{
		Series:    SeriesRA4M1,
		Flash:     FlashMF,
		UID:       UIDFixed2,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 8 * kib, BlockSize: 64}},
		RAM:       []RAMBank{{Name: "SRAM", Start: 0x20000000, Length: 32 * kib}},
		Notes:     "PNR location undocumented",
	})

	// RA4M2, RA4M3 and RA4E1 share one layout
	for _, s := range []Series{SeriesRA4M2, SeriesRA4M3, SeriesRA4E1} {
		register(SeriesInfo{
			Series:    s,
			Flash:     FlashRV40,
			UID:       UIDFixed2,
			DataFlash: []DataFlash{{Start: 0x08000000, Length: 8 * kib, BlockSize: 64}},
			RAM: []RAMBank{
				{Name: "SRAM", Start: 0x20000000, Length: 128 * kib},
				{Name: "Standby SRAM", Start: 0x28000000, Length: 1 * kib},
			},
		})
	}

	register(SeriesInfo{
		Series:    SeriesRA4W1,
		Flash:     FlashMF,
		UID:       UIDFixed2,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 8 * kib, BlockSize: 64}},
		RAM:       []RAMBank{{Name: "SRAM", Start: 0x20000000, Length: 96 * kib}},
		Notes:     "PNR location undocumented",
	})
}
