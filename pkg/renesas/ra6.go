package renesas

// RA6 series entries
func init() {
	// Datasheet information for the RA6M1 is conflicting.
	register(SeriesInfo{
		Series:    SeriesRA6M1,
		Flash:     FlashRV40,
		UID:       UIDRootTable,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 8 * kib, BlockSize: 64}},
		RAM: []RAMBank{
			{Name: "SRAM", Start: 0x20000000, Length: 128 * kib},
			{Name: "SRAMHS", Start: 0x1FFE0000, Length: 128 * kib},
			{Name: "Standby SRAM", Start: 0x200FE000, Length: 8 * kib},
		},
	})

	register(SeriesInfo{
		Series:    SeriesRA6M2,
		Flash:     FlashRV40,
		UID:       UIDRootTable,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 32 * kib, BlockSize: 64}},
		RAM: []RAMBank{
			{Name: "SRAM", Start: 0x20000000, Length: 256 * kib},
			{Name: "SRAMHS", Start: 0x1FFE0000, Length: 128 * kib},
			{Name: "Standby SRAM", Start: 0x200FE000, Length: 8 * kib},
		},
	})

	register(SeriesInfo{
		Series:    SeriesRA6M3,
		Flash:     FlashRV40,
		UID:       UIDRootTable,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 64 * kib, BlockSize: 64}},
		RAM: []RAMBank{
			{Name: "SRAM0", Start: 0x20000000, Length: 256 * kib},
			{Name: "SRAM1", Start: 0x20040000, Length: 256 * kib},
			{Name: "SRAMHS", Start: 0x1FFE0000, Length: 128 * kib},
			{Name: "Standby SRAM", Start: 0x200FE000, Length: 8 * kib},
		},
	})

	for _, s := range []Series{SeriesRA6M4, SeriesRA6E1} {
		register(SeriesInfo{
			Series:    s,
			Flash:     FlashRV40,
			UID:       UIDFixed2,
			DataFlash: []DataFlash{{Start: 0x08000000, Length: 8 * kib, BlockSize: 64}},
			RAM: []RAMBank{
				{Name: "SRAM", Start: 0x20000000, Length: 256 * kib},
				{Name: "Standby SRAM", Start: 0x28000000, Length: 1 * kib},
			},
		})
	}

	register(SeriesInfo{
		Series:    SeriesRA6M5,
		Flash:     FlashRV40,
		UID:       UIDFixed2,
		DataFlash: []DataFlash{{Start: 0x08000000, Length: 8 * kib, BlockSize: 64}},
		RAM: []RAMBank{
			{Name: "SRAM", Start: 0x20000000, Length: 512 * kib},
			{Name: "Standby SRAM", Start: 0x28000000, Length: 1 * kib},
		},
	})

	register(SeriesInfo{
		Series:    SeriesRA6T1,
		Flash:     FlashRV40,
		UID:       UIDRootTable,
		DataFlash: []DataFlash{{Start: 0x40100000, Length: 8 * kib, BlockSize: 64}},
		RAM:       []RAMBank{{Name: "SRAMHS", Start: 0x1FFE0000, Length: 64 * kib}},
	})

	register(SeriesInfo{
		Series:    SeriesRA6T2,
		Flash:     FlashRV40,
		UID:       UIDFixed2,
		DataFlash: []DataFlash{{Start: 0x08000000, Length: 16 * kib, BlockSize: 64}},
		RAM: []RAMBank{
			{Name: "SRAM", Start: 0x20000000, Length: 64 * kib},
			{Name: "Standby SRAM", Start: 0x28000000, Length: 1 * kib},
		},
	})
}
