package dap

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
)

// fakeProbe emulates a CMSIS-DAP probe wired to a single MEM-AP whose bus is
// a SimMemory.
type fakeProbe struct {
	mem  *target.SimMemory
	idr  uint32
	base uint32

	// wait makes the next n transfers answer WAIT.
	wait int
	// noPowerAck keeps CTRL/STAT acknowledge bits clear.
	noPowerAck bool

	ctrl   uint32
	sel    uint32
	csw    uint32
	tar    uint32
	aborts []uint32

	cmds    [][]byte
	dpWrite []dpAccess
	closed  bool
}

type dpAccess struct {
	reg   uint8
	value uint32
}

func newFakeProbe() *fakeProbe {
	return &fakeProbe{
		mem:  target.NewSimMemory(),
		idr:  0x5BA02477,
		base: 0xE00FF003,
	}
}

func (f *fakeProbe) PacketSize() int { return 64 }

func (f *fakeProbe) Close() error {
	f.closed = true
	return nil
}

func (f *fakeProbe) cmdIDs() []byte {
	var ids []byte
	for _, c := range f.cmds {
		ids = append(ids, c[0])
	}
	return ids
}

func (f *fakeProbe) countDPWrites(reg uint8) int {
	n := 0
	for _, w := range f.dpWrite {
		if w.reg == reg {
			n++
		}
	}
	return n
}

func (f *fakeProbe) WriteRead(cmd []byte) ([]byte, error) {
	if len(cmd) == 0 {
		return nil, errors.New("empty packet")
	}
	f.cmds = append(f.cmds, append([]byte(nil), cmd...))

	switch cmd[0] {
	case CmdInfo:
		if cmd[1] == InfoPacketSize {
			return []byte{CmdInfo, 2, 64, 0}, nil
		}
		return []byte{CmdInfo, 5, 'F', 'a', 'k', 'e', 0}, nil
	case CmdConnect:
		return []byte{CmdConnect, cmd[1]}, nil
	case CmdTransfer:
		return f.transfer(cmd), nil
	}
	return []byte{cmd[0], StatusOK}, nil
}

func (f *fakeProbe) transfer(cmd []byte) []byte {
	if f.wait > 0 {
		f.wait--
		return []byte{CmdTransfer, 0, AckWait}
	}

	count := int(cmd[2])
	resp := []byte{CmdTransfer, 0, AckOK}
	off := 3
	for i := 0; i < count; i++ {
		req := cmd[off]
		off++
		ap, read, reg := req&reqAPnDP != 0, req&reqRnW != 0, req&0x0C
		var value uint32
		if !read {
			value = binary.LittleEndian.Uint32(cmd[off:])
			off += 4
		}

		var (
			out uint32
			ack byte = AckOK
		)
		if ap {
			out, ack = f.apAccess(uint8(f.sel&0xF0)|reg, read, value)
		} else {
			out = f.dpAccess(reg, read, value)
		}
		if ack != AckOK {
			resp[2] = ack
			return resp
		}
		resp[1]++
		if read {
			resp = binary.LittleEndian.AppendUint32(resp, out)
		}
	}
	return resp
}

func (f *fakeProbe) dpAccess(reg uint8, read bool, value uint32) uint32 {
	if !read {
		f.dpWrite = append(f.dpWrite, dpAccess{reg, value})
	}
	switch {
	case reg == DPIDR && read:
		return f.idr
	case reg == DPABORT:
		f.aborts = append(f.aborts, value)
	case reg == DPCTRL && read:
		if f.noPowerAck {
			return f.ctrl
		}
		return f.ctrl | (f.ctrl&powerUpReq)<<1
	case reg == DPCTRL:
		f.ctrl = value
	case reg == DPSELECT && !read:
		f.sel = value
	}
	return 0
}

func (f *fakeProbe) apAccess(reg uint8, read bool, value uint32) (uint32, byte) {
	ctx := context.Background()
	switch MemAPReg(reg) {
	case CSW:
		if !read {
			f.csw = value
		}
		return f.csw, AckOK
	case TAR:
		if !read {
			f.tar = value
		}
		return f.tar, AckOK
	case BASE:
		return f.base, AckOK
	case DRW:
		if read {
			v, err := f.mem.Read32(ctx, f.tar&^3)
			if err != nil {
				return 0, AckFault
			}
			return v, AckOK
		}
		if f.csw&cswSizeMsk == cswSize8 {
			b := uint8(value >> (8 * (f.tar & 3)))
			if err := f.mem.Write8(ctx, f.tar, b); err != nil {
				return 0, AckFault
			}
			return 0, AckOK
		}
		for i := uint32(0); i < 4; i++ {
			f.mem.Write8(ctx, f.tar+i, uint8(value>>(8*i)))
		}
		return 0, AckOK
	}
	return 0, AckOK
}
