package dap

import (
	"bytes"
	"context"
	"testing"
)

func connectedClient(t *testing.T, f *fakeProbe) *Client {
	t.Helper()
	c := NewClient(f, Options{})
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return c
}

func TestClientConnectSequence(t *testing.T) {
	f := newFakeProbe()
	c := connectedClient(t, f)

	ids := f.cmdIDs()
	wantPrefix := []byte{
		CmdInfo,
		CmdConnect,
		CmdSWJClock,
		CmdTransferConfigure,
		CmdSWDConfigure,
		CmdSWJSequence, CmdSWJSequence, CmdSWJSequence, CmdSWJSequence,
	}
	if !bytes.HasPrefix(ids, wantPrefix) {
		t.Fatalf("command order = % X, want prefix % X", ids, wantPrefix)
	}
	if !bytes.Equal(f.cmds[1], []byte{CmdConnect, PortSWD}) {
		t.Errorf("connect = % X", f.cmds[1])
	}
	if !bytes.Equal(f.cmds[6], []byte{CmdSWJSequence, 16, 0x9E, 0xE7}) {
		t.Errorf("switch sequence = % X", f.cmds[6])
	}
	for _, id := range ids[len(wantPrefix):] {
		if id != CmdTransfer {
			t.Fatalf("unexpected command 0x%02X after line sequences", id)
		}
	}

	if c.IDR() != DPIDRValue(0x5BA02477) {
		t.Errorf("IDR() = %s", c.IDR())
	}
	if len(f.aborts) != 1 || f.aborts[0] != abortClearAll {
		t.Errorf("aborts = %X", f.aborts)
	}
	if f.ctrl&powerUpReq != powerUpReq {
		t.Errorf("CTRL/STAT = 0x%08X, power up not requested", f.ctrl)
	}
}

func TestClientConnectPowerUpTimeout(t *testing.T) {
	f := newFakeProbe()
	f.noPowerAck = true
	c := NewClient(f, Options{})
	if err := c.Connect(context.Background()); err == nil {
		t.Fatalf("Connect() succeeded without power up acknowledge")
	}
}

func TestClientConnectCancelled(t *testing.T) {
	f := newFakeProbe()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(f, Options{})
	if err := c.Connect(ctx); err == nil {
		t.Fatalf("Connect() succeeded with cancelled context")
	}
	if len(f.cmds) != 0 {
		t.Errorf("sent %d commands after cancellation", len(f.cmds))
	}
}

func TestDPIDRDecode(t *testing.T) {
	v := DPIDRValue(0x5BA02477)
	if v.Designer() != 0x43B {
		t.Errorf("Designer() = 0x%03X, want 0x43B", v.Designer())
	}
	if v.Version() != 2 {
		t.Errorf("Version() = %d, want 2", v.Version())
	}
	if v.PartNo() != 0xBA {
		t.Errorf("PartNo() = 0x%02X, want 0xBA", v.PartNo())
	}
	if v.Revision() != 5 {
		t.Errorf("Revision() = %d, want 5", v.Revision())
	}
}

func TestClientSelectCaching(t *testing.T) {
	f := newFakeProbe()
	c := connectedClient(t, f)
	ctx := context.Background()
	before := f.countDPWrites(DPSELECT)

	if _, err := c.ReadAP(ctx, 0, uint8(CSW)); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteAP(ctx, 0, uint8(TAR), 0x20000000); err != nil {
		t.Fatal(err)
	}
	if got := f.countDPWrites(DPSELECT) - before; got != 0 {
		t.Errorf("bank 0 accesses wrote SELECT %d times, want 0", got)
	}

	if _, err := c.ReadAP(ctx, 0, uint8(BASE)); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ReadAP(ctx, 0, uint8(IDR)); err != nil {
		t.Fatal(err)
	}
	if got := f.countDPWrites(DPSELECT) - before; got != 1 {
		t.Errorf("bank 0xF accesses wrote SELECT %d times, want 1", got)
	}
	if f.sel != 0x000000F0 {
		t.Errorf("SELECT = 0x%08X, want 0x000000F0", f.sel)
	}

	if _, err := c.ReadAP(ctx, 1, uint8(CSW)); err != nil {
		t.Fatal(err)
	}
	if f.sel != 0x01000000 {
		t.Errorf("SELECT = 0x%08X, want 0x01000000", f.sel)
	}
}

func TestClientTransferWaitRetry(t *testing.T) {
	f := newFakeProbe()
	c := connectedClient(t, f)

	f.wait = waitRetries - 1
	if _, err := c.ReadDP(context.Background(), DPIDR); err != nil {
		t.Fatalf("ReadDP() after %d WAITs: %v", waitRetries-1, err)
	}

	f.wait = waitRetries
	if _, err := c.ReadDP(context.Background(), DPIDR); err == nil {
		t.Fatalf("ReadDP() succeeded after %d WAITs", waitRetries)
	}
}

func TestClientTransferFaultClearsErrors(t *testing.T) {
	f := newFakeProbe()
	f.mem.FaultUnmapped = true
	c := connectedClient(t, f)
	ctx := context.Background()
	aborts := len(f.aborts)

	if err := c.WriteAP(ctx, 0, uint8(TAR), 0x30000000); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ReadAP(ctx, 0, uint8(DRW)); err == nil {
		t.Fatalf("ReadAP() of unmapped memory succeeded")
	}
	if len(f.aborts) != aborts+1 {
		t.Errorf("fault issued %d ABORT writes, want 1", len(f.aborts)-aborts)
	}
}

func TestClientClose(t *testing.T) {
	f := newFakeProbe()
	c := connectedClient(t, f)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !f.closed {
		t.Errorf("transport not closed")
	}
	if last := f.cmds[len(f.cmds)-1]; last[0] != CmdDisconnect {
		t.Errorf("last command = 0x%02X, want disconnect", last[0])
	}
}

func TestClientInfo(t *testing.T) {
	f := newFakeProbe()
	c := NewClient(f, Options{})
	s, err := c.Info(context.Background(), InfoVendorID)
	if err != nil || s != "Fake" {
		t.Fatalf("Info() = %q, %v", s, err)
	}
}
