package target

import (
	"bytes"
	"context"
	"testing"

	"github.com/juju/errors"
)

type fakeRecord struct{ name string }

func (f *fakeRecord) DriverName() string { return f.name }

func TestAttachPublishesEverything(t *testing.T) {
	tgt := New(NewSimMemory(), 0x423, 0x0310)
	if tgt.Attached() || tgt.MemoryMap() != nil || len(tgt.Commands()) != 0 {
		t.Fatalf("fresh session should hold nothing")
	}

	mm := &MemoryMap{}
	mm.AddRAM(0x20000000, 1024)
	cmds := []Command{{Name: "hello", Handler: func(context.Context, *Target, []string) bool { return true }}}
	if err := tgt.Attach(&fakeRecord{name: "dev"}, mm, cmds); err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	if !tgt.Attached() || tgt.Driver() != "dev" || tgt.MemoryMap().Len() != 1 {
		t.Fatalf("unexpected session state after attach: driver=%q regions=%d", tgt.Driver(), tgt.MemoryMap().Len())
	}

	err := tgt.Attach(&fakeRecord{name: "other"}, mm, nil)
	if !errors.IsAlreadyExists(err) {
		t.Fatalf("second Attach error = %v, want already exists", err)
	}

	tgt.Reset()
	if tgt.Attached() || tgt.Driver() != "" || tgt.MemoryMap() != nil {
		t.Fatalf("Reset left state behind")
	}
}

func TestAttachRejectsPartialResult(t *testing.T) {
	tgt := New(NewSimMemory(), 0, 0)
	if err := tgt.Attach(&fakeRecord{name: "dev"}, nil, nil); err == nil {
		t.Fatalf("expected error for missing memory map")
	}
	if err := tgt.Attach(nil, &MemoryMap{}, nil); err == nil {
		t.Fatalf("expected error for missing record")
	}
	if tgt.Attached() {
		t.Fatalf("failed Attach must not attach anything")
	}
}

func TestRunDispatchesByName(t *testing.T) {
	tgt := New(NewSimMemory(), 0, 0)
	var out bytes.Buffer
	tgt.Out = &out

	var gotArgs []string
	cmds := []Command{
		{Name: "echo", Handler: func(_ context.Context, t *Target, args []string) bool {
			gotArgs = args
			t.Printf("echo %d\n", len(args))
			return true
		}},
		{Name: "fail", Handler: func(context.Context, *Target, []string) bool { return false }},
	}
	if err := tgt.Attach(&fakeRecord{name: "dev"}, &MemoryMap{}, cmds); err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}

	ok, err := tgt.Run(context.Background(), []string{"echo", "a", "b"})
	if err != nil || !ok {
		t.Fatalf("Run(echo) = %v, %v", ok, err)
	}
	if len(gotArgs) != 2 || out.String() != "echo 2\n" {
		t.Fatalf("unexpected handler effects: args=%v out=%q", gotArgs, out.String())
	}

	if ok, err := tgt.Run(context.Background(), []string{"fail"}); err != nil || ok {
		t.Fatalf("Run(fail) = %v, %v, want false, nil", ok, err)
	}
	if _, err := tgt.Run(context.Background(), []string{"missing"}); !errors.IsNotFound(err) {
		t.Fatalf("Run(missing) error = %v, want not found", err)
	}
	if _, err := tgt.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty command")
	}
}

func TestWarnUsesSink(t *testing.T) {
	tgt := New(NewSimMemory(), 0, 0)
	var got string
	tgt.Warnf = func(format string, args ...interface{}) { got = format }
	tgt.Warn("hello %d", 1)
	if got != "hello %d" {
		t.Fatalf("sink not called, got %q", got)
	}
	tgt.Warnf = nil
	tgt.Warn("ignored")
}

func TestProbeDriversOrderAndDesigner(t *testing.T) {
	tgt := New(NewSimMemory(), 0x423, 0)
	var order []string
	mk := func(name string, designer uint16, ok bool) Driver {
		return Driver{Name: name, Designer: designer, Probe: func(context.Context, *Target) bool {
			order = append(order, name)
			return ok
		}}
	}

	name, ok := ProbeDrivers(context.Background(), tgt, []Driver{
		mk("stm", 0x020, true),
		mk("generic", AnyDesigner, false),
		mk("renesas", 0x423, true),
		mk("late", AnyDesigner, true),
	})
	if !ok || name != "renesas" {
		t.Fatalf("ProbeDrivers = %q, %v, want renesas, true", name, ok)
	}
	if len(order) != 2 || order[0] != "generic" || order[1] != "renesas" {
		t.Fatalf("probe order = %v, want [generic renesas]", order)
	}

	if _, ok := ProbeDrivers(context.Background(), tgt, []Driver{mk("stm", 0x020, true)}); ok {
		t.Fatalf("designer mismatch must not claim the device")
	}
}
