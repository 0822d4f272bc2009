// Package target models a debug session with one connected device: how its
// memory is reached, what the probing driver learned about it, and which
// driver-specific commands it exposes.
package target

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/juju/errors"
)

// Storage is the driver-private record attached to a session by a
// successful probe. Each driver defines its own concrete type; the session
// never looks inside it.
type Storage interface {
	// DriverName returns a human readable name of the probed device.
	DriverName() string
}

// Handler runs a session command. It returns false on failure; output goes
// to the session's writer.
type Handler func(ctx context.Context, t *Target, args []string) bool

// Command is a named driver command, such as "uid".
type Command struct {
	Name    string
	Help    string
	Handler Handler
}

// Target is one debug session. It is owned by a single goroutine.
type Target struct {
	mem Memory

	// Designer and PartID are the coarse hint gathered while connecting,
	// before any driver has identified the device.
	Designer uint16
	PartID   uint16

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer

	// Warnf receives diagnostics meant to be reported upstream. Defaults to
	// glog.Warningf.
	Warnf func(format string, args ...interface{})

	driver   string
	storage  Storage
	memMap   *MemoryMap
	commands []Command
}

// New creates a session over mem.
func New(mem Memory, designer, partID uint16) *Target {
	return &Target{
		mem:      mem,
		Designer: designer,
		PartID:   partID,
		Out:      os.Stdout,
		Warnf:    glog.Warningf,
	}
}

// Memory returns the raw memory capability.
func (t *Target) Memory() Memory {
	return t.mem
}

// Read32 reads a word from the device.
func (t *Target) Read32(ctx context.Context, addr uint32) (uint32, error) {
	return t.mem.Read32(ctx, addr)
}

// Write8 writes a byte to the device.
func (t *Target) Write8(ctx context.Context, addr uint32, value uint8) error {
	return t.mem.Write8(ctx, addr, value)
}

// Attach publishes the result of a successful probe. All of it becomes
// visible at once; a session that is already attached is rejected.
func (t *Target) Attach(storage Storage, mm *MemoryMap, commands []Command) error {
	if storage == nil || mm == nil {
		return errors.New("attach requires a device record and a memory map")
	}
	if t.storage != nil {
		return errors.AlreadyExistsf("device record for %q", t.driver)
	}
	t.storage = storage
	t.driver = storage.DriverName()
	t.memMap = mm
	t.commands = append([]Command(nil), commands...)
	return nil
}

// Reset drops everything a previous probe attached.
func (t *Target) Reset() {
	t.storage = nil
	t.driver = ""
	t.memMap = nil
	t.commands = nil
}

// Attached reports whether a driver has claimed the device.
func (t *Target) Attached() bool {
	return t.storage != nil
}

// Driver returns the name of the probed device, or "" before a probe.
func (t *Target) Driver() string {
	return t.driver
}

// Storage returns the driver record attached by the probe, if any.
func (t *Target) Storage() Storage {
	return t.storage
}

// MemoryMap returns the attached memory map (nil before a probe).
func (t *Target) MemoryMap() *MemoryMap {
	return t.memMap
}

// Commands returns the attached command table.
func (t *Target) Commands() []Command {
	return append([]Command(nil), t.commands...)
}

// Run dispatches argv[0] to the matching command.
func (t *Target) Run(ctx context.Context, argv []string) (bool, error) {
	if len(argv) == 0 {
		return false, errors.New("empty command")
	}
	for _, c := range t.commands {
		if c.Name == argv[0] {
			return c.Handler(ctx, t, argv[1:]), nil
		}
	}
	return false, errors.NotFoundf("command %q", argv[0])
}

// Printf writes command output.
func (t *Target) Printf(format string, args ...interface{}) {
	fmt.Fprintf(t.Out, format, args...)
}

// Warn reports a diagnostic through the session's warning sink.
func (t *Target) Warn(format string, args ...interface{}) {
	if t.Warnf != nil {
		t.Warnf(format, args...)
	}
}
