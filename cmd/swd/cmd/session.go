package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceSWD/internal/config"
	"github.com/OpenTraceLab/OpenTraceSWD/pkg/dap"
	"github.com/OpenTraceLab/OpenTraceSWD/pkg/memscript"
	"github.com/OpenTraceLab/OpenTraceSWD/pkg/partid"
	"github.com/OpenTraceLab/OpenTraceSWD/pkg/renesas"
	"github.com/OpenTraceLab/OpenTraceSWD/pkg/target"
	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/juju/errors"
	"github.com/spf13/cobra"
)

// Connection flags shared by probe and monitor
var (
	adapterType  string
	scriptPath   string
	partIDFlag   string
	designerFlag string
	vidFlag      string
	pidFlag      string
	speedFlag    uint32
	apFlag       uint8
)

// drivers tried in order for every session
var drivers = []target.Driver{
	renesas.Driver,
}

func addConnectFlags(c *cobra.Command) {
	c.Flags().StringVarP(&adapterType, "adapter", "a", config.AdapterSimulator,
		"adapter type (simulator, cmsisdap)")
	c.Flags().StringVarP(&scriptPath, "script", "s", "",
		"simulator: memory script describing the device")
	c.Flags().StringVar(&partIDFlag, "part-id", "",
		"override the part ID read from the ROM table (e.g. 0x0310)")
	c.Flags().StringVar(&designerFlag, "designer", "",
		"override the JEP106 designer (simulator default 0x423)")
	c.Flags().StringVar(&vidFlag, "vid", "", "cmsisdap: probe USB vendor ID")
	c.Flags().StringVar(&pidFlag, "pid", "", "cmsisdap: probe USB product ID")
	c.Flags().Uint32Var(&speedFlag, "speed", dap.DefaultSpeed, "SWD clock in Hz")
	c.Flags().Uint8Var(&apFlag, "ap", 0, "MEM-AP index")
}

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.NotValidf("value %q", s)
	}
	return uint16(v), nil
}

// connectOptions merges the config file with the flags the user set.
type connectOptions struct {
	adapter  string
	script   string
	vid, pid uint16
	speed    uint32
	ap       uint8

	designer, partID       uint16
	haveDesigner, havePart bool
}

func resolveConnectOptions(c *cobra.Command) (connectOptions, error) {
	o := connectOptions{
		adapter: cfg.Adapter,
		script:  cfg.Script,
		vid:     cfg.VID,
		pid:     cfg.PID,
		speed:   cfg.Speed,
		ap:      cfg.AP,
	}
	flags := c.Flags()
	if flags.Changed("adapter") {
		o.adapter = adapterType
	}
	if flags.Changed("script") {
		o.script = scriptPath
	}
	if flags.Changed("speed") {
		o.speed = speedFlag
	}
	if flags.Changed("ap") {
		o.ap = apFlag
	}

	var err error
	for _, f := range []struct {
		name  string
		value string
		dst   *uint16
		set   *bool
	}{
		{"vid", vidFlag, &o.vid, nil},
		{"pid", pidFlag, &o.pid, nil},
		{"designer", designerFlag, &o.designer, &o.haveDesigner},
		{"part-id", partIDFlag, &o.partID, &o.havePart},
	} {
		if !flags.Changed(f.name) {
			continue
		}
		if *f.dst, err = parseUint16(f.value); err != nil {
			return o, errors.Annotatef(err, "--%s", f.name)
		}
		if f.set != nil {
			*f.set = true
		}
	}
	return o, nil
}

// openSession connects to the device and returns a session ready for
// probing. The returned function releases the adapter.
func openSession(ctx context.Context, c *cobra.Command) (*target.Target, func(), error) {
	o, err := resolveConnectOptions(c)
	if err != nil {
		return nil, nil, err
	}

	var t *target.Target
	cleanup := func() {}
	switch o.adapter {
	case config.AdapterSimulator, "sim":
		sim := target.NewSimMemory()
		if o.script != "" {
			script, err := memscript.ParseFile(o.script)
			if err != nil {
				return nil, nil, errors.Trace(err)
			}
			if err := script.Apply(sim); err != nil {
				return nil, nil, errors.Annotatef(err, "%s", o.script)
			}
		}
		if !o.haveDesigner {
			o.designer = partid.DesignerRenesas
		}
		t = target.New(sim, o.designer, o.partID)

	case config.AdapterCMSISDAP:
		client, err := dap.Open(ctx, o.vid, o.pid, dap.Options{Speed: o.speed})
		if err != nil {
			return nil, nil, errors.Annotate(err, "failed to open probe")
		}
		cleanup = func() { client.Close() }
		if verbose {
			fmt.Fprintf(c.OutOrStdout(), "Connected: %s\n", client.IDR())
		}

		mem := dap.NewMemAP(client, o.ap)
		id, err := mem.ReadPartID(ctx)
		if err != nil {
			if !o.haveDesigner || !o.havePart {
				cleanup()
				return nil, nil, errors.Annotate(err, "failed to read part ID")
			}
			glog.Warningf("ROM table: %v", err)
		}
		if o.haveDesigner {
			id.Designer = o.designer
		}
		if o.havePart {
			id.PartNumber = o.partID
		}
		t = target.New(mem, id.Designer, id.PartNumber)

	default:
		return nil, nil, errors.NotValidf("adapter %q", o.adapter)
	}

	t.Out = c.OutOrStdout()
	t.Warnf = warnSink(c.ErrOrStderr())
	return t, cleanup, nil
}

func warnSink(w io.Writer) func(string, ...interface{}) {
	warn := color.New(color.FgYellow)
	return func(format string, args ...interface{}) {
		glog.Warningf(format, args...)
		warn.Fprintf(w, "Warning: "+format+"\n", args...)
	}
}

// probeSession opens a session and runs driver dispatch on it.
func probeSession(ctx context.Context, c *cobra.Command) (*target.Target, func(), error) {
	t, cleanup, err := openSession(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	d, _ := partid.LookupDesigner(t.Designer)
	if verbose {
		fmt.Fprintf(c.OutOrStdout(), "Designer: %s (0x%03X), part ID 0x%04X\n", d.Name, t.Designer, t.PartID)
	}
	name, ok := target.ProbeDrivers(ctx, t, drivers)
	if !ok {
		cleanup()
		return nil, nil, errors.Errorf("unknown device (designer %s, part ID 0x%04X)", d.Name, t.PartID)
	}
	glog.V(1).Infof("%s driver claimed %s", name, t.Driver())
	return t, cleanup, nil
}
