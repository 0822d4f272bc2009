package dap

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/gousb"
	"github.com/juju/errors"
)

const (
	// Raspberry Pi Debug Probe / picoprobe CMSIS-DAP firmware
	VendorIDRaspberryPi = 0x2E8A
	ProductIDCMSISDAP   = 0x000C

	// Default packet size for CMSIS-DAP v1/v2
	DefaultPacketSize = 64
	DefaultTimeout    = 5 * time.Second
)

// Transport carries CMSIS-DAP command packets to a probe and returns the
// response to each.
type Transport interface {
	WriteRead(cmd []byte) ([]byte, error)
	PacketSize() int
	Close() error
}

// USBTransport handles bulk endpoint communication with a CMSIS-DAP v2 probe
type USBTransport struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface

	epOut *gousb.OutEndpoint
	epIn  *gousb.InEndpoint

	packetSize int
	timeout    time.Duration
}

// NewUSBTransport opens the first probe matching vid:pid
func NewUSBTransport(vid, pid uint16) (*USBTransport, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, errors.Annotatef(err, "failed to open %04x:%04x", vid, pid)
	}
	if dev == nil {
		ctx.Close()
		return nil, errors.NotFoundf("device %04x:%04x", vid, pid)
	}
	glog.V(1).Infof("opened %04x:%04x", vid, pid)

	// Not supported on every platform
	if err := dev.SetAutoDetach(true); err != nil {
		glog.V(1).Infof("auto detach: %v", err)
	}

	t := &USBTransport{
		ctx:        ctx,
		dev:        dev,
		packetSize: DefaultPacketSize,
		timeout:    DefaultTimeout,
	}
	if err := t.claimInterface(); err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}
	return t, nil
}

// claimInterface finds and claims the CMSIS-DAP vendor interface
func (t *USBTransport) claimInterface() error {
	cfgNum, err := t.dev.ActiveConfigNum()
	if err != nil {
		cfgNum = 1
	}
	cfg, err := t.dev.Config(cfgNum)
	if err != nil {
		return errors.Annotatef(err, "failed to get config %d", cfgNum)
	}
	t.cfg = cfg

	// CMSIS-DAP v2 uses a vendor specific class interface with bulk endpoints
	num := -1
	for _, intf := range cfg.Desc.Interfaces {
		if len(intf.AltSettings) > 0 && intf.AltSettings[0].Class == gousb.ClassVendorSpec {
			num = intf.Number
			break
		}
	}
	if num == -1 {
		num = 0
	}

	intf, err := cfg.Interface(num, 0)
	if err != nil {
		cfg.Close()
		return errors.Annotatef(err, "failed to claim interface %d", num)
	}
	t.intf = intf

	if err := t.findEndpoints(); err != nil {
		intf.Close()
		cfg.Close()
		return err
	}
	return nil
}

// findEndpoints discovers the bulk IN and OUT endpoints
func (t *USBTransport) findEndpoints() error {
	var outNum, inNum int
	for _, ep := range t.intf.Setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		switch {
		case ep.Direction == gousb.EndpointDirectionOut && outNum == 0:
			outNum = ep.Number
		case ep.Direction == gousb.EndpointDirectionIn && inNum == 0:
			inNum = ep.Number
			t.packetSize = ep.MaxPacketSize
		}
	}
	if outNum == 0 {
		return errors.NotFoundf("bulk OUT endpoint")
	}
	if inNum == 0 {
		return errors.NotFoundf("bulk IN endpoint")
	}

	epOut, err := t.intf.OutEndpoint(outNum)
	if err != nil {
		return errors.Annotate(err, "failed to open OUT endpoint")
	}
	epIn, err := t.intf.InEndpoint(inNum)
	if err != nil {
		return errors.Annotate(err, "failed to open IN endpoint")
	}
	t.epOut, t.epIn = epOut, epIn
	return nil
}

// WriteRead performs a command/response transaction
func (t *USBTransport) WriteRead(cmd []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if len(cmd) > t.packetSize {
		return nil, errors.Errorf("packet too long (max %d, got %d)", t.packetSize, len(cmd))
	}
	if _, err := t.epOut.WriteContext(ctx, cmd); err != nil {
		return nil, errors.Annotate(err, "USB write failed")
	}
	resp := make([]byte, t.packetSize)
	n, err := t.epIn.ReadContext(ctx, resp)
	if err != nil {
		return nil, errors.Annotate(err, "USB read failed")
	}
	return resp[:n], nil
}

// PacketSize returns the maximum command packet size
func (t *USBTransport) PacketSize() int {
	return t.packetSize
}

// SetTimeout sets the per transaction timeout
func (t *USBTransport) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
}

// Close releases USB resources
func (t *USBTransport) Close() error {
	if t.intf != nil {
		t.intf.Close()
		t.intf = nil
	}
	if t.cfg != nil {
		t.cfg.Close()
		t.cfg = nil
	}
	if t.dev != nil {
		t.dev.Close()
		t.dev = nil
	}
	if t.ctx != nil {
		t.ctx.Close()
		t.ctx = nil
	}
	return nil
}

// ProbeInfo describes an attached CMSIS-DAP probe.
type ProbeInfo struct {
	VendorID    uint16
	ProductID   uint16
	Serial      string
	Description string
}

// Label returns a user-friendly description for the probe.
func (p ProbeInfo) Label() string {
	s := p.Description
	if s == "" {
		s = "CMSIS-DAP"
	}
	s = fmt.Sprintf("%s (%04X:%04X)", s, p.VendorID, p.ProductID)
	if p.Serial != "" {
		s += " serial " + p.Serial
	}
	return s
}

type knownUSBDevice struct {
	VendorID    uint16
	ProductID   uint16
	Description string
}

var knownProbes = []knownUSBDevice{
	{VendorID: VendorIDRaspberryPi, ProductID: ProductIDCMSISDAP, Description: "Raspberry Pi Debug Probe"},
	{VendorID: 0x0D28, ProductID: 0x0204, Description: "DAPLink"},
	{VendorID: 0x1366, ProductID: 0x0101, Description: "SEGGER J-Link CMSIS-DAP"},
}

// KnownProbe looks up the description of a probe VID/PID pair.
func KnownProbe(vid, pid uint16) (string, bool) {
	for _, k := range knownProbes {
		if k.VendorID == vid && k.ProductID == pid {
			return k.Description, true
		}
	}
	return "", false
}

// EnumerateProbes lists attached probes with known VID/PID pairs.
func EnumerateProbes(ctx context.Context) ([]ProbeInfo, error) {
	usb := gousb.NewContext()
	defer usb.Close()

	devs, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		_, ok := KnownProbe(uint16(desc.Vendor), uint16(desc.Product))
		return ok
	})
	defer func() {
		for _, d := range devs {
			d.Close()
		}
	}()
	if err != nil && err != gousb.ErrorAccess {
		return nil, errors.Annotate(err, "failed to enumerate devices")
	}

	var probes []ProbeInfo
	for _, d := range devs {
		desc, _ := KnownProbe(uint16(d.Desc.Vendor), uint16(d.Desc.Product))
		serial, _ := d.SerialNumber()
		probes = append(probes, ProbeInfo{
			VendorID:    uint16(d.Desc.Vendor),
			ProductID:   uint16(d.Desc.Product),
			Serial:      serial,
			Description: desc,
		})
	}
	return probes, nil
}
