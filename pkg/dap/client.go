// Package dap drives a CMSIS-DAP probe in SWD mode: the command protocol,
// the USB transport, debug and access port registers, and a MEM-AP view of
// target memory.
package dap

import (
	"context"
	"fmt"

	"github.com/golang/glog"
	"github.com/juju/errors"
)

// DP registers
const (
	DPIDR    = 0x00 // read
	DPABORT  = 0x00 // write
	DPCTRL   = 0x04
	DPSELECT = 0x08
	DPRDBUFF = 0x0C
)

// CTRL/STAT bits
const (
	ctrlCSYSPWRUPACK = 1 << 31
	ctrlCSYSPWRUPREQ = 1 << 30
	ctrlCDBGPWRUPACK = 1 << 29
	ctrlCDBGPWRUPREQ = 1 << 28

	powerUpReq = ctrlCSYSPWRUPREQ | ctrlCDBGPWRUPREQ
	powerUpAck = ctrlCSYSPWRUPACK | ctrlCDBGPWRUPACK
)

// ABORT value clearing every sticky error flag
const abortClearAll = 0x1E

const (
	// DefaultSpeed is the SWD clock used unless configured otherwise
	DefaultSpeed = 1_000_000

	waitRetries    = 5
	powerUpRetries = 100
)

// SWD line sequences, clocked LSB first
var (
	seqLineReset = []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x07} // 51 ones
	seqJTAGToSWD = []byte{0x9E, 0xE7}
	seqIdle      = []byte{0x00}
)

// Options configures a Client.
type Options struct {
	Speed    uint32 // SWD clock in Hz
	DAPIndex byte   // ignored for SWD, kept for multi-drop probes
}

// DPIDRValue is a decoded debug port identification register.
type DPIDRValue uint32

// Designer returns the JEP106 code in the same continuation<<8 | identity
// layout as partid.PartID.
func (v DPIDRValue) Designer() uint16 {
	return uint16(v>>8)&0xF<<8 | uint16(v>>1)&0x7F
}

func (v DPIDRValue) Version() uint8  { return uint8(v>>12) & 0xF }
func (v DPIDRValue) PartNo() uint8   { return uint8(v >> 20) }
func (v DPIDRValue) Revision() uint8 { return uint8(v>>28) & 0xF }

func (v DPIDRValue) String() string {
	return fmt.Sprintf("DPIDR 0x%08X (designer 0x%03X, DPv%d, part 0x%02X, rev %d)",
		uint32(v), v.Designer(), v.Version(), v.PartNo(), v.Revision())
}

// Client is an SWD session on one CMSIS-DAP probe. It is not safe for
// concurrent use.
type Client struct {
	transport Transport
	protocol  *Protocol
	opts      Options

	connected bool
	idr       DPIDRValue

	selectValue uint32
	selectValid bool
}

// NewClient wraps a transport. Nothing is sent until Connect.
func NewClient(tr Transport, opts Options) *Client {
	if opts.Speed == 0 {
		opts.Speed = DefaultSpeed
	}
	return &Client{
		transport: tr,
		protocol:  NewProtocol(tr.PacketSize()),
		opts:      opts,
	}
}

// Open connects to the first probe matching vid:pid over USB.
func Open(ctx context.Context, vid, pid uint16, opts Options) (*Client, error) {
	tr, err := NewUSBTransport(vid, pid)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c := NewClient(tr, opts)
	if err := c.Connect(ctx); err != nil {
		tr.Close()
		return nil, errors.Trace(err)
	}
	return c, nil
}

func (c *Client) exec(ctx context.Context, cmd []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Annotate(err, "DAP exec")
	}
	glog.V(4).Infof(" => % x", cmd)
	resp, err := c.transport.WriteRead(cmd)
	if err != nil {
		return nil, errors.Trace(err)
	}
	glog.V(4).Infof("<=  % x", resp)
	return resp, nil
}

// Info returns a string DAP_Info value.
func (c *Client) Info(ctx context.Context, id byte) (string, error) {
	resp, err := c.exec(ctx, c.protocol.EncodeInfo(id))
	if err != nil {
		return "", errors.Trace(err)
	}
	s, err := c.protocol.DecodeInfo(resp)
	return s, errors.Annotatef(err, "info 0x%02x", id)
}

// Connect runs the SWD connection sequence: port selection, clock and
// transfer setup, the JTAG to SWD switch, the DPIDR read and debug power up.
func (c *Client) Connect(ctx context.Context) error {
	resp, err := c.exec(ctx, c.protocol.EncodeInfo(InfoPacketSize))
	if err == nil {
		if size, err := c.protocol.DecodeInfoUint16(resp); err == nil && size > 0 {
			if tp := c.transport.PacketSize(); tp > 0 && int(size) > tp {
				size = uint16(tp)
			}
			c.protocol.PacketSize = int(size)
			glog.V(2).Infof("max packet size: %d", size)
		}
	}

	resp, err = c.exec(ctx, c.protocol.EncodeConnect(PortSWD))
	if err != nil {
		return errors.Trace(err)
	}
	port, err := c.protocol.DecodeConnect(resp)
	if err != nil {
		return errors.Trace(err)
	}
	if port != PortSWD {
		return errors.Errorf("failed to connect in SWD mode (got port %d)", port)
	}
	c.connected = true

	if err := c.SetSpeed(ctx, c.opts.Speed); err != nil {
		return errors.Trace(err)
	}
	if resp, err = c.exec(ctx, c.protocol.EncodeTransferConfigure(0, 64, 0)); err != nil {
		return errors.Trace(err)
	}
	if err := c.protocol.DecodeTransferConfigure(resp); err != nil {
		return errors.Trace(err)
	}
	if resp, err = c.exec(ctx, c.protocol.EncodeSWDConfigure(0)); err != nil {
		return errors.Trace(err)
	}
	if err := c.protocol.DecodeSWDConfigure(resp); err != nil {
		return errors.Trace(err)
	}

	for _, seq := range []struct {
		bits int
		data []byte
	}{
		{51, seqLineReset},
		{16, seqJTAGToSWD},
		{51, seqLineReset},
		{8, seqIdle},
	} {
		if err := c.sequence(ctx, seq.bits, seq.data); err != nil {
			return errors.Annotate(err, "JTAG to SWD switch")
		}
	}

	idr, err := c.ReadDP(ctx, DPIDR)
	if err != nil {
		return errors.Annotate(err, "failed to read DPIDR")
	}
	c.idr = DPIDRValue(idr)
	glog.V(1).Infof("%s", c.idr)

	if err := c.WriteDP(ctx, DPABORT, abortClearAll); err != nil {
		return errors.Trace(err)
	}
	c.selectValid = false
	if err := c.writeSelect(ctx, 0); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.powerUp(ctx))
}

func (c *Client) sequence(ctx context.Context, bits int, data []byte) error {
	cmd, err := c.protocol.EncodeSWJSequence(bits, data)
	if err != nil {
		return errors.Trace(err)
	}
	resp, err := c.exec(ctx, cmd)
	if err != nil {
		return errors.Trace(err)
	}
	return c.protocol.DecodeSWJSequence(resp)
}

func (c *Client) powerUp(ctx context.Context) error {
	if err := c.WriteDP(ctx, DPCTRL, powerUpReq); err != nil {
		return errors.Annotate(err, "failed to request power up")
	}
	for i := 0; i < powerUpRetries; i++ {
		stat, err := c.ReadDP(ctx, DPCTRL)
		if err != nil {
			return errors.Annotate(err, "failed to read CTRL/STAT")
		}
		if stat&powerUpAck == powerUpAck {
			return nil
		}
	}
	return errors.Errorf("debug power up not acknowledged")
}

// IDR returns the DPIDR read during Connect.
func (c *Client) IDR() DPIDRValue {
	return c.idr
}

// SetSpeed sets the SWD clock
func (c *Client) SetSpeed(ctx context.Context, hz uint32) error {
	resp, err := c.exec(ctx, c.protocol.EncodeSetClock(hz))
	if err != nil {
		return errors.Annotate(err, "set speed failed")
	}
	if err := c.protocol.DecodeSetClock(resp); err != nil {
		return errors.Trace(err)
	}
	c.opts.Speed = hz
	return nil
}

// Transfer runs reqs, retrying the whole batch while the target answers WAIT.
// A FAULT clears the sticky error flags before the error is returned.
func (c *Client) Transfer(ctx context.Context, reqs []TransferRequest) ([]uint32, error) {
	cmd, err := c.protocol.EncodeTransfer(c.opts.DAPIndex, reqs)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for i := 0; i < waitRetries; i++ {
		resp, err := c.exec(ctx, cmd)
		if err != nil {
			return nil, errors.Trace(err)
		}
		res, err := c.protocol.DecodeTransfer(resp, reqs)
		if err != nil {
			return nil, errors.Trace(err)
		}
		switch {
		case res.OK() && res.Count == len(reqs):
			return res.Data, nil
		case res.Ack == AckWait:
			glog.V(3).Infof("transfer WAIT, retry %d", i+1)
			continue
		case res.Ack == AckFault:
			c.clearFault(ctx)
			return nil, errors.Errorf("transfer fault (%d/%d done)", res.Count, len(reqs))
		}
		return nil, errors.Errorf("transfer failed (%d/%d done, ack 0x%02x)", res.Count, len(reqs), res.Ack)
	}
	return nil, errors.Errorf("transfer timeout")
}

func (c *Client) clearFault(ctx context.Context) {
	cmd, err := c.protocol.EncodeTransfer(c.opts.DAPIndex, []TransferRequest{{Reg: DPABORT, Value: abortClearAll}})
	if err != nil {
		return
	}
	if _, err := c.exec(ctx, cmd); err != nil {
		glog.V(2).Infof("ABORT after fault: %v", err)
	}
}

// ReadDP reads a debug port register.
func (c *Client) ReadDP(ctx context.Context, reg uint8) (uint32, error) {
	data, err := c.Transfer(ctx, []TransferRequest{{Read: true, Reg: reg}})
	if err != nil {
		return 0, errors.Annotatef(err, "failed to read DP reg 0x%x", reg)
	}
	glog.V(4).Infof("DP[0x%x] == 0x%08x", reg, data[0])
	return data[0], nil
}

// WriteDP writes a debug port register.
func (c *Client) WriteDP(ctx context.Context, reg uint8, value uint32) error {
	glog.V(4).Infof("DP[0x%x] = 0x%08x", reg, value)
	_, err := c.Transfer(ctx, []TransferRequest{{Reg: reg, Value: value}})
	return errors.Annotatef(err, "failed to write DP reg 0x%x", reg)
}

func (c *Client) writeSelect(ctx context.Context, value uint32) error {
	if c.selectValid && value == c.selectValue {
		return nil
	}
	if err := c.WriteDP(ctx, DPSELECT, value); err != nil {
		c.selectValid = false
		return errors.Trace(err)
	}
	c.selectValue, c.selectValid = value, true
	return nil
}

func (c *Client) selectAP(ctx context.Context, apSel, apReg uint8) error {
	return c.writeSelect(ctx, uint32(apSel)<<24|uint32(apReg&0xF0))
}

// ReadAP reads register apReg of access port apSel.
func (c *Client) ReadAP(ctx context.Context, apSel, apReg uint8) (uint32, error) {
	if err := c.selectAP(ctx, apSel, apReg); err != nil {
		return 0, errors.Trace(err)
	}
	data, err := c.Transfer(ctx, []TransferRequest{{AP: true, Read: true, Reg: apReg & 0x0C}})
	if err != nil {
		return 0, errors.Annotatef(err, "failed to read AP%d reg 0x%02x", apSel, apReg)
	}
	return data[0], nil
}

// WriteAP writes register apReg of access port apSel.
func (c *Client) WriteAP(ctx context.Context, apSel, apReg uint8, value uint32) error {
	if err := c.selectAP(ctx, apSel, apReg); err != nil {
		return errors.Trace(err)
	}
	_, err := c.Transfer(ctx, []TransferRequest{{AP: true, Reg: apReg & 0x0C, Value: value}})
	return errors.Annotatef(err, "failed to write AP%d reg 0x%02x", apSel, apReg)
}

// Close disconnects and releases the transport.
func (c *Client) Close() error {
	if c.connected {
		if resp, err := c.transport.WriteRead(c.protocol.EncodeDisconnect()); err == nil {
			if err := c.protocol.DecodeDisconnect(resp); err != nil {
				glog.V(2).Infof("disconnect: %v", err)
			}
		}
		c.connected = false
	}
	return c.transport.Close()
}
