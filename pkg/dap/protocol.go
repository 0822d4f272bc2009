package dap

import (
	"encoding/binary"

	"github.com/juju/errors"
)

// CMSIS-DAP command IDs
const (
	CmdInfo              = 0x00
	CmdHostStatus        = 0x01
	CmdConnect           = 0x02
	CmdDisconnect        = 0x03
	CmdTransferConfigure = 0x04
	CmdTransfer          = 0x05
	CmdResetTarget       = 0x0A
	CmdSWJClock          = 0x11
	CmdSWJSequence       = 0x12
	CmdSWDConfigure      = 0x13
)

// DAP_Info IDs
const (
	InfoVendorID     = 0x01
	InfoProductID    = 0x02
	InfoSerialNum    = 0x03
	InfoFirmwareVer  = 0x04
	InfoCapabilities = 0xF0
	InfoPacketCount  = 0xFE
	InfoPacketSize   = 0xFF
)

// Connection ports
const (
	PortDefault = 0
	PortSWD     = 1
	PortJTAG    = 2
)

// Status codes
const (
	StatusOK    = 0x00
	StatusError = 0xFF
)

// Transfer acknowledges, as reported in the DAP_Transfer response.
const (
	AckOK       = 0x01
	AckWait     = 0x02
	AckFault    = 0x04
	AckNoAck    = 0x07
	AckSWDError = 0x08 // protocol error (parity)
	AckMismatch = 0x10
)

// Transfer request bits
const (
	reqAPnDP = 1 << 0
	reqRnW   = 1 << 1
)

// TransferRequest is one DP or AP register access within a DAP_Transfer.
type TransferRequest struct {
	AP    bool
	Read  bool
	Reg   uint8 // A[3:2], 0x0 / 0x4 / 0x8 / 0xC
	Value uint32
}

// Byte returns the request byte of r.
func (r TransferRequest) Byte() byte {
	b := r.Reg & 0x0C
	if r.AP {
		b |= reqAPnDP
	}
	if r.Read {
		b |= reqRnW
	}
	return b
}

// TransferResult is the decoded DAP_Transfer response.
type TransferResult struct {
	Count int    // number of requests executed
	Ack   byte   // acknowledge of the last executed request
	Data  []uint32
}

// OK reports whether all requests were acknowledged.
func (r TransferResult) OK() bool {
	return r.Ack == AckOK
}

// Protocol handles encoding/decoding of CMSIS-DAP commands
type Protocol struct {
	PacketSize int
}

// NewProtocol creates a new protocol handler
func NewProtocol(packetSize int) *Protocol {
	return &Protocol{PacketSize: packetSize}
}

func checkResponse(resp []byte, cmd byte, min int) error {
	if len(resp) < min {
		return errors.Errorf("response to 0x%02X too short (%d bytes)", cmd, len(resp))
	}
	if resp[0] != cmd {
		return errors.Errorf("response to wrong command (want 0x%02X, got 0x%02X)", cmd, resp[0])
	}
	return nil
}

func checkStatus(resp []byte, cmd byte, what string) error {
	if err := checkResponse(resp, cmd, 2); err != nil {
		return err
	}
	if resp[1] != StatusOK {
		return errors.Errorf("%s failed (status 0x%02X)", what, resp[1])
	}
	return nil
}

// EncodeInfo builds a DAP_Info command
func (p *Protocol) EncodeInfo(infoID byte) []byte {
	return []byte{CmdInfo, infoID}
}

// DecodeInfo parses a string DAP_Info response
func (p *Protocol) DecodeInfo(resp []byte) (string, error) {
	if err := checkResponse(resp, CmdInfo, 2); err != nil {
		return "", err
	}
	length := int(resp[1])
	if len(resp) < 2+length {
		return "", errors.New("incomplete info string")
	}
	// Some probes include the terminating NUL in the length.
	s := resp[2 : 2+length]
	if n := len(s); n > 0 && s[n-1] == 0 {
		s = s[:n-1]
	}
	return string(s), nil
}

// DecodeInfoUint16 parses a DAP_Info response carrying a short, such as
// InfoPacketSize.
func (p *Protocol) DecodeInfoUint16(resp []byte) (uint16, error) {
	if err := checkResponse(resp, CmdInfo, 2); err != nil {
		return 0, err
	}
	if resp[1] != 2 || len(resp) < 4 {
		return 0, errors.Errorf("unexpected info length %d", resp[1])
	}
	return binary.LittleEndian.Uint16(resp[2:4]), nil
}

// EncodeConnect builds a DAP_Connect command
func (p *Protocol) EncodeConnect(port byte) []byte {
	return []byte{CmdConnect, port}
}

// DecodeConnect parses a DAP_Connect response
func (p *Protocol) DecodeConnect(resp []byte) (byte, error) {
	if err := checkResponse(resp, CmdConnect, 2); err != nil {
		return 0, err
	}
	if resp[1] == PortDefault {
		return 0, errors.New("connection failed")
	}
	return resp[1], nil
}

// EncodeDisconnect builds a DAP_Disconnect command
func (p *Protocol) EncodeDisconnect() []byte {
	return []byte{CmdDisconnect}
}

// DecodeDisconnect parses a DAP_Disconnect response
func (p *Protocol) DecodeDisconnect(resp []byte) error {
	return checkStatus(resp, CmdDisconnect, "disconnect")
}

// EncodeSetClock builds a DAP_SWJ_Clock command
func (p *Protocol) EncodeSetClock(hz uint32) []byte {
	cmd := make([]byte, 5)
	cmd[0] = CmdSWJClock
	binary.LittleEndian.PutUint32(cmd[1:], hz)
	return cmd
}

// DecodeSetClock parses a DAP_SWJ_Clock response
func (p *Protocol) DecodeSetClock(resp []byte) error {
	return checkStatus(resp, CmdSWJClock, "set clock")
}

// EncodeSWJSequence builds a DAP_SWJ_Sequence command clocking bits of data
// out on SWDIO, LSB first. A count of 256 is encoded as 0.
func (p *Protocol) EncodeSWJSequence(bits int, data []byte) ([]byte, error) {
	if bits < 1 || bits > 256 {
		return nil, errors.Errorf("sequence length %d out of range [1, 256]", bits)
	}
	n := (bits + 7) / 8
	if len(data) < n {
		return nil, errors.Errorf("sequence of %d bits needs %d bytes, got %d", bits, n, len(data))
	}
	cmd := make([]byte, 2+n)
	cmd[0] = CmdSWJSequence
	cmd[1] = byte(bits) // 256 wraps to 0
	copy(cmd[2:], data[:n])
	return cmd, nil
}

// DecodeSWJSequence parses a DAP_SWJ_Sequence response
func (p *Protocol) DecodeSWJSequence(resp []byte) error {
	return checkStatus(resp, CmdSWJSequence, "SWJ sequence")
}

// EncodeSWDConfigure builds a DAP_SWD_Configure command
func (p *Protocol) EncodeSWDConfigure(cfg byte) []byte {
	return []byte{CmdSWDConfigure, cfg}
}

// DecodeSWDConfigure parses a DAP_SWD_Configure response
func (p *Protocol) DecodeSWDConfigure(resp []byte) error {
	return checkStatus(resp, CmdSWDConfigure, "SWD configure")
}

// EncodeTransferConfigure builds a DAP_TransferConfigure command
func (p *Protocol) EncodeTransferConfigure(idleCycles uint8, waitRetry, matchRetry uint16) []byte {
	cmd := make([]byte, 6)
	cmd[0] = CmdTransferConfigure
	cmd[1] = idleCycles
	binary.LittleEndian.PutUint16(cmd[2:], waitRetry)
	binary.LittleEndian.PutUint16(cmd[4:], matchRetry)
	return cmd
}

// DecodeTransferConfigure parses a DAP_TransferConfigure response
func (p *Protocol) DecodeTransferConfigure(resp []byte) error {
	return checkStatus(resp, CmdTransferConfigure, "transfer configure")
}

// EncodeTransfer builds a DAP_Transfer command
func (p *Protocol) EncodeTransfer(dapIndex byte, reqs []TransferRequest) ([]byte, error) {
	if len(reqs) == 0 || len(reqs) > 255 {
		return nil, errors.Errorf("invalid transfer count %d", len(reqs))
	}
	cmd := []byte{CmdTransfer, dapIndex, byte(len(reqs))}
	for i, r := range reqs {
		if r.Reg&^0x0C != 0 {
			return nil, errors.Errorf("request %d: invalid register 0x%X", i, r.Reg)
		}
		cmd = append(cmd, r.Byte())
		if !r.Read {
			cmd = binary.LittleEndian.AppendUint32(cmd, r.Value)
		}
	}
	if p.PacketSize > 0 && len(cmd) > p.PacketSize {
		return nil, errors.Errorf("packet too long (max %d, got %d)", p.PacketSize, len(cmd))
	}
	return cmd, nil
}

// DecodeTransfer parses a DAP_Transfer response. Data holds one word per
// executed read request.
func (p *Protocol) DecodeTransfer(resp []byte, reqs []TransferRequest) (TransferResult, error) {
	if err := checkResponse(resp, CmdTransfer, 3); err != nil {
		return TransferResult{}, err
	}
	res := TransferResult{Count: int(resp[1]), Ack: resp[2]}
	if res.Count > len(reqs) {
		return res, errors.Errorf("probe executed %d of %d requests", res.Count, len(reqs))
	}
	offset := 3
	for _, r := range reqs[:res.Count] {
		if !r.Read {
			continue
		}
		if offset+4 > len(resp) {
			// A failed last read carries no data.
			if res.OK() {
				return res, errors.New("incomplete transfer data")
			}
			break
		}
		res.Data = append(res.Data, binary.LittleEndian.Uint32(resp[offset:]))
		offset += 4
	}
	return res, nil
}
