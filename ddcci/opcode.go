package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	DDC/CI opcode byte table and the per-opcode layout
 *		predicates that drive frame encode/decode.
 *
 *------------------------------------------------------------------*/

import "fmt"

// DdcOpcode identifies a DDC/CI command or reply. Unknown carries the
// raw byte so forward-compatible monitors never fail to parse.
type DdcOpcode struct {
	known bool
	value byte
	name  opcodeName
}

type opcodeName int

const (
	opUnknown opcodeName = iota
	OpIdentificationRequest
	OpIdentificationReply
	OpCapabilitiesRequest
	OpCapabilitiesReply
	OpDisplaySelfTestRequest
	OpDisplaySelfTestReply
	OpTimingRequest
	OpTimingReply
	OpVcpRequest
	OpVcpReply
	OpSetVcp
	OpResetVcp
	OpTableReadRequest
	OpTableReadReply
	OpTableWrite
	OpEnableApplicationReport
	OpSaveCurrentSettings
)

var opcodeByte = map[opcodeName]byte{
	OpIdentificationRequest:   0xf1,
	OpIdentificationReply:     0xe1,
	OpCapabilitiesRequest:     0xf3,
	OpCapabilitiesReply:       0xe3,
	OpDisplaySelfTestRequest:  0xb1,
	OpDisplaySelfTestReply:    0xa1,
	OpTimingRequest:           0x07,
	OpTimingReply:             0x06,
	OpVcpRequest:              0x01,
	OpVcpReply:                0x02,
	OpSetVcp:                  0x03,
	OpResetVcp:                0x09,
	OpTableReadRequest:        0xe2,
	OpTableReadReply:          0xe4,
	OpTableWrite:              0xe7,
	OpEnableApplicationReport: 0xf5,
	OpSaveCurrentSettings:     0x0c,
}

var byteToOpcodeName map[byte]opcodeName

func init() {
	byteToOpcodeName = make(map[byte]opcodeName, len(opcodeByte))
	for name, b := range opcodeByte {
		byteToOpcodeName[b] = name
	}
}

// Named opcode constants for comparisons and frame construction.
var (
	IdentificationRequest   = newOpcode(OpIdentificationRequest)
	IdentificationReply     = newOpcode(OpIdentificationReply)
	CapabilitiesRequest     = newOpcode(OpCapabilitiesRequest)
	CapabilitiesReply       = newOpcode(OpCapabilitiesReply)
	DisplaySelfTestRequest  = newOpcode(OpDisplaySelfTestRequest)
	DisplaySelfTestReply    = newOpcode(OpDisplaySelfTestReply)
	TimingRequest           = newOpcode(OpTimingRequest)
	TimingReply             = newOpcode(OpTimingReply)
	VcpRequest              = newOpcode(OpVcpRequest)
	VcpReply                = newOpcode(OpVcpReply)
	SetVcp                  = newOpcode(OpSetVcp)
	ResetVcp                = newOpcode(OpResetVcp)
	TableReadRequest        = newOpcode(OpTableReadRequest)
	TableReadReply          = newOpcode(OpTableReadReply)
	TableWrite              = newOpcode(OpTableWrite)
	EnableApplicationReport = newOpcode(OpEnableApplicationReport)
	SaveCurrentSettings     = newOpcode(OpSaveCurrentSettings)
)

func newOpcode(name opcodeName) DdcOpcode {
	return DdcOpcode{known: true, value: opcodeByte[name], name: name}
}

// UnknownOpcode wraps a raw opcode byte this system does not name.
func UnknownOpcode(b byte) DdcOpcode {
	return DdcOpcode{known: false, value: b, name: opUnknown}
}

// OpcodeFromByte maps a wire byte to its named opcode, falling back
// to UnknownOpcode.
func OpcodeFromByte(b byte) DdcOpcode {
	if name, ok := byteToOpcodeName[b]; ok {
		return DdcOpcode{known: true, value: b, name: name}
	}
	return UnknownOpcode(b)
}

// Byte returns the wire representation of the opcode.
func (o DdcOpcode) Byte() byte { return o.value }

func (o DdcOpcode) String() string {
	switch o.name {
	case OpIdentificationRequest:
		return "IdentificationRequest"
	case OpIdentificationReply:
		return "IdentificationReply"
	case OpCapabilitiesRequest:
		return "CapabilitiesRequest"
	case OpCapabilitiesReply:
		return "CapabilitiesReply"
	case OpDisplaySelfTestRequest:
		return "DisplaySelfTestRequest"
	case OpDisplaySelfTestReply:
		return "DisplaySelfTestReply"
	case OpTimingRequest:
		return "TimingRequest"
	case OpTimingReply:
		return "TimingReply"
	case OpVcpRequest:
		return "VcpRequest"
	case OpVcpReply:
		return "VcpReply"
	case OpSetVcp:
		return "SetVcp"
	case OpResetVcp:
		return "ResetVcp"
	case OpTableReadRequest:
		return "TableReadRequest"
	case OpTableReadReply:
		return "TableReadReply"
	case OpTableWrite:
		return "TableWrite"
	case OpEnableApplicationReport:
		return "EnableApplicationReport"
	case OpSaveCurrentSettings:
		return "SaveCurrentSettings"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", o.value)
	}
}

// HasOffset reports whether this opcode's frame carries a 16-bit
// offset field, used while parsing to know how many bytes to consume.
func (o DdcOpcode) HasOffset() bool {
	switch o.name {
	case OpCapabilitiesRequest, OpCapabilitiesReply,
		OpTableReadRequest, OpTableReadReply, OpTableWrite:
		return true
	default:
		return false
	}
}

// HasVcpFeature reports whether this opcode's frame carries a VCP
// feature code byte.
//
// ResetVcp's payload shape is undocumented in the standard this was
// ported from; treated as false until a reference turns up.
func (o DdcOpcode) HasVcpFeature() bool {
	switch o.name {
	case OpVcpRequest, OpSetVcp, OpTableReadRequest, OpTableWrite:
		return true
	default:
		return false
	}
}

// IsResponse reports whether this opcode is sent by the monitor
// (true) or by the host (false). Used only when constructing a
// message from an opcode, to pick the address pair.
func (o DdcOpcode) IsResponse() bool {
	switch o.name {
	case OpIdentificationReply, OpCapabilitiesReply, OpDisplaySelfTestReply,
		OpTimingReply, OpVcpReply, OpResetVcp, OpTableReadReply:
		return true
	default:
		return false
	}
}

// Equal reports whether two opcodes refer to the same wire byte.
func (o DdcOpcode) Equal(other DdcOpcode) bool {
	return o.value == other.value
}
