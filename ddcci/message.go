package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	Build, transmit-encode, and parse DDC/CI on-wire
 *		messages, including the XOR checksum.
 *
 * Description:	Transmitted form: [sender] [0x80|length] [opcode?]
 *		[vcp_feature?] [offset_hi offset_lo?] [data...] [checksum].
 *		ParseBuffer additionally expects a leading target byte,
 *		since a Transport's receive side mirrors the address it
 *		read from onto byte 0 before handing the buffer back.
 *
 *------------------------------------------------------------------*/

const (
	ddcSlaveSendAddr  byte = 0x6f
	ddcSlaveRecvAddr  byte = 0x6e
	ddcMasterSendAddr byte = 0x51
	ddcMasterRecvAddr byte = 0x50

	lengthPrefix byte = 0x80

	// MaxDataFragmentLength is the DDC/CI data-fragment limit.
	MaxDataFragmentLength = 32
	// maxDataFragmentLengthWithExtra leaves slack for unknown opcodes
	// whose payload shape can't be determined while parsing.
	maxDataFragmentLengthWithExtra = MaxDataFragmentLength + 4
)

// DdcCiMessage is a single DDC/CI request or reply frame.
type DdcCiMessage struct {
	target      byte
	sender      byte
	opcode      *DdcOpcode
	vcpFeature  *VcpFeatureCode
	offset      *uint16
	dataLength  uint8
	data        [maxDataFragmentLengthWithExtra]byte
}

// NullResponse is the distinguished "nothing ready yet" reply frame:
// target=SlaveSend, sender=SlaveRecv, no opcode, no data.
func NullResponse() DdcCiMessage {
	return DdcCiMessage{
		target: ddcSlaveSendAddr,
		sender: ddcSlaveRecvAddr,
	}
}

// FromOpcode builds a message for the given opcode, selecting the
// address pair based on whether the opcode is a monitor response.
func FromOpcode(opcode DdcOpcode) DdcCiMessage {
	msg := DdcCiMessage{}
	if opcode.IsResponse() {
		msg.target = ddcSlaveSendAddr
		msg.sender = ddcSlaveRecvAddr
	} else {
		msg.target = ddcSlaveRecvAddr
		msg.sender = ddcMasterSendAddr
	}
	msg.opcode = &opcode
	return msg
}

// Opcode returns the message's opcode, if any.
func (m DdcCiMessage) Opcode() *DdcOpcode { return m.opcode }

// SetVcpFeature attaches a VCP feature code field and returns the
// updated message.
func (m DdcCiMessage) SetVcpFeature(feature VcpFeatureCode) DdcCiMessage {
	m.vcpFeature = &feature
	return m
}

// SetOffset attaches a 16-bit offset field and returns the updated
// message.
func (m DdcCiMessage) SetOffset(offset uint16) DdcCiMessage {
	m.offset = &offset
	return m
}

// AddOffset increments the offset field (treating an absent offset
// as zero) and returns the updated message.
func (m DdcCiMessage) AddOffset(add uint8) DdcCiMessage {
	var next uint16
	if m.offset != nil {
		next = *m.offset + uint16(add)
	} else {
		next = uint16(add)
	}
	m.offset = &next
	return m
}

// Offset returns the message's offset field, if any.
func (m DdcCiMessage) Offset() *uint16 { return m.offset }

// SetData attaches a data payload, at most MaxDataFragmentLength
// bytes, and returns the updated message.
func (m DdcCiMessage) SetData(data []byte) (DdcCiMessage, error) {
	if len(data) > MaxDataFragmentLength {
		return m, ErrInvalidLength
	}
	m.dataLength = uint8(len(data))
	copy(m.data[:], data)
	return m, nil
}

// Data returns the message's data payload.
func (m DdcCiMessage) Data() []byte { return m.data[:m.dataLength] }

// DataLen returns the length of the data payload.
func (m DdcCiMessage) DataLen() uint8 { return m.dataLength }

// Addr returns the 7-bit I2C address this message should be sent to
// or was received from.
func (m DdcCiMessage) Addr() byte { return m.target >> 1 }

// Equal compares two messages field by field; used to detect the
// null response.
func (m DdcCiMessage) Equal(other DdcCiMessage) bool {
	if m.target != other.target || m.sender != other.sender || m.dataLength != other.dataLength {
		return false
	}
	if (m.opcode == nil) != (other.opcode == nil) {
		return false
	}
	if m.opcode != nil && !m.opcode.Equal(*other.opcode) {
		return false
	}
	if (m.vcpFeature == nil) != (other.vcpFeature == nil) {
		return false
	}
	if m.vcpFeature != nil && *m.vcpFeature != *other.vcpFeature {
		return false
	}
	if (m.offset == nil) != (other.offset == nil) {
		return false
	}
	if m.offset != nil && *m.offset != *other.offset {
		return false
	}
	return string(m.Data()) == string(other.Data())
}

func (m DdcCiMessage) protocolLength() uint8 {
	length := m.dataLength
	if m.opcode != nil {
		length++
	}
	if m.vcpFeature != nil {
		length++
	}
	if m.offset != nil {
		length += 2
	}
	return length
}

func (m DdcCiMessage) computeChecksum() byte {
	checksum := m.target
	if m.target == ddcSlaveSendAddr {
		checksum = ddcMasterRecvAddr
	}
	checksum ^= m.sender
	checksum ^= lengthPrefix | m.protocolLength()
	if m.opcode != nil {
		checksum ^= m.opcode.Byte()
	}
	if m.vcpFeature != nil {
		checksum ^= m.vcpFeature.Byte()
	}
	if m.offset != nil {
		checksum ^= byte(*m.offset >> 8)
		checksum ^= byte(*m.offset)
	}
	for i := uint8(0); i < m.dataLength; i++ {
		checksum ^= m.data[i]
	}
	return checksum
}

// TransmitBuffer renders the message into its on-wire byte sequence:
// source byte, then length/opcode/fields/data/checksum. The target
// byte is never transmitted: it is the protocol's virtual addressing
// convention used to compute the checksum, while the actual I2C
// transaction carries its own address byte out of band.
func (m DdcCiMessage) TransmitBuffer() []byte {
	buf := make([]byte, 0, m.protocolLength()+2)
	buf = append(buf, m.sender)
	buf = append(buf, lengthPrefix|m.protocolLength())
	if m.opcode != nil {
		buf = append(buf, m.opcode.Byte())
	}
	if m.vcpFeature != nil {
		buf = append(buf, m.vcpFeature.Byte())
	}
	if m.offset != nil {
		buf = append(buf, byte(*m.offset>>8), byte(*m.offset))
	}
	buf = append(buf, m.data[:m.dataLength]...)
	buf = append(buf, m.computeChecksum())
	return buf
}

// ParseBuffer decodes a received frame: target byte, sender byte,
// length/opcode/fields, checksum.
func ParseBuffer(data []byte) (DdcCiMessage, error) {
	if len(data) < 3 {
		return DdcCiMessage{}, &ParserError{Context: "message header", Cause: ErrInvalidMessageFormat}
	}
	target := data[0]
	sender := data[1]
	rest := data[2:]

	maybeLength := rest[0]
	if maybeLength&lengthPrefix == lengthPrefix {
		length := maybeLength & 0x7f
		rest = rest[1:]
		msg := DdcCiMessage{target: target, sender: sender}

		if length > 0 {
			if len(rest) < 1 {
				return DdcCiMessage{}, &ParserError{Context: "opcode byte", Cause: ErrInvalidMessageFormat}
			}
			opcode := OpcodeFromByte(rest[0])
			rest = rest[1:]
			length--

			if opcode.HasVcpFeature() && length >= 1 {
				feature := VcpFeatureCodeFromByte(rest[0])
				rest = rest[1:]
				length--
				msg = msg.SetVcpFeature(feature)
			}
			if opcode.HasOffset() && length >= 2 {
				offset := uint16(rest[0])<<8 | uint16(rest[1])
				rest = rest[2:]
				length -= 2
				msg = msg.SetOffset(offset)
			}
			msg.opcode = &opcode
			if int(length) > len(rest) || length > uint8(len(msg.data)) {
				return DdcCiMessage{}, &ParserError{Context: "message data", Cause: ErrInvalidMessageFormat}
			}
			msg.dataLength = length
			copy(msg.data[:], rest[:length])
			rest = rest[length:]
		}

		if len(rest) < 1 {
			return DdcCiMessage{}, &ParserError{Context: "checksum", Cause: ErrInvalidMessageFormat}
		}
		checksum := rest[0]
		if checksum != msg.computeChecksum() {
			return DdcCiMessage{}, ErrInvalidChecksum
		}
		return msg, nil
	}

	if maybeLength == TimingReply.Byte() {
		// Alternate framing with no length-marker byte; not
		// specified closely enough to implement.
		return DdcCiMessage{}, ErrUnimplemented
	}

	return DdcCiMessage{}, ErrInvalidMessageFormat
}
