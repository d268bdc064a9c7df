package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	MonitorDevice ties a Transport to a parsed EDID and
 *		exposes the four DDC/CI exchanges (capabilities, get
 *		VCP feature, set VCP feature, save current settings)
 *		with their required inter-message delays and retries.
 *
 * Description:	Generic GetVcpFeature/SetVcpFeature stand in for the
 *		source's trait-associated-function dispatch: a type
 *		parameter pair (value type, pointer-to-value-type
 *		satisfying VcpValue) lets each call site name the
 *		concrete VcpValue it wants without a runtime type
 *		switch.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

const (
	capabilitiesDelayMs  = 50
	vcpRequestDelayMs    = 40
	setVcpDelayMs        = 50
	vcpRequestMaxRetries = 3
)

// MonitorInfo is the identity data read once at device construction.
type MonitorInfo struct {
	edid Edid
}

// ManufactureYear returns the year the panel reports manufacture in,
// decoded from the EDID Year field (years since 1990).
func (m MonitorInfo) ManufactureYear() int { return 1990 + int(m.edid.Header.Year) }

// Serial returns the EDID serial number field.
func (m MonitorInfo) Serial() uint32 { return m.edid.Header.Serial }

// Edid returns the parsed EDID block backing this info.
func (m MonitorInfo) Edid() Edid { return m.edid }

// MonitorDevice is a single DDC/CI-capable display, addressed through
// a host-provided Transport.
type MonitorDevice struct {
	transport Transport
	info      MonitorInfo
	addr      byte
}

// NewMonitorDevice reads the device's EDID over transport and wraps it
// for DDC/CI exchanges.
func NewMonitorDevice(transport Transport) (*MonitorDevice, error) {
	edid, err := transport.ReadEdid()
	if err != nil {
		return nil, fmt.Errorf("read edid: %w", err)
	}
	return &MonitorDevice{
		transport: transport,
		info:      MonitorInfo{edid: edid},
		addr:      FromOpcode(VcpRequest).Addr(),
	}, nil
}

// Info returns the device's identity data.
func (d *MonitorDevice) Info() MonitorInfo { return d.info }

// exchange transmits msg, waits delayMs, then reads and parses the
// monitor's reply. The delay sits between transmit and receive, not
// before transmit, because it's the monitor's processing time.
func (d *MonitorDevice) exchange(msg DdcCiMessage, delayMs uint64) (DdcCiMessage, error) {
	if err := d.transport.Transmit(msg.Addr(), msg.TransmitBuffer()); err != nil {
		return DdcCiMessage{}, &TransmitError{Addr: msg.Addr(), Cause: err}
	}
	d.transport.Delay(delayMs)
	buf, err := d.transport.Receive(d.addr)
	if err != nil {
		return DdcCiMessage{}, &ReceiveError{Addr: d.addr, Cause: err}
	}
	return ParseBuffer(buf[:])
}

// ReadCapabilities fetches the monitor's MCCS capability string,
// paging through it MaxDataFragmentLength bytes at a time until the
// monitor signals completion with a zero-length fragment.
func (d *MonitorDevice) ReadCapabilities() (Capabilities, error) {
	var raw []byte
	var offset uint16
	for {
		req := FromOpcode(CapabilitiesRequest).SetOffset(offset)
		reply, err := d.exchange(req, capabilitiesDelayMs)
		if err != nil {
			return Capabilities{}, err
		}
		if reply.Opcode() == nil || !reply.Opcode().Equal(CapabilitiesReply) {
			return Capabilities{}, ErrUnexpectedReplyCode
		}
		fragment := reply.Data()
		if len(fragment) == 0 {
			break
		}
		raw = append(raw, fragment...)
		offset += uint16(len(fragment))
	}
	return ParseCapabilities(strings.TrimRight(string(raw), "\x00"))
}

// GetVcpFeature reads the VCP feature named by PT's FeatureCode into a
// freshly zeroed T, retrying through the monitor's null-response
// backoff up to vcpRequestMaxRetries times.
func GetVcpFeature[T any, PT interface {
	*T
	VcpValue
}](d *MonitorDevice) (T, error) {
	var value T
	pv := PT(&value)
	feature := pv.FeatureCode()

	req := FromOpcode(VcpRequest).SetVcpFeature(feature)

	var reply DdcCiMessage
	for attempt := 0; attempt <= vcpRequestMaxRetries; attempt++ {
		r, err := d.exchange(req, vcpRequestDelayMs)
		if err != nil {
			return value, err
		}
		if r.Equal(NullResponse()) {
			continue
		}
		reply = r
		break
	}

	if reply.Opcode() == nil || !reply.Opcode().Equal(VcpReply) {
		return value, ErrUnexpectedReplyCode
	}

	fr, err := ParseFeatureReply(reply.Data())
	if err != nil {
		return value, err
	}
	if fr.ResultCode == UnsupportedCode {
		return value, ErrUnsupportedVcpFeature
	}

	pv.SetWord(fr.VcpData)
	return value, nil
}

// SetVcpFeature writes value's current state to its VCP feature code.
// The monitor sends no reply to a SetVcp message.
func SetVcpFeature[T any, PT interface {
	*T
	VcpValue
}](d *MonitorDevice, value T) error {
	pv := PT(&value)
	word := pv.ToWord()

	req := FromOpcode(SetVcp).SetVcpFeature(pv.FeatureCode())
	req, err := req.SetData([]byte{vh(word), vl(word)})
	if err != nil {
		return err
	}

	if err := d.transport.Transmit(req.Addr(), req.TransmitBuffer()); err != nil {
		return &TransmitError{Addr: req.Addr(), Cause: err}
	}
	d.transport.Delay(setVcpDelayMs)
	return nil
}

// SaveCurrentSettings tells the monitor to persist its current VCP
// state to non-volatile memory. No delay or reply follows.
func (d *MonitorDevice) SaveCurrentSettings() error {
	req := FromOpcode(SaveCurrentSettings)
	if err := d.transport.Transmit(req.Addr(), req.TransmitBuffer()); err != nil {
		return &TransmitError{Addr: req.Addr(), Cause: err}
	}
	return nil
}
