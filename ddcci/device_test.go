package ddcci

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport is an in-memory Transport double: replies are queued
// up front and handed out in order, one per Receive call.
type fakeTransport struct {
	edid        Edid
	replies     [][]byte
	replyIdx    int
	transmitted [][]byte
	delays      []uint64
}

func (f *fakeTransport) Transmit(addr byte, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.transmitted = append(f.transmitted, cp)
	return nil
}

func (f *fakeTransport) Receive(addr byte) ([I2CReceiveBufferSize]byte, error) {
	var buf [I2CReceiveBufferSize]byte
	if f.replyIdx >= len(f.replies) {
		return buf, errors.New("no more queued replies")
	}
	copy(buf[:], f.replies[f.replyIdx])
	f.replyIdx++
	return buf, nil
}

func (f *fakeTransport) Delay(ms uint64) { f.delays = append(f.delays, ms) }

func (f *fakeTransport) ReadEdid() (Edid, error) { return f.edid, nil }

// asReceivedBuffer mimics a Transport's receive side: the I2C address
// a reply was read from gets mirrored onto byte 0, ahead of the frame
// bytes the monitor actually put on the wire (TransmitBuffer's
// output). Real device.exchange() only ever sees buffers shaped this
// way, since they come back through Transport.Receive, never through
// TransmitBuffer directly.
func asReceivedBuffer(msg DdcCiMessage) []byte {
	return append([]byte{msg.target}, msg.TransmitBuffer()...)
}

func capabilitiesReplyFrame(t *testing.T, offset uint16, payload []byte) []byte {
	t.Helper()
	msg := FromOpcode(CapabilitiesReply).SetOffset(offset)
	msg, err := msg.SetData(payload)
	require.NoError(t, err)
	return asReceivedBuffer(msg)
}

func vcpReplyFrame(t *testing.T, feature VcpFeatureCode, resultCode byte, word uint32) []byte {
	t.Helper()
	data := []byte{
		resultCode, feature.Byte(), 0x00,
		byte(word >> 24), byte(word >> 16), byte(word >> 8), byte(word),
	}
	msg := FromOpcode(VcpReply)
	msg, err := msg.SetData(data)
	require.NoError(t, err)
	return asReceivedBuffer(msg)
}

func TestReadCapabilitiesFragmentedPaging(t *testing.T) {
	full := "(prot(monitor)type(lcd)model(XYZ)cmds(01 02 03)mccs_ver(2.1)vcp(10 12))"
	b := []byte(full)
	require.Greater(t, len(b), 64)

	transport := &fakeTransport{
		replies: [][]byte{
			capabilitiesReplyFrame(t, 0, b[0:32]),
			capabilitiesReplyFrame(t, 32, b[32:64]),
			capabilitiesReplyFrame(t, 64, b[64:]),
			capabilitiesReplyFrame(t, uint16(len(b)), nil),
		},
	}
	dev, err := NewMonitorDevice(transport)
	require.NoError(t, err)

	caps, err := dev.ReadCapabilities()
	require.NoError(t, err)
	assert.Equal(t, "XYZ", caps.Model)

	require.Len(t, transport.transmitted, 4)
	require.Len(t, transport.delays, 4)
	for _, d := range transport.delays {
		assert.Equal(t, uint64(capabilitiesDelayMs), d)
	}
}

func TestGetVcpFeatureLuminance(t *testing.T) {
	transport := &fakeTransport{
		replies: [][]byte{vcpReplyFrame(t, LuminanceCode, 0x00, 0x00640032)},
	}
	dev, err := NewMonitorDevice(transport)
	require.NoError(t, err)

	value, err := GetVcpFeature[LuminanceValue, *LuminanceValue](dev)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x64), value.Max)
	assert.Equal(t, uint16(0x32), value.Val)
}

func TestGetVcpFeatureRetriesOnNullResponse(t *testing.T) {
	transport := &fakeTransport{
		replies: [][]byte{
			asReceivedBuffer(NullResponse()),
			vcpReplyFrame(t, LuminanceCode, 0x00, 0x00640032),
		},
	}
	dev, err := NewMonitorDevice(transport)
	require.NoError(t, err)

	value, err := GetVcpFeature[LuminanceValue, *LuminanceValue](dev)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x32), value.Val)
	assert.Len(t, transport.transmitted, 2)
}

func TestGetVcpFeatureUnsupportedCode(t *testing.T) {
	transport := &fakeTransport{
		replies: [][]byte{vcpReplyFrame(t, LuminanceCode, 0x01, 0)},
	}
	dev, err := NewMonitorDevice(transport)
	require.NoError(t, err)

	_, err = GetVcpFeature[LuminanceValue, *LuminanceValue](dev)
	assert.ErrorIs(t, err, ErrUnsupportedVcpFeature)
}

func TestSetVcpFeatureWiresLuminance(t *testing.T) {
	transport := &fakeTransport{}
	dev, err := NewMonitorDevice(transport)
	require.NoError(t, err)

	value := LuminanceValue{Max: 100, Val: 50}
	err = SetVcpFeature(dev, value)
	require.NoError(t, err)

	require.Len(t, transport.transmitted, 1)
	buf := transport.transmitted[0]
	assert.Equal(t, SetVcp.Byte(), buf[2])
	assert.Equal(t, LuminanceCode.Byte(), buf[3])
	assert.Equal(t, byte(0x00), buf[4]) // vh(word)
	assert.Equal(t, byte(50), buf[5])   // vl(word)

	require.Len(t, transport.delays, 1)
	assert.Equal(t, uint64(setVcpDelayMs), transport.delays[0])
}

func TestSaveCurrentSettingsNoDelayNoReply(t *testing.T) {
	transport := &fakeTransport{}
	dev, err := NewMonitorDevice(transport)
	require.NoError(t, err)

	require.NoError(t, dev.SaveCurrentSettings())
	assert.Empty(t, transport.delays)
	require.Len(t, transport.transmitted, 1)
	assert.Equal(t, SaveCurrentSettings.Byte(), transport.transmitted[0][2])
}
