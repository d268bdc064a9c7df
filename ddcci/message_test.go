package ddcci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNullResponseWireBytes(t *testing.T) {
	msg := NullResponse()
	assert.Equal(t, []byte{0x6E, 0x80, 0xBE}, msg.TransmitBuffer())
}

func TestParseNullResponse(t *testing.T) {
	parsed, err := ParseBuffer(asReceivedBuffer(NullResponse()))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(NullResponse()))
}

func TestSetVcpLuminanceWireBytes(t *testing.T) {
	msg := FromOpcode(SetVcp).SetVcpFeature(LuminanceCode)
	msg, err := msg.SetData([]byte{0x00, 50})
	require.NoError(t, err)

	buf := msg.TransmitBuffer()
	assert.Equal(t, byte(0x51), buf[0], "sender is MasterSend")
	assert.Equal(t, byte(0x84), buf[1], "length nibble is 4: opcode+feature+2 data bytes")
	assert.Equal(t, SetVcp.Byte(), buf[2])
	assert.Equal(t, LuminanceCode.Byte(), buf[3])
	assert.Equal(t, byte(0x00), buf[4])
	assert.Equal(t, byte(50), buf[5])
}

func TestMessageRoundTrip(t *testing.T) {
	msg := FromOpcode(VcpRequest).SetVcpFeature(LuminanceCode)
	buf := asReceivedBuffer(msg)

	parsed, err := ParseBuffer(buf)
	require.NoError(t, err)
	assert.True(t, msg.Equal(parsed))
}

func TestParseBufferRejectsBadChecksum(t *testing.T) {
	buf := asReceivedBuffer(NullResponse())
	buf[len(buf)-1] ^= 0xFF
	_, err := ParseBuffer(buf)
	assert.ErrorIs(t, err, ErrInvalidChecksum)
}

func TestParseBufferRejectsShortInput(t *testing.T) {
	_, err := ParseBuffer([]byte{0x6F, 0x6E})
	assert.Error(t, err)
}

// A noisy frame can declare a data length (after consuming the opcode
// byte) that still fits within the remaining buffer bytes but exceeds
// the fixed data array's capacity. ParseBuffer must reject this rather
// than truncate into the array and leave dataLength pointing past it,
// which would panic on a later Data() call.
func TestParseBufferRejectsOversizedDeclaredLength(t *testing.T) {
	const declaredLength = 41 // opcode byte + 40 data bytes, 40 > len(msg.data)
	buf := make([]byte, 0, declaredLength+3)
	buf = append(buf, 0x6F, 0x6E) // target, sender
	buf = append(buf, lengthPrefix|declaredLength)
	buf = append(buf, VcpReply.Byte())
	buf = append(buf, make([]byte, declaredLength-1)...)

	_, err := ParseBuffer(buf)
	var parserErr *ParserError
	require.ErrorAs(t, err, &parserErr)
}

func TestSetDataRejectsOversizedPayload(t *testing.T) {
	_, err := DdcCiMessage{}.SetData(make([]byte, MaxDataFragmentLength+1))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

// Every message built from SetVcp or VcpRequest round-trips through
// TransmitBuffer/ParseBuffer with its checksum byte preserved byte
// for byte.
func TestMessageRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(tr *rapid.T) {
		opcode := rapid.SampledFrom([]DdcOpcode{VcpRequest, SetVcp}).Draw(tr, "opcode")
		feature := rapid.SampledFrom([]VcpFeatureCode{LuminanceCode, ContrastCode, InputSelectCode}).Draw(tr, "feature")
		dataLen := rapid.IntRange(0, MaxDataFragmentLength).Draw(tr, "dataLen")
		data := rapid.SliceOfN(rapid.Byte(), dataLen, dataLen).Draw(tr, "data")

		msg := FromOpcode(opcode).SetVcpFeature(feature)
		msg, err := msg.SetData(data)
		require.NoError(tr, err)

		buf := asReceivedBuffer(msg)
		parsed, err := ParseBuffer(buf)
		require.NoError(tr, err)
		assert.True(tr, msg.Equal(parsed))
		assert.Equal(tr, buf[len(buf)-1], parsed.computeChecksum())
	})
}

// CapabilitiesRequest messages round-trip with their offset field
// set, since that opcode always carries one on the wire.
func TestMessageRoundTripWithOffsetProperty(t *testing.T) {
	rapid.Check(t, func(tr *rapid.T) {
		offset := rapid.Uint16().Draw(tr, "offset")
		dataLen := rapid.IntRange(0, MaxDataFragmentLength).Draw(tr, "dataLen")
		data := rapid.SliceOfN(rapid.Byte(), dataLen, dataLen).Draw(tr, "data")

		msg := FromOpcode(CapabilitiesRequest).SetOffset(offset)
		msg, err := msg.SetData(data)
		require.NoError(tr, err)

		buf := asReceivedBuffer(msg)
		parsed, err := ParseBuffer(buf)
		require.NoError(tr, err)
		assert.True(tr, msg.Equal(parsed))
	})
}
