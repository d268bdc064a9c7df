package ddcci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeatureReplyLuminance(t *testing.T) {
	// Result=NoError, feature=Luminance, type=SetParameter, MH=0x00
	// ML=0x64 (max 100) VH=0x00 VL=0x32 (current 50).
	data := []byte{0x00, 0x10, 0x00, 0x00, 0x64, 0x00, 0x32}
	reply, err := ParseFeatureReply(data)
	require.NoError(t, err)

	assert.Equal(t, NoError, reply.ResultCode)
	assert.Equal(t, LuminanceCode, reply.Feature)
	assert.Equal(t, SetParameter, reply.Type)
	assert.Equal(t, uint32(0x00640032), reply.VcpData)

	var value LuminanceValue
	value.SetWord(reply.VcpData)
	assert.Equal(t, uint16(0x64), value.Max)
	assert.Equal(t, uint16(0x32), value.Val)
}

func TestParseFeatureReplyUnsupportedCode(t *testing.T) {
	data := []byte{0x01, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00}
	reply, err := ParseFeatureReply(data)
	require.NoError(t, err)
	assert.Equal(t, UnsupportedCode, reply.ResultCode)
}

func TestParseFeatureReplyRejectsShortInput(t *testing.T) {
	_, err := ParseFeatureReply([]byte{0x00, 0x10})
	assert.Error(t, err)
}

func TestParseFeatureReplyRejectsBadResultCode(t *testing.T) {
	data := []byte{0x02, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00}
	_, err := ParseFeatureReply(data)
	assert.Error(t, err)
}
