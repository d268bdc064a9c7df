package ddcci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapabilitiesFullExample(t *testing.T) {
	caps, err := ParseCapabilities("(prot(monitor)type(lcd)model(XYZ)cmds(01 02 03)mccs_ver(2.1)vcp(10 12 60(0F 10 11)))")
	require.NoError(t, err)

	require.NotNil(t, caps.Protocol)
	assert.Equal(t, ProtocolMonitor, *caps.Protocol)
	require.NotNil(t, caps.Type)
	assert.Equal(t, DisplayLCD, *caps.Type)
	assert.Equal(t, "XYZ", caps.Model)

	require.Len(t, caps.Commands, 3)
	assert.True(t, caps.Commands[0].Equal(VcpRequest))
	assert.True(t, caps.Commands[1].Equal(VcpReply))
	assert.True(t, caps.Commands[2].Equal(SetVcp))

	require.NotNil(t, caps.MccsVersion)
	assert.Equal(t, Version{Major: 2, Minor: 1}, *caps.MccsVersion)

	require.Len(t, caps.VcpFeatures, 3)

	assert.Equal(t, VcpContinuous, caps.VcpFeatures[0].Kind)
	assert.Equal(t, LuminanceCode, caps.VcpFeatures[0].Feature)

	assert.Equal(t, VcpContinuous, caps.VcpFeatures[1].Kind)
	assert.Equal(t, ContrastCode, caps.VcpFeatures[1].Feature)

	input := caps.VcpFeatures[2]
	assert.Equal(t, VcpDisplayInput, input.Kind)
	assert.Equal(t, InputSelectCode, input.Feature)
	require.Len(t, input.Inputs, 3)
	assert.Equal(t, "DisplayPort1", input.Inputs[0].String())
	assert.Equal(t, "DisplayPort2", input.Inputs[1].String())
	assert.Equal(t, "Hdmi1", input.Inputs[2].String())
}

func TestParseCapabilitiesWithoutOuterWrapper(t *testing.T) {
	caps, err := ParseCapabilities("prot(monitor)model(ABC)")
	require.NoError(t, err)
	assert.Equal(t, "ABC", caps.Model)
	require.NotNil(t, caps.Protocol)
}

func TestParseCapabilitiesMccsVersionConcatenatedForm(t *testing.T) {
	v, err := parseMccsVersion("0201")
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 2, Minor: 1}, v)
}

func TestParseCapabilitiesUnknownTag(t *testing.T) {
	caps, err := ParseCapabilities("(foo(bar))")
	require.NoError(t, err)
	require.Len(t, caps.UnknownTags, 1)
	assert.Equal(t, "foo", caps.UnknownTags[0].Name)
	assert.Equal(t, "bar", string(caps.UnknownTags[0].Data.Bytes))
}

func TestParseCapabilitiesBinaryEntry(t *testing.T) {
	caps, err := ParseCapabilities("(extra bin(3(abc)))")
	require.NoError(t, err)
	require.Len(t, caps.UnknownTags, 1)
	assert.True(t, caps.UnknownTags[0].Data.IsBinary)
	assert.Equal(t, []byte("abc"), caps.UnknownTags[0].Data.Bytes)
}

func TestParseCapabilitiesMsWhql(t *testing.T) {
	caps, err := ParseCapabilities("(mswhql(1))")
	require.NoError(t, err)
	require.NotNil(t, caps.MsWhql)
	assert.Equal(t, uint8(1), *caps.MsWhql)
}

func TestParseCapabilitiesRejectsUnbalancedParens(t *testing.T) {
	_, err := ParseCapabilities("(prot(monitor)")
	assert.Error(t, err)
}

func TestSplitVcpEntriesWithNestedParens(t *testing.T) {
	entries := splitVcpEntries("10 12 60(0F 10 11)")
	assert.Equal(t, []string{"10", "12", "60(0F 10 11)"}, entries)
}
