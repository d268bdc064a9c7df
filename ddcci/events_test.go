package ddcci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newControlValueReply(t *testing.T, value byte) []byte {
	t.Helper()
	data := []byte{0x00, NewControlValueCode.Byte(), 0x00, 0x00, 0x00, 0x00, value}
	msg := FromOpcode(VcpReply)
	msg, err := msg.SetData(data)
	require.NoError(t, err)
	return asReceivedBuffer(msg)
}

func activeControlReply(t *testing.T, code byte) []byte {
	t.Helper()
	data := []byte{0x00, ActiveControl.Byte(), 0x00, 0x00, 0x00, 0x00, code}
	msg := FromOpcode(VcpReply)
	msg, err := msg.SetData(data)
	require.NoError(t, err)
	return asReceivedBuffer(msg)
}

func TestChangeEventQueueEmptyWhenNothingPresent(t *testing.T) {
	transport := &fakeTransport{
		replies: [][]byte{newControlValueReply(t, 0x01)}, // Finished
	}
	dev, err := NewMonitorDevice(transport)
	require.NoError(t, err)

	q := NewChangeEventQueue(dev)
	_, ok, err := q.Next()
	require.NoError(t, err)
	assert.False(t, ok)

	// Queue stays done; a second call shouldn't touch the transport again.
	_, ok, err = q.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChangeEventQueueDrainsLuminanceThenStops(t *testing.T) {
	transport := &fakeTransport{
		replies: [][]byte{
			newControlValueReply(t, 0x02),           // NewControlValuesPresent
			activeControlReply(t, LuminanceCode.Byte()),
			vcpReplyFrame(t, LuminanceCode, 0x00, 0x00640032),
			activeControlReply(t, CodePage.Byte()),
			asReceivedBuffer(NullResponse()), // reply to the Finished SetVcp (ignored)
		},
	}
	dev, err := NewMonitorDevice(transport)
	require.NoError(t, err)

	q := NewChangeEventQueue(dev)

	change, ok, err := q.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, LuminanceCode, change.Feature)
	lum, isLum := change.Value.(*LuminanceValue)
	require.True(t, isLum)
	assert.Equal(t, uint16(0x32), lum.Val)

	_, ok, err = q.Next()
	require.NoError(t, err)
	assert.False(t, ok, "CodePage terminates the FIFO")
}
