package linux

/*------------------------------------------------------------------
 *
 * Purpose:	ddcci.Transport over a Linux /dev/i2c-N character device,
 *		using embd's I2CBus for the raw reads/writes and the
 *		E-DDC segment-pointer sequence to source the EDID.
 *
 *------------------------------------------------------------------*/

import (
	"time"

	"github.com/kidoman/embd"

	"github.com/ju6ge/libmonitor/ddcci"
)

// receiveEdidRetries bounds the number of E-DDC read attempts before
// giving up: some displays answer the segment-pointer reset with a
// NAK on the first try depending on which input is active.
const receiveEdidRetries = 3

// I2CTransport implements ddcci.Transport against a single numbered
// I2C bus.
type I2CTransport struct {
	bus    embd.I2CBus
	sysnum int
}

// NewI2CTransport opens /dev/i2c-<sysnum> through embd.
func NewI2CTransport(sysnum int) *I2CTransport {
	return &I2CTransport{bus: embd.NewI2CBus(byte(sysnum)), sysnum: sysnum}
}

// Close releases the underlying bus handle.
func (t *I2CTransport) Close() error { return t.bus.Close() }

// Transmit implements ddcci.Transport.
func (t *I2CTransport) Transmit(addr byte, data []byte) error {
	return t.bus.WriteBytes(addr, data)
}

// Receive implements ddcci.Transport. Byte 0 is stuffed with the
// read-address marker the ddcci package expects; embd's ReadBytes
// only returns the payload.
func (t *I2CTransport) Receive(addr byte) ([ddcci.I2CReceiveBufferSize]byte, error) {
	var buf [ddcci.I2CReceiveBufferSize]byte
	buf[0] = addr<<1 | 0x1
	payload, err := t.bus.ReadBytes(addr, ddcci.I2CReceiveBufferSize-1)
	if err != nil {
		return buf, err
	}
	copy(buf[1:], payload)
	return buf, nil
}

// Delay implements ddcci.Transport.
func (t *I2CTransport) Delay(ms uint64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// ReadEdid implements ddcci.Transport via the E-DDC sequence: reset
// the segment pointer (best effort, not every display honors it on
// every input), then write-0/read-128 against the EDID address,
// retrying transient failures.
func (t *I2CTransport) ReadEdid() (ddcci.Edid, error) {
	_ = t.bus.WriteBytes(ddcci.AddrSegmentPointer, []byte{0x00})

	var lastErr error
	for attempt := 0; attempt < receiveEdidRetries; attempt++ {
		if err := t.bus.WriteBytes(ddcci.AddrEdid, []byte{0x00}); err != nil {
			lastErr = err
			continue
		}
		data, err := t.bus.ReadBytes(ddcci.AddrEdid, 128)
		if err != nil {
			lastErr = err
			continue
		}
		edid, err := ddcci.ParseEdid(data)
		if err != nil {
			lastErr = err
			continue
		}
		return edid, nil
	}
	return ddcci.Edid{}, lastErr
}
