package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	Error types for the DDC/CI framing, MCCS value, and
 *		device-facade layers.
 *
 * Description:	The wire protocol and its parsers fail in a small,
 *		fixed set of ways (bad checksum, unexpected reply,
 *		unsupported feature, ...). Each gets a package-level
 *		sentinel for errors.Is, and the ones that wrap a
 *		transport-supplied cause get a typed wrapper for
 *		errors.As and for carrying the offending address/bytes.
 *
 *------------------------------------------------------------------*/

import (
	"errors"
	"fmt"
)

// Sentinels usable with errors.Is. Several are returned directly;
// others are wrapped by one of the typed errors below.
var (
	ErrInvalidLength        = errors.New("ddcci: data fragment exceeds 32 bytes")
	ErrInvalidChecksum      = errors.New("ddcci: checksum mismatch")
	ErrInvalidMessageFormat = errors.New("ddcci: unrecognized frame format")
	ErrUnexpectedReplyCode  = errors.New("ddcci: reply opcode did not match the request")
	ErrUnsupportedVcpFeature = errors.New("ddcci: monitor reported unsupported VCP feature")
	ErrUnimplemented        = errors.New("ddcci: frame shape not implemented")
)

// TransmitError wraps a Transport.Transmit failure with the address
// that was being written to.
type TransmitError struct {
	Addr  byte
	Cause error
}

func (e *TransmitError) Error() string {
	return fmt.Sprintf("ddcci: transmit to 0x%02x failed: %v", e.Addr, e.Cause)
}

func (e *TransmitError) Unwrap() error { return e.Cause }

// ReceiveError wraps a Transport.Receive failure with the address
// that was being read from.
type ReceiveError struct {
	Addr  byte
	Cause error
}

func (e *ReceiveError) Error() string {
	return fmt.Sprintf("ddcci: receive from 0x%02x failed: %v", e.Addr, e.Cause)
}

func (e *ReceiveError) Unwrap() error { return e.Cause }

// ParserError reports a structural failure decoding a message,
// capability string, or feature reply that isn't one of the named
// sentinel conditions above.
type ParserError struct {
	Context string
	Cause   error
}

func (e *ParserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ddcci: parse error in %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("ddcci: parse error in %s", e.Context)
}

func (e *ParserError) Unwrap() error { return e.Cause }

// EdidParseError reports a failure decoding a 128-byte EDID block.
type EdidParseError struct {
	Cause error
}

func (e *EdidParseError) Error() string {
	return fmt.Sprintf("ddcci: EDID parse failed: %v", e.Cause)
}

func (e *EdidParseError) Unwrap() error { return e.Cause }
