package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	Decode the 7-byte payload of a VcpReply frame.
 *
 *------------------------------------------------------------------*/

// ResultCode is the first byte of a feature-reply payload.
type ResultCode int

const (
	NoError ResultCode = iota
	UnsupportedCode
)

// VcpType is the third byte of a feature-reply payload.
type VcpType int

const (
	SetParameter VcpType = iota
	Momentary
)

// FeatureReplyMessage is the decoded payload of a VcpReply frame.
type FeatureReplyMessage struct {
	ResultCode ResultCode
	Feature    VcpFeatureCode
	Type       VcpType
	VcpData    uint32
}

// ParseFeatureReply decodes a VcpReply frame's 7-byte data payload:
// result code, echoed feature code, VCP type, then MH/ML/VH/VL.
func ParseFeatureReply(data []byte) (FeatureReplyMessage, error) {
	if len(data) < 7 {
		return FeatureReplyMessage{}, &ParserError{Context: "feature reply"}
	}

	var rc ResultCode
	switch data[0] {
	case 0x00:
		rc = NoError
	case 0x01:
		rc = UnsupportedCode
	default:
		return FeatureReplyMessage{}, &ParserError{Context: "feature reply result code"}
	}

	var ty VcpType
	switch data[2] {
	case 0x00:
		ty = SetParameter
	case 0x01:
		ty = Momentary
	default:
		return FeatureReplyMessage{}, &ParserError{Context: "feature reply vcp type"}
	}

	mhB, mlB, vhB, vlB := data[3], data[4], data[5], data[6]
	return FeatureReplyMessage{
		ResultCode: rc,
		Feature:    VcpFeatureCodeFromByte(data[1]),
		Type:       ty,
		VcpData:    uint32(mhB)<<24 | uint32(mlB)<<16 | uint32(vhB)<<8 | uint32(vlB),
	}, nil
}
