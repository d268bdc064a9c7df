package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	Parse the MCCS capability string a monitor returns from
 *		a CapabilitiesRequest exchange.
 *
 * Description:	The string is a sequence of bracketed `tag(contents)`
 *		entries, optionally wrapped in one more pair of
 *		grouping parens, with contents that may themselves
 *		contain further bracketed data (e.g. `vcp(10 12
 *		60(0F 10 11))`). A raw binary alternative `tag
 *		bin(len(bytes))` is recognized but not produced by the
 *		monitors this system targets.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"strings"
)

// Protocol is the display protocol class reported by the `prot` tag.
type Protocol struct {
	known   bool
	unknown string
}

var (
	ProtocolMonitor = Protocol{known: true}
	protocolDisplay = Protocol{known: true, unknown: "display-marker"}
)

func newProtocol(s string) Protocol {
	switch s {
	case "monitor":
		return ProtocolMonitor
	case "display":
		return protocolDisplay
	default:
		return Protocol{unknown: s}
	}
}

func (p Protocol) String() string {
	switch {
	case p == ProtocolMonitor:
		return "monitor"
	case p == protocolDisplay:
		return "display"
	default:
		return p.unknown
	}
}

// DisplayTechnology is the panel technology reported by the `type`
// tag; comparison with the named constants is case-insensitive at
// parse time.
type DisplayTechnology struct {
	known   bool
	unknown string
}

var (
	DisplayCRT = DisplayTechnology{known: true, unknown: "crt-marker"}
	DisplayLCD = DisplayTechnology{known: true, unknown: "lcd-marker"}
	DisplayLED = DisplayTechnology{known: true, unknown: "led-marker"}
)

func newDisplayTechnology(s string) DisplayTechnology {
	switch strings.ToLower(s) {
	case "crt":
		return DisplayCRT
	case "lcd":
		return DisplayLCD
	case "led":
		return DisplayLED
	default:
		return DisplayTechnology{unknown: s}
	}
}

func (d DisplayTechnology) String() string {
	switch {
	case d == DisplayCRT:
		return "crt"
	case d == DisplayLCD:
		return "lcd"
	case d == DisplayLED:
		return "led"
	default:
		return d.unknown
	}
}

// Version is an MCCS specification version code.
type Version struct {
	Major uint8
	Minor uint8
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// UnknownData is the payload of an UnknownTag: a capability entry
// this parser doesn't recognize, preserved verbatim.
type UnknownData struct {
	IsBinary bool
	Bytes    []byte // raw bytes, for either the string or binary case
}

// UnknownTag is an unrecognized entry retained from the capability
// string rather than dropped.
type UnknownTag struct {
	Name string
	Data UnknownData
}

// VcpCapabilityKind discriminates the VcpCapability payload.
type VcpCapabilityKind int

const (
	VcpLanguage VcpCapabilityKind = iota
	VcpDisplayInput
	VcpContinuous
	VcpUnimplementedDiscrete
	VcpUnimplemented
)

// VcpCapability is one feature code entry from a parsed `vcp(...)`
// capability tag, along with its permitted discrete values when the
// monitor enumerated any.
type VcpCapability struct {
	Kind      VcpCapabilityKind
	Feature   VcpFeatureCode
	Languages []OsdLanguages
	Inputs    []InputSource
	Discrete  []AnonymousVcpValue
}

func vcpCapabilityFromFeatureCode(code VcpFeatureCode) VcpCapability {
	switch code {
	case OsdLanguageCode:
		return VcpCapability{Kind: VcpLanguage, Feature: code}
	case InputSelectCode:
		return VcpCapability{Kind: VcpDisplayInput, Feature: code}
	case LuminanceCode, ContrastCode:
		return VcpCapability{Kind: VcpContinuous, Feature: code}
	default:
		return VcpCapability{Kind: VcpUnimplemented, Feature: code}
	}
}

func (c *VcpCapability) addDiscreteValue(value byte) {
	word := uint32(value)
	switch c.Kind {
	case VcpLanguage:
		var lang OsdLanguages
		lang.SetWord(word)
		c.Languages = append(c.Languages, lang)
	case VcpDisplayInput:
		var in InputSource
		in.SetWord(word)
		c.Inputs = append(c.Inputs, in)
	case VcpUnimplementedDiscrete:
		c.Discrete = append(c.Discrete, AnonymousVcpValue(word))
	default:
		// Continuous/Unimplemented carry no discrete value set.
	}
}

// Capabilities is the structured form of a parsed MCCS capability
// string.
type Capabilities struct {
	Protocol     *Protocol
	Type         *DisplayTechnology
	Model        string
	Commands     []DdcOpcode
	MsWhql       *uint8
	MccsVersion  *Version
	VcpFeatures  []VcpCapability
	UnknownTags  []UnknownTag
}

// capEntry is one raw `tag(contents)` entry from the string, before
// tag-specific parsing.
type capEntry struct {
	tag      string
	isBinary bool
	content  []byte // string value bytes, or for binary: the "len(bytes)" text
}

// tokenizeCapabilities splits a capability string into its top-level
// entries. A bare, tag-less `(...)` group is a pure wrapper and is
// unwrapped and re-scanned rather than emitted as an entry.
func tokenizeCapabilities(s []byte) ([]capEntry, error) {
	var entries []capEntry
	i := 0
	n := len(s)
	for i < n {
		for i < n && isSpace(s[i]) {
			i++
		}
		if i >= n {
			break
		}
		if s[i] == '(' {
			end, err := matchParen(s, i)
			if err != nil {
				return nil, err
			}
			inner, err := tokenizeCapabilities(s[i+1 : end])
			if err != nil {
				return nil, err
			}
			entries = append(entries, inner...)
			i = end + 1
			continue
		}

		tagStart := i
		for i < n && s[i] != '(' && !isSpace(s[i]) {
			i++
		}
		tag := string(s[tagStart:i])
		for i < n && isSpace(s[i]) {
			i++
		}

		isBinary := false
		if strings.HasPrefix(string(s[i:min(i+3, n)]), "bin") {
			isBinary = true
			i += 3
			for i < n && isSpace(s[i]) {
				i++
			}
		}
		if i >= n || s[i] != '(' {
			return nil, &ParserError{Context: fmt.Sprintf("capability entry %q", tag), Cause: ErrInvalidMessageFormat}
		}
		end, err := matchParen(s, i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, capEntry{tag: tag, isBinary: isBinary, content: s[i+1 : end]})
		i = end + 1
	}
	return entries, nil
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// matchParen returns the index of the ')' matching the '(' at open.
func matchParen(s []byte, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &ParserError{Context: "capability entry", Cause: ErrInvalidMessageFormat}
}

// parseBinaryEntry decodes the `len(bytes)` content of a `tag
// bin(...)` entry.
func parseBinaryEntry(content []byte) ([]byte, error) {
	idx := 0
	for idx < len(content) && content[idx] != '(' {
		idx++
	}
	if idx >= len(content) {
		return nil, &ParserError{Context: "binary capability entry", Cause: ErrInvalidMessageFormat}
	}
	length, err := strconv.Atoi(strings.TrimSpace(string(content[:idx])))
	if err != nil {
		return nil, &ParserError{Context: "binary capability entry length", Cause: err}
	}
	end, err := matchParen(content, idx)
	if err != nil {
		return nil, err
	}
	data := content[idx+1 : end]
	if len(data) != length {
		return nil, &ParserError{Context: "binary capability entry length mismatch", Cause: ErrInvalidMessageFormat}
	}
	return data, nil
}

func parseHexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func parseHexArray(s string) ([]byte, error) {
	fields := strings.Fields(s)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		b, err := parseHexByte(f)
		if err != nil {
			return nil, &ParserError{Context: "hex byte list", Cause: err}
		}
		out = append(out, b)
	}
	return out, nil
}

func parseMccsVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if maj, min, ok := strings.Cut(s, "."); ok {
		majV, err1 := strconv.ParseUint(maj, 10, 8)
		minV, err2 := strconv.ParseUint(min, 10, 8)
		if err1 == nil && err2 == nil {
			return Version{Major: uint8(majV), Minor: uint8(minV)}, nil
		}
	}
	if len(s) == 4 {
		majV, err1 := strconv.ParseUint(s[:2], 10, 8)
		minV, err2 := strconv.ParseUint(s[2:], 10, 8)
		if err1 == nil && err2 == nil {
			return Version{Major: uint8(majV), Minor: uint8(minV)}, nil
		}
	}
	return Version{}, &ParserError{Context: "mccs_ver", Cause: ErrInvalidMessageFormat}
}

func parseVcpEntries(s string) ([]VcpCapability, error) {
	fields := splitVcpEntries(s)
	caps := make([]VcpCapability, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		codeStr, rest, hasValues := strings.Cut(f, "(")
		code, err := parseHexByte(codeStr)
		if err != nil {
			return nil, &ParserError{Context: "vcp feature code", Cause: err}
		}
		vcap := vcpCapabilityFromFeatureCode(VcpFeatureCodeFromByte(code))
		if hasValues {
			rest = strings.TrimSuffix(rest, ")")
			if vcap.Kind == VcpUnimplemented {
				vcap.Kind = VcpUnimplementedDiscrete
			}
			values, err := parseHexArray(rest)
			if err != nil {
				return nil, err
			}
			for _, v := range values {
				vcap.addDiscreteValue(v)
			}
		}
		caps = append(caps, vcap)
	}
	return caps, nil
}

// splitVcpEntries splits "10 12 60(0F 10 11)" into ["10", "12",
// "60(0F 10 11)"] — whitespace-separated at depth 0, tolerating
// nested parens for the discrete-value lists.
func splitVcpEntries(s string) []string {
	var entries []string
	depth := 0
	start := -1
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '(':
			depth++
		case s[i] == ')':
			depth--
		case isSpace(s[i]) && depth == 0:
			if start >= 0 {
				entries = append(entries, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 && !isSpace(s[i]) {
			start = i
		}
	}
	if start >= 0 {
		entries = append(entries, s[start:])
	}
	return entries
}

// ParseCapabilities decodes a complete MCCS capability string.
func ParseCapabilities(capabilityString string) (Capabilities, error) {
	entries, err := tokenizeCapabilities([]byte(capabilityString))
	if err != nil {
		return Capabilities{}, err
	}

	var caps Capabilities
	for _, e := range entries {
		if e.isBinary {
			data, err := parseBinaryEntry(e.content)
			if err != nil {
				return Capabilities{}, err
			}
			caps.UnknownTags = append(caps.UnknownTags, UnknownTag{
				Name: e.tag,
				Data: UnknownData{IsBinary: true, Bytes: data},
			})
			continue
		}

		content := string(e.content)
		switch e.tag {
		case "prot":
			p := newProtocol(content)
			caps.Protocol = &p
		case "type":
			t := newDisplayTechnology(content)
			caps.Type = &t
		case "model":
			caps.Model = content
		case "cmds":
			bytes, err := parseHexArray(content)
			if err != nil {
				return Capabilities{}, err
			}
			for _, b := range bytes {
				caps.Commands = append(caps.Commands, OpcodeFromByte(b))
			}
		case "mswhql":
			b, err := parseHexByte(content)
			if err != nil {
				return Capabilities{}, &ParserError{Context: "mswhql", Cause: err}
			}
			caps.MsWhql = &b
		case "mccs_ver":
			v, err := parseMccsVersion(content)
			if err != nil {
				return Capabilities{}, err
			}
			caps.MccsVersion = &v
		case "vcp", "VCP":
			vcps, err := parseVcpEntries(content)
			if err != nil {
				return Capabilities{}, err
			}
			caps.VcpFeatures = append(caps.VcpFeatures, vcps...)
		default:
			caps.UnknownTags = append(caps.UnknownTags, UnknownTag{
				Name: e.tag,
				Data: UnknownData{Bytes: e.content},
			})
		}
	}
	return caps, nil
}
