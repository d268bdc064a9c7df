package ddcci

/*------------------------------------------------------------------
 *
 * Purpose:	MCCS VCP feature codes and the typed values exchanged
 *		through them.
 *
 * Description:	Every value read or written over VCP fits in 32 bits
 *		and splits into four wire bytes (MH, ML, VH, VL). The
 *		VcpValue interface captures that, implemented with
 *		pointer receivers so GetVcpFeature/SetVcpFeature can be
 *		generic over the concrete type without a constructor
 *		method in the type set (Go has no static/associated
 *		functions to put in an interface, so the pointer
 *		receiver + type-parameter-pair pattern below stands in
 *		for the source's trait method).
 *
 *------------------------------------------------------------------*/

import "fmt"

// VcpFeatureCode identifies an MCCS VCP feature. Unimplemented
// carries the raw byte for codes this system does not name.
type VcpFeatureCode struct {
	name  featureName
	value byte
}

type featureName int

const (
	featureUnimplemented featureName = iota
	featureUnknown
	featureCodePage
	featureNewControlValue
	featureLuminance
	featureContrast
	featureActiveControl
	featureInputSelect
	featureOsdLanguage
)

var (
	CodePage         = VcpFeatureCode{name: featureCodePage, value: 0x00}
	NewControlValueCode = VcpFeatureCode{name: featureNewControlValue, value: 0x02}
	LuminanceCode    = VcpFeatureCode{name: featureLuminance, value: 0x10}
	ContrastCode     = VcpFeatureCode{name: featureContrast, value: 0x12}
	ActiveControl    = VcpFeatureCode{name: featureActiveControl, value: 0x52}
	InputSelectCode  = VcpFeatureCode{name: featureInputSelect, value: 0x60}
	OsdLanguageCode  = VcpFeatureCode{name: featureOsdLanguage, value: 0xcc}
	// UnknownFeature is never produced by VcpFeatureCodeFromByte; it
	// is the placeholder feature code for values (like
	// AnonymousVcpValue) that don't correspond to a wire request.
	UnknownFeature = VcpFeatureCode{name: featureUnknown, value: 0x00}
)

// UnimplementedFeature wraps a feature code byte this system does
// not name.
func UnimplementedFeature(b byte) VcpFeatureCode {
	return VcpFeatureCode{name: featureUnimplemented, value: b}
}

var namedFeatures = map[byte]VcpFeatureCode{
	0x00: CodePage,
	0x02: NewControlValueCode,
	0x10: LuminanceCode,
	0x12: ContrastCode,
	0x52: ActiveControl,
	0x60: InputSelectCode,
	0xcc: OsdLanguageCode,
}

// VcpFeatureCodeFromByte maps a wire byte to its named feature code,
// falling back to UnimplementedFeature.
func VcpFeatureCodeFromByte(b byte) VcpFeatureCode {
	if code, ok := namedFeatures[b]; ok {
		return code
	}
	return UnimplementedFeature(b)
}

// Byte returns the wire representation of the feature code.
func (c VcpFeatureCode) Byte() byte { return c.value }

func (c VcpFeatureCode) String() string {
	switch c.name {
	case featureCodePage:
		return "CodePage"
	case featureNewControlValue:
		return "NewControlValue"
	case featureLuminance:
		return "Luminance"
	case featureContrast:
		return "Contrast"
	case featureActiveControl:
		return "ActiveControl"
	case featureInputSelect:
		return "InputSelect"
	case featureOsdLanguage:
		return "OsdLanguage"
	case featureUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Unimplemented(0x%02x)", c.value)
	}
}

// FeatureCode implements VcpValue: reading a VcpFeatureCode over VCP
// means polling the ActiveControl "next changed code" register.
func (c *VcpFeatureCode) FeatureCode() VcpFeatureCode { return ActiveControl }

// ToWord implements VcpValue.
func (c *VcpFeatureCode) ToWord() uint32 { return uint32(c.value) }

// SetWord implements VcpValue.
func (c *VcpFeatureCode) SetWord(word uint32) { *c = VcpFeatureCodeFromByte(byte(word)) }

// VcpValue is implemented by every type that can be read or written
// through GetVcpFeature / SetVcpFeature. Implementations use pointer
// receivers; see the file header comment above for why.
type VcpValue interface {
	FeatureCode() VcpFeatureCode
	ToWord() uint32
	SetWord(word uint32)
}

func mh(word uint32) byte { return byte(word >> 24) }
func ml(word uint32) byte { return byte(word >> 16) }
func vh(word uint32) byte { return byte(word >> 8) }
func vl(word uint32) byte { return byte(word) }

// AnonymousVcpValue carries a discrete capability-string value that
// doesn't belong to a named feature.
type AnonymousVcpValue uint32

func (v *AnonymousVcpValue) FeatureCode() VcpFeatureCode { return UnknownFeature }
func (v *AnonymousVcpValue) ToWord() uint32              { return uint32(*v) }
func (v *AnonymousVcpValue) SetWord(word uint32)         { *v = AnonymousVcpValue(word) }

// NewControlValue is the FIFO-empty/non-empty flag read from the
// NewControlValue VCP code. Any value outside 0x01/0x02 is a
// protocol violation.
type NewControlValue int

const (
	newControlValueUnset NewControlValue = iota
	NewControlValuesPresent
	NewControlValueFinished
)

func (v *NewControlValue) FeatureCode() VcpFeatureCode { return NewControlValueCode }

func (v *NewControlValue) ToWord() uint32 {
	switch *v {
	case NewControlValuesPresent:
		return 0x02
	case NewControlValueFinished:
		return 0x01
	default:
		return 0x00
	}
}

func (v *NewControlValue) SetWord(word uint32) {
	switch word & 0xff {
	case 0x01:
		*v = NewControlValueFinished
	case 0x02:
		*v = NewControlValuesPresent
	default:
		*v = newControlValueUnset
	}
}

// LuminanceValue is the continuous brightness control: Max is the
// device-reported ceiling, Val the current setting.
//
// Decoding only reads the low byte (VL) of the wire word into Val,
// discarding VH, which MCCS defines as the current value's high
// byte. Real monitors use VH:VL as a 16-bit big-endian current
// value, so this likely undercounts Val above 255 — mirrored here
// because it matches what the reference implementation actually
// does on the wire, not because it's correct.
type LuminanceValue struct {
	Max uint16
	Val uint16
}

func (v *LuminanceValue) FeatureCode() VcpFeatureCode { return LuminanceCode }
func (v *LuminanceValue) ToWord() uint32              { return uint32(v.Max)<<16 | uint32(v.Val) }
func (v *LuminanceValue) SetWord(word uint32) {
	v.Max = uint16(word >> 16)
	v.Val = uint16(word & 0xff)
}

// ContrastValue is the continuous contrast control; see
// LuminanceValue's doc comment for the low-byte-only decode.
type ContrastValue struct {
	Max uint16
	Val uint16
}

func (v *ContrastValue) FeatureCode() VcpFeatureCode { return ContrastCode }
func (v *ContrastValue) ToWord() uint32              { return uint32(v.Max)<<16 | uint32(v.Val) }
func (v *ContrastValue) SetWord(word uint32) {
	v.Max = uint16(word >> 16)
	v.Val = uint16(word & 0xff)
}

// InputSource names the VCP InputSelect discrete values; 0x01-0x12
// are named, everything else round-trips through Reserved.
type InputSource struct {
	known    bool
	reserved uint32
	name     inputName
}

type inputName int

const (
	inputReserved inputName = iota
	Analog1
	Analog2
	Dvi1
	Dvi2
	Composite1
	Composite2
	SVideo1
	SVideo2
	Tuner1
	Tuner2
	Tuner3
	Component1
	Component2
	Component3
	DisplayPort1
	DisplayPort2
	Hdmi1
	Hdmi2
)

var inputByByte = map[uint32]inputName{
	0x01: Analog1, 0x02: Analog2, 0x03: Dvi1, 0x04: Dvi2,
	0x05: Composite1, 0x06: Composite2, 0x07: SVideo1, 0x08: SVideo2,
	0x09: Tuner1, 0x0A: Tuner2, 0x0B: Tuner3,
	0x0C: Component1, 0x0D: Component2, 0x0E: Component3,
	0x0f: DisplayPort1, 0x10: DisplayPort2, 0x11: Hdmi1, 0x12: Hdmi2,
}

var inputToByte = func() map[inputName]uint32 {
	m := make(map[inputName]uint32, len(inputByByte))
	for b, n := range inputByByte {
		m[n] = b
	}
	return m
}()

// NewInputSource constructs a named InputSource value; used by
// callers that want to set the input rather than decode one off the
// wire.
func NewInputSource(name inputName) InputSource {
	return InputSource{known: true, name: name}
}

// Reserved reports whether this is an unnamed, vendor/future input
// value, and if so its raw code.
func (v InputSource) Reserved() (uint32, bool) {
	if v.known {
		return 0, false
	}
	return v.reserved, true
}

func (v *InputSource) FeatureCode() VcpFeatureCode { return InputSelectCode }

func (v *InputSource) ToWord() uint32 {
	if !v.known {
		return v.reserved
	}
	return inputToByte[v.name]
}

func (v *InputSource) SetWord(word uint32) {
	masked := word & 0xff
	if name, ok := inputByByte[masked]; ok {
		*v = InputSource{known: true, name: name}
		return
	}
	*v = InputSource{known: false, reserved: masked}
}

func (v InputSource) String() string {
	if !v.known {
		return fmt.Sprintf("Reserved(0x%02x)", v.reserved)
	}
	switch v.name {
	case Analog1:
		return "Analog1"
	case Analog2:
		return "Analog2"
	case Dvi1:
		return "Dvi1"
	case Dvi2:
		return "Dvi2"
	case Composite1:
		return "Composite1"
	case Composite2:
		return "Composite2"
	case SVideo1:
		return "SVideo1"
	case SVideo2:
		return "SVideo2"
	case Tuner1:
		return "Tuner1"
	case Tuner2:
		return "Tuner2"
	case Tuner3:
		return "Tuner3"
	case Component1:
		return "Component1"
	case Component2:
		return "Component2"
	case Component3:
		return "Component3"
	case DisplayPort1:
		return "DisplayPort1"
	case DisplayPort2:
		return "DisplayPort2"
	case Hdmi1:
		return "Hdmi1"
	case Hdmi2:
		return "Hdmi2"
	default:
		return fmt.Sprintf("Reserved(0x%02x)", v.reserved)
	}
}

// OsdLanguages names the VCP OsdLanguage discrete values; 0x00-0x25
// are named, everything else round-trips through Undefined.
type OsdLanguages struct {
	known     bool
	undefined uint32
	name      languageName
}

type languageName int

const (
	langUndefined languageName = iota
	Ignored
	ChineseTraditional
	English
	French
	German
	Italian
	Japanese
	Korean
	PortuguesePortugal
	Russian
	Spanish
	Swedish
	Turkish
	ChineseSimplified
	PortugueseBrazil
	Arabic
	Bulgarian
	Croatian
	Czech
	Danish
	Dutch
	Estonian
	Finnish
	Greek
	Hebrew
	Hindi
	Hungarian
	Latvian
	Lithuanian
	Norwegian
	Polish
	Romanian
	Serbian
	Slovak
	Slovenian
	Thai
	Ukrainian
	Vietnamese
)

var languageByWord = map[uint32]languageName{
	0x0000: Ignored, 0x0001: ChineseTraditional, 0x0002: English, 0x0003: French,
	0x0004: German, 0x0005: Italian, 0x0006: Japanese, 0x0007: Korean,
	0x0008: PortuguesePortugal, 0x0009: Russian, 0x000A: Spanish, 0x000B: Swedish,
	0x000C: Turkish, 0x000D: ChineseSimplified, 0x000E: PortugueseBrazil, 0x000F: Arabic,
	0x0010: Bulgarian, 0x0011: Croatian, 0x0012: Czech, 0x0013: Danish,
	0x0014: Dutch, 0x0015: Estonian, 0x0016: Finnish, 0x0017: Greek,
	0x0018: Hebrew, 0x0019: Hindi, 0x001A: Hungarian, 0x001B: Latvian,
	0x001C: Lithuanian, 0x001D: Norwegian, 0x001E: Polish, 0x001F: Romanian,
	0x0020: Serbian, 0x0021: Slovak, 0x0022: Slovenian, 0x0023: Thai,
	0x0024: Ukrainian, 0x0025: Vietnamese,
}

var languageToWord = func() map[languageName]uint32 {
	m := make(map[languageName]uint32, len(languageByWord))
	for w, n := range languageByWord {
		m[n] = w
	}
	return m
}()

// NewOsdLanguage constructs a named OsdLanguages value.
func NewOsdLanguage(name languageName) OsdLanguages {
	return OsdLanguages{known: true, name: name}
}

func (v *OsdLanguages) FeatureCode() VcpFeatureCode { return OsdLanguageCode }

func (v *OsdLanguages) ToWord() uint32 {
	if !v.known {
		return v.undefined
	}
	return languageToWord[v.name]
}

func (v *OsdLanguages) SetWord(word uint32) {
	masked := word & 0xffff
	if name, ok := languageByWord[masked]; ok {
		*v = OsdLanguages{known: true, name: name}
		return
	}
	*v = OsdLanguages{known: false, undefined: masked}
}

func (v OsdLanguages) String() string {
	if !v.known {
		return fmt.Sprintf("Undefined(0x%04x)", v.undefined)
	}
	return fmt.Sprintf("language(%d)", languageToWord[v.name])
}
