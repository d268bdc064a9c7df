package ddcci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestVcpFeatureCodeFromByteNamed(t *testing.T) {
	assert.Equal(t, LuminanceCode, VcpFeatureCodeFromByte(0x10))
	assert.Equal(t, ContrastCode, VcpFeatureCodeFromByte(0x12))
	assert.Equal(t, OsdLanguageCode, VcpFeatureCodeFromByte(0xcc))
}

func TestVcpFeatureCodeFromByteUnimplemented(t *testing.T) {
	code := VcpFeatureCodeFromByte(0x99)
	assert.Equal(t, byte(0x99), code.Byte())
	assert.Contains(t, code.String(), "0x99")
}

func TestVcpFeatureCodeRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(tr *rapid.T) {
		b := rapid.Byte().Draw(tr, "b")
		code := VcpFeatureCodeFromByte(b)
		assert.Equal(tr, b, code.Byte())
	})
}

func TestLuminanceValueLowByteOnlyDecode(t *testing.T) {
	// MH=0x00 ML=0x64 (max 100) VH=0x01 VL=0x32: VH is discarded, so
	// Val only ever reflects VL even though the standard defines
	// VH:VL as a 16-bit current value.
	var v LuminanceValue
	v.SetWord(0x00640132)
	assert.Equal(t, uint16(100), v.Max)
	assert.Equal(t, uint16(0x32), v.Val)
}

func TestContrastValueLowByteOnlyDecode(t *testing.T) {
	var v ContrastValue
	v.SetWord(0x00500180)
	assert.Equal(t, uint16(0x50), v.Max)
	assert.Equal(t, uint16(0x80), v.Val)
}

func TestInputSourceRoundTripNamed(t *testing.T) {
	src := NewInputSource(DisplayPort1)
	assert.Equal(t, uint32(0x0f), src.ToWord())

	var decoded InputSource
	decoded.SetWord(src.ToWord())
	assert.Equal(t, "DisplayPort1", decoded.String())
}

func TestInputSourceReservedRoundTrip(t *testing.T) {
	var v InputSource
	v.SetWord(0x99)
	raw, isReserved := v.Reserved()
	assert.True(t, isReserved)
	assert.Equal(t, uint32(0x99), raw)
	assert.Equal(t, uint32(0x99), v.ToWord())
}

func TestInputSourceRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(tr *rapid.T) {
		word := rapid.Uint32Range(0, 0xff).Draw(tr, "word")
		var v InputSource
		v.SetWord(word)
		assert.Equal(tr, word, v.ToWord())
	})
}

func TestOsdLanguagesRoundTripNamed(t *testing.T) {
	lang := NewOsdLanguage(German)
	var decoded OsdLanguages
	decoded.SetWord(lang.ToWord())
	assert.Equal(t, lang.ToWord(), decoded.ToWord())
}

func TestOsdLanguagesRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(tr *rapid.T) {
		word := rapid.Uint32Range(0, 0xffff).Draw(tr, "word")
		var v OsdLanguages
		v.SetWord(word)
		assert.Equal(tr, word, v.ToWord())
	})
}

func TestNewControlValueToWordFromWord(t *testing.T) {
	var v NewControlValue
	v.SetWord(0x02)
	assert.Equal(t, NewControlValuesPresent, v)
	assert.Equal(t, uint32(0x02), v.ToWord())

	v.SetWord(0x01)
	assert.Equal(t, NewControlValueFinished, v)
}

func TestNewControlValueInvalidWordIsUnset(t *testing.T) {
	var v NewControlValue
	v.SetWord(0x07)
	assert.Equal(t, uint32(0x00), v.ToWord())
}
