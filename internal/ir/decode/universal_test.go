package decode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/ir/decode"
	"ir-hub-backend/internal/ir/encode"
)

// A synthetic pulse-distance signal on NEC timings must decode to the
// same bit pattern through the universal decoder as through NEC itself.
func TestUniversalMatchesNEC(t *testing.T) {
	code := ir.Code{Protocol: ir.ProtocolNEC, Data: decode.PackNEC(0x5A, 0x0C), Bits: 32}
	symbols, err := encode.Frame(&code)
	require.NoError(t, err)

	viaNEC, err := decode.NEC{}.Decode(symbols)
	require.NoError(t, err)

	viaUniversal, err := decode.Universal{}.Decode(symbols)
	require.NoError(t, err)

	assert.Equal(t, ir.ProtocolPulseDistance, viaUniversal.Protocol)
	assert.Equal(t, viaNEC.Data, viaUniversal.Data)
	assert.Equal(t, viaNEC.Bits, viaUniversal.Bits)
}

func TestUniversalPulseWidth(t *testing.T) {
	code := ir.Code{Protocol: ir.ProtocolSony, Data: decode.PackSony(0x1234, 0x55), Bits: 20}
	symbols, err := encode.Frame(&code)
	require.NoError(t, err)

	got, err := decode.Universal{}.Decode(symbols)
	require.NoError(t, err)

	assert.Equal(t, ir.ProtocolPulseWidth, got.Protocol)
	assert.Equal(t, uint16(20), got.Bits)
	assert.Equal(t, code.Data, got.Data)
}

func TestUniversalRejects(t *testing.T) {
	t.Run("too few symbols", func(t *testing.T) {
		symbols := make([]ir.Symbol, 10)
		_, err := decode.Universal{}.Decode(symbols)
		assert.ErrorIs(t, err, ir.ErrTooFewSymbols)
	})

	t.Run("single duration everywhere", func(t *testing.T) {
		symbols := make([]ir.Symbol, 24)
		for i := range symbols {
			symbols[i] = ir.Symbol{Mark: 1000, Space: 1000}
		}
		_, err := decode.Universal{}.Decode(symbols)
		assert.ErrorIs(t, err, ir.ErrTimingMismatch)
	})

	t.Run("three mark clusters", func(t *testing.T) {
		symbols := make([]ir.Symbol, 0, 26)
		symbols = append(symbols, ir.Symbol{Mark: 9000, Space: 4500})
		marks := []uint32{500, 1500, 3000}
		for i := 0; i < 24; i++ {
			symbols = append(symbols, ir.Symbol{Mark: marks[i%3], Space: 600})
		}
		symbols = append(symbols, ir.Symbol{Mark: 500, Space: 20000})
		_, err := decode.Universal{}.Decode(symbols)
		assert.ErrorIs(t, err, ir.ErrTimingMismatch)
	})
}

// Dispatch order sanity: full frames for named protocols must be claimed
// by their own decoder when run through the default chain.
func TestDefaultChainDispatch(t *testing.T) {
	testCases := []struct {
		name string
		code ir.Code
		want ir.Protocol
	}{
		{"nec", ir.Code{Protocol: ir.ProtocolNEC, Data: decode.PackNEC(0x10, 0x20), Bits: 32}, ir.ProtocolNEC},
		{"samsung", ir.Code{Protocol: ir.ProtocolSamsung, Data: decode.PackSamsung(0x0707, 0x04), Bits: 32}, ir.ProtocolSamsung},
		{"sony", ir.Code{Protocol: ir.ProtocolSony, Data: decode.PackSony(0x01, 0x15), Bits: 12}, ir.ProtocolSony},
		{"jvc", ir.Code{Protocol: ir.ProtocolJVC, Data: 0x3AC5, Bits: 16}, ir.ProtocolJVC},
		{"lg", ir.Code{Protocol: ir.ProtocolLG, Data: decode.PackLG(0x04, 0x2030), Bits: 28}, ir.ProtocolLG},
		{"rc5", ir.Code{Protocol: ir.ProtocolRC5, Data: decode.PackRC5(0x05, 0x2A, false)}, ir.ProtocolRC5},
		{"rc6", ir.Code{Protocol: ir.ProtocolRC6, Data: decode.PackRC6(0x07, 0x0D, false)}, ir.ProtocolRC6},
		{"denon", ir.Code{Protocol: ir.ProtocolDenon, Data: decode.PackDenon(0x12, 0x34), Bits: 15}, ir.ProtocolDenon},
		{"panasonic", ir.Code{Protocol: ir.ProtocolPanasonic, Data: uint64(0x4004)<<32 | 0x12345678, Bits: 48}, ir.ProtocolPanasonic},
		{"samsung48", ir.Code{Protocol: ir.ProtocolSamsung48, Data: decode.PackSamsung48(0x4DB2, 0x0C, 0x5A), Bits: 48}, ir.ProtocolSamsung48},
		{"lg2", ir.Code{Protocol: ir.ProtocolLG2, Data: decode.PackLG(0x88, 0x0551), Bits: 28}, ir.ProtocolLG2},
		{"whynter", ir.Code{Protocol: ir.ProtocolWhynter, Data: 0xF00FA55A, Bits: 32}, ir.ProtocolWhynter},
		{"bosewave", ir.Code{Protocol: ir.ProtocolBoseWave, Data: 0x5AA5, Bits: 16}, ir.ProtocolBoseWave},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			symbols, err := encode.Frame(&tc.code)
			require.NoError(t, err)

			var got *ir.Code
			for _, d := range decode.DefaultChain() {
				code, err := d.Decode(symbols)
				if err == nil {
					got = code
					break
				}
			}
			require.NotNil(t, got, "no decoder claimed the frame")
			assert.Equal(t, tc.want, got.Protocol)
			assert.Equal(t, tc.code.Data, got.Data)
		})
	}
}

func TestNECErrors(t *testing.T) {
	t.Run("repeat envelope", func(t *testing.T) {
		symbols := []ir.Symbol{
			{Mark: 9000, Space: 2250},
			{Mark: 560, Space: 20000},
		}
		_, err := decode.NEC{}.Decode(symbols)
		assert.ErrorIs(t, err, ir.ErrRepeatFrame)
	})

	t.Run("too few", func(t *testing.T) {
		symbols := []ir.Symbol{{Mark: 9000, Space: 4500}, {Mark: 560, Space: 560}}
		_, err := decode.NEC{}.Decode(symbols)
		assert.ErrorIs(t, err, ir.ErrTooFewSymbols)
	})

	t.Run("wrong header", func(t *testing.T) {
		code := ir.Code{Protocol: ir.ProtocolNEC, Data: decode.PackNEC(0x00, 0x0C), Bits: 32}
		symbols, err := encode.Frame(&code)
		require.NoError(t, err)
		symbols[0].Mark = 4500

		_, err = decode.NEC{}.Decode(symbols)
		assert.ErrorIs(t, err, ir.ErrTimingMismatch)
	})

	t.Run("command parity flagged", func(t *testing.T) {
		data := uint64(0x00) | uint64(0xFF)<<8 | uint64(0x0C)<<16 | uint64(0x0C)<<24
		code := ir.Code{Protocol: ir.ProtocolNEC, Data: data, Bits: 32}
		symbols, err := encode.Frame(&code)
		require.NoError(t, err)

		got, err := decode.NEC{}.Decode(symbols)
		require.NoError(t, err)
		assert.NotZero(t, got.Flags&ir.FlagParityFailed)
		assert.Equal(t, uint16(0x0C), got.Command)
	})
}

// A JVC-shaped read of an NEC header must be refused so NEC frames that
// fail their own decoder do not get mislabeled.
func TestJVCRejectsNECEnvelope(t *testing.T) {
	code := ir.Code{Protocol: ir.ProtocolNEC, Data: decode.PackNEC(0x5A, 0x0C), Bits: 32}
	symbols, err := encode.Frame(&code)
	require.NoError(t, err)

	_, err = decode.JVC{}.Decode(symbols)
	assert.ErrorIs(t, err, ir.ErrTimingMismatch)
}

func TestJVCHeaderlessRepeat(t *testing.T) {
	code := ir.Code{Protocol: ir.ProtocolJVC, Data: 0x3AC5, Bits: 16, Flags: ir.FlagRepeat}
	symbols, err := encode.Frame(&code)
	require.NoError(t, err)
	require.Len(t, symbols, 17)

	got, err := decode.JVC{}.Decode(symbols)
	require.NoError(t, err)
	assert.NotZero(t, got.Flags&ir.FlagRepeat)
	assert.Equal(t, uint16(0xC5), got.Address)
	assert.Equal(t, uint16(0x3A), got.Command)
}
