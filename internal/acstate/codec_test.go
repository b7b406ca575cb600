package acstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ir-hub-backend/internal/acstate"
	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/ir/decode"
	"ir-hub-backend/internal/ir/encode"
)

func testState(p ir.Protocol) acstate.State {
	s := acstate.Default()
	s.Protocol = p
	s.Power = true
	s.Mode = acstate.ModeHeat
	s.TempC = 27
	s.FanSpeed = acstate.FanHigh
	s.Swing = acstate.SwingVertical
	s.Turbo = true
	s.Sleep = true
	s.Beep = false
	return s
}

var byteProtocols = []ir.Protocol{
	ir.ProtocolCarrier,
	ir.ProtocolDaikin,
	ir.ProtocolHitachi,
	ir.ProtocolMitsubishi,
	ir.ProtocolFujitsu,
	ir.ProtocolHaier,
	ir.ProtocolMidea,
	ir.ProtocolSamsung48,
	ir.ProtocolPanasonic,
}

func TestDefaultState(t *testing.T) {
	s := acstate.Default()
	assert.False(t, s.Power)
	assert.Equal(t, acstate.ModeCool, s.Mode)
	assert.Equal(t, uint8(acstate.TempDefault), s.TempC)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*acstate.State)
	}{
		{"temp below range", func(s *acstate.State) { s.TempC = 15 }},
		{"temp above range", func(s *acstate.State) { s.TempC = 31 }},
		{"bad mode", func(s *acstate.State) { s.Mode = 9 }},
		{"bad fan speed", func(s *acstate.State) { s.FanSpeed = 9 }},
		{"bad swing", func(s *acstate.State) { s.Swing = 9 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := acstate.Default()
			tc.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestEncodeRejects(t *testing.T) {
	s := acstate.Default()
	s.Protocol = ir.ProtocolNEC
	_, err := acstate.Encode(&s)
	assert.ErrorIs(t, err, ir.ErrNotSupported)

	s = acstate.Default()
	s.Protocol = ir.ProtocolDaikin
	s.TempC = 35
	_, err = acstate.Encode(&s)
	assert.Error(t, err)
}

// Changing one field must touch only the byte that field owns plus the
// checksum byte, so learned frames stay recognizable across mutations.
func TestMutationLocality(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*acstate.State)
	}{
		{"temp", func(s *acstate.State) { s.TempC = 22 }},
		{"fan", func(s *acstate.State) { s.FanSpeed = acstate.FanLow }},
		{"swing", func(s *acstate.State) { s.Swing = acstate.SwingBoth }},
		{"mode", func(s *acstate.State) { s.Mode = acstate.ModeDry }},
		{"power", func(s *acstate.State) { s.Power = false }},
		{"turbo", func(s *acstate.State) { s.Turbo = false }},
		{"beep", func(s *acstate.State) { s.Beep = true }},
	}

	for _, p := range byteProtocols {
		t.Run(p.String(), func(t *testing.T) {
			base := testState(p)
			baseCode, err := acstate.Encode(&base)
			require.NoError(t, err)

			for _, m := range mutations {
				t.Run(m.name, func(t *testing.T) {
					next := base
					m.mutate(&next)
					nextCode, err := acstate.Encode(&next)
					require.NoError(t, err)
					require.Len(t, nextCode.Bytes, len(baseCode.Bytes))

					changed := 0
					for i := range baseCode.Bytes {
						if baseCode.Bytes[i] != nextCode.Bytes[i] {
							changed++
						}
					}
					assert.LessOrEqual(t, changed, 2, "field byte plus checksum at most")
					assert.Greater(t, changed, 0, "mutation must be visible on the wire")
				})
			}
		})
	}
}

// Protocols with a full state decoder must survive an encode/decode round
// trip field for field.
func TestStateRoundTrip(t *testing.T) {
	full := []ir.Protocol{
		ir.ProtocolCarrier,
		ir.ProtocolDaikin,
		ir.ProtocolHitachi,
		ir.ProtocolMitsubishi,
		ir.ProtocolFujitsu,
		ir.ProtocolHaier,
	}

	for _, p := range full {
		t.Run(p.String(), func(t *testing.T) {
			want := testState(p)
			code, err := acstate.Encode(&want)
			require.NoError(t, err)

			got, err := acstate.Decode(code)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeBestEffort(t *testing.T) {
	for _, p := range []ir.Protocol{
		ir.ProtocolMidea, ir.ProtocolSamsung48, ir.ProtocolPanasonic, ir.ProtocolLG2,
	} {
		t.Run(p.String(), func(t *testing.T) {
			s := testState(p)
			code, err := acstate.Encode(&s)
			require.NoError(t, err)

			got, err := acstate.Decode(code)
			require.NoError(t, err)

			// Powered-on defaults with the protocol identity preserved.
			want := acstate.Default()
			want.Protocol = p
			want.Power = true
			assert.Equal(t, want, got)
		})
	}

	_, err := acstate.Decode(&ir.Code{Protocol: ir.ProtocolNEC})
	assert.ErrorIs(t, err, ir.ErrNotSupported)
}

// Corrupt frames keep the protocol identity but fall back to defaults
// instead of reporting garbage field values.
func TestDecodeCorruptFrame(t *testing.T) {
	s := testState(ir.ProtocolHaier)
	code, err := acstate.Encode(&s)
	require.NoError(t, err)
	code.Bytes = code.Bytes[:5]

	got, err := acstate.Decode(code)
	require.NoError(t, err)
	assert.Equal(t, ir.ProtocolHaier, got.Protocol)
	assert.Equal(t, acstate.ModeCool, got.Mode)
	assert.Equal(t, uint8(acstate.TempDefault), got.TempC)
}

// The wire path: state to frame to symbols and back through the protocol
// decoder, with the checksum intact.
func TestTransmitPath(t *testing.T) {
	decoders := map[ir.Protocol]decode.Decoder{
		ir.ProtocolCarrier:    decode.Carrier{},
		ir.ProtocolDaikin:     decode.Daikin{},
		ir.ProtocolHitachi:    decode.Hitachi{},
		ir.ProtocolMitsubishi: decode.Mitsubishi{},
		ir.ProtocolFujitsu:    decode.Fujitsu{},
		ir.ProtocolHaier:      decode.Haier{},
		ir.ProtocolMidea:      decode.Midea{},
	}

	for p, d := range decoders {
		t.Run(p.String(), func(t *testing.T) {
			s := testState(p)
			code, err := acstate.Encode(&s)
			require.NoError(t, err)

			symbols, err := encode.Frame(code)
			require.NoError(t, err)

			got, err := d.Decode(symbols)
			require.NoError(t, err)
			assert.Equal(t, code.Bytes, got.Bytes)
			assert.Equal(t, code.Address, got.Address)
			assert.Equal(t, code.Command, got.Command)
			assert.Zero(t, got.Flags&ir.FlagParityFailed, "checksum must verify")
		})
	}
}

// Captured AC frames arrive through the full decoder chain, not a direct
// decoder call, so every brand's frame must get past the consumer
// protocols whose headers sit inside its tolerance.
func TestChainDispatch(t *testing.T) {
	for _, p := range byteProtocols {
		t.Run(p.String(), func(t *testing.T) {
			s := testState(p)
			code, err := acstate.Encode(&s)
			require.NoError(t, err)

			symbols, err := encode.Frame(code)
			require.NoError(t, err)

			var got *ir.Code
			for _, d := range decode.DefaultChain() {
				if c, err := d.Decode(symbols); err == nil {
					got = c
					break
				}
			}
			require.NotNil(t, got, "no decoder claimed the frame")
			assert.Equal(t, p, got.Protocol)
		})
	}
}

func TestLG2Word(t *testing.T) {
	s := testState(ir.ProtocolLG2)
	code, err := acstate.Encode(&s)
	require.NoError(t, err)

	assert.Equal(t, ir.ProtocolLG2, code.Protocol)
	assert.Equal(t, uint16(28), code.Bits)
	assert.Equal(t, uint16(0x88), code.Address)

	// power bit 0, mode bits 1-3, temp bits 4-8, fan bits 9-11, swing 12+
	cmd := code.Command
	assert.Equal(t, uint16(1), cmd&1)
	assert.Equal(t, uint16(acstate.ModeHeat), cmd>>1&0x07)
	assert.Equal(t, uint16(27-acstate.TempMin), cmd>>4&0x1F)
	assert.Equal(t, uint16(acstate.FanHigh), cmd>>9&0x07)
	assert.Equal(t, uint16(acstate.SwingVertical), cmd>>12)

	// The word survives the raw LG2 decoder.
	symbols, err := encode.Frame(code)
	require.NoError(t, err)
	got, err := decode.LG2{}.Decode(symbols)
	require.NoError(t, err)
	assert.Equal(t, code.Data, got.Data)
	assert.Equal(t, cmd, got.Command)
}

func TestParseNames(t *testing.T) {
	m, err := acstate.ParseMode("heat")
	require.NoError(t, err)
	assert.Equal(t, acstate.ModeHeat, m)

	f, err := acstate.ParseFanSpeed("turbo")
	require.NoError(t, err)
	assert.Equal(t, acstate.FanTurbo, f)

	sw, err := acstate.ParseSwing("both")
	require.NoError(t, err)
	assert.Equal(t, acstate.SwingBoth, sw)

	_, err = acstate.ParseMode("defrost")
	assert.Error(t, err)
}
