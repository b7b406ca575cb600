// Package encode renders decoded codes back into transmittable symbol
// streams. Frame is the inverse of the decoder chain: for every protocol
// with known constants it produces a capture-equivalent stream, so a
// learned code survives a decode/encode round trip.
package encode

import (
	"fmt"

	"ir-hub-backend/internal/ir"
)

// trailGapUS ends every frame. Long enough for receivers to treat the
// frame as finished, short of the 50ms capture trim.
const trailGapUS = 20000

const (
	necRepeatSpace = 2250
	daikinGapSpace = 29000
)

// Frame builds the symbol stream for a code. Protocols without timing
// constants and codes without enough payload report ir.ErrNotImplemented.
func Frame(code *ir.Code) ([]ir.Symbol, error) {
	if code == nil {
		return nil, fmt.Errorf("encode: %w", ir.ErrNotImplemented)
	}

	switch code.Protocol {
	case ir.ProtocolRaw:
		if len(code.Raw) == 0 {
			return nil, fmt.Errorf("encode raw: %w", ir.ErrNotImplemented)
		}
		out := make([]ir.Symbol, len(code.Raw))
		copy(out, code.Raw)
		return out, nil
	case ir.ProtocolUnknown, ir.ProtocolPulseDistance, ir.ProtocolPulseWidth:
		return nil, fmt.Errorf("encode %s: %w", code.Protocol, ir.ErrNotImplemented)
	}

	c, ok := ir.LookupConstants(code.Protocol)
	if !ok {
		return nil, fmt.Errorf("encode %s: %w", code.Protocol, ir.ErrNotImplemented)
	}

	if code.Protocol == ir.ProtocolNEC && code.Flags&ir.FlagRepeat != 0 {
		return []ir.Symbol{
			{Mark: c.HeaderMark, Space: necRepeatSpace},
			{Mark: c.BitMark, Space: trailGapUS},
		}, nil
	}

	switch {
	case code.Protocol == ir.ProtocolDaikin:
		return daikinFrame(code, c)
	case len(code.Bytes) > 0:
		return byteFrame(code.Bytes, c), nil
	}

	switch c.Encoding {
	case ir.BiPhase:
		return biphaseFrame(code, c)
	case ir.PulseWidth:
		return widthFrame(code, c)
	default:
		return distanceFrame(code, c)
	}
}

func frameBits(code *ir.Code, c ir.Constants) (int, error) {
	bits := int(code.Bits)
	if bits == 0 {
		bits = int(c.Bits)
	}
	if bits == 0 || bits > 64 {
		return 0, fmt.Errorf("encode %s: no bit count: %w", code.Protocol, ir.ErrNotImplemented)
	}
	return bits, nil
}

func dataBit(data uint64, i, bits int, msbFirst bool) bool {
	if msbFirst {
		return data>>(bits-1-i)&1 == 1
	}
	return data>>i&1 == 1
}

func distanceFrame(code *ir.Code, c ir.Constants) ([]ir.Symbol, error) {
	bits, err := frameBits(code, c)
	if err != nil {
		return nil, err
	}

	out := make([]ir.Symbol, 0, bits+2)
	// JVC repeats resend the data bits without the header.
	if c.HeaderMark > 0 && !(code.Protocol == ir.ProtocolJVC && code.Flags&ir.FlagRepeat != 0) {
		out = append(out, ir.Symbol{Mark: c.HeaderMark, Space: c.HeaderSpace})
	}
	for i := 0; i < bits; i++ {
		space := c.ZeroSpace
		if dataBit(code.Data, i, bits, c.MSBFirst) {
			space = c.OneSpace
		}
		out = append(out, ir.Symbol{Mark: c.BitMark, Space: space})
	}
	if c.StopBit {
		out = append(out, ir.Symbol{Mark: c.BitMark, Space: trailGapUS})
	} else {
		out[len(out)-1].Space = trailGapUS
	}
	return out, nil
}

func widthFrame(code *ir.Code, c ir.Constants) ([]ir.Symbol, error) {
	bits, err := frameBits(code, c)
	if err != nil {
		return nil, err
	}

	out := make([]ir.Symbol, 0, bits+1)
	if c.HeaderMark > 0 {
		out = append(out, ir.Symbol{Mark: c.HeaderMark, Space: c.HeaderSpace})
	}
	for i := 0; i < bits; i++ {
		mark := c.BitMark
		if dataBit(code.Data, i, bits, c.MSBFirst) {
			mark = c.OneSpace // the long mark for pulse width
		}
		out = append(out, ir.Symbol{Mark: mark, Space: c.ZeroSpace})
	}
	out[len(out)-1].Space = trailGapUS
	return out, nil
}

func byteFrame(data []byte, c ir.Constants) []ir.Symbol {
	out := make([]ir.Symbol, 0, len(data)*8+2)
	out = append(out, ir.Symbol{Mark: c.HeaderMark, Space: c.HeaderSpace})
	out = appendBytes(out, data, c)
	out = append(out, ir.Symbol{Mark: c.BitMark, Space: trailGapUS})
	return out
}

func appendBytes(out []ir.Symbol, data []byte, c ir.Constants) []ir.Symbol {
	for _, b := range data {
		for bit := 0; bit < 8; bit++ {
			space := c.ZeroSpace
			if b>>bit&1 == 1 {
				space = c.OneSpace
			}
			out = append(out, ir.Symbol{Mark: c.BitMark, Space: space})
		}
	}
	return out
}

// daikinFrame renders the two-frame Daikin transmission: the 8-byte
// prologue, a 29ms gap riding on its stop symbol, then the 19-byte state
// frame.
func daikinFrame(code *ir.Code, c ir.Constants) ([]ir.Symbol, error) {
	if len(code.Bytes) != 27 {
		return nil, fmt.Errorf("encode daikin: need 27 bytes, have %d: %w",
			len(code.Bytes), ir.ErrNotImplemented)
	}

	out := make([]ir.Symbol, 0, 220)
	out = append(out, ir.Symbol{Mark: c.HeaderMark, Space: c.HeaderSpace})
	out = appendBytes(out, code.Bytes[:8], c)
	out = append(out, ir.Symbol{Mark: c.BitMark, Space: daikinGapSpace})
	out = append(out, ir.Symbol{Mark: c.HeaderMark, Space: c.HeaderSpace})
	out = appendBytes(out, code.Bytes[8:], c)
	out = append(out, ir.Symbol{Mark: c.BitMark, Space: trailGapUS})
	return out, nil
}

func biphaseFrame(code *ir.Code, c ir.Constants) ([]ir.Symbol, error) {
	var halves []bool
	switch code.Protocol {
	case ir.ProtocolRC5:
		halves = rc5Halves(uint16(code.Data))
	case ir.ProtocolRC6:
		halves = rc6Halves(uint32(code.Data))
	default:
		return nil, fmt.Errorf("encode %s: %w", code.Protocol, ir.ErrNotImplemented)
	}

	var out []ir.Symbol
	if code.Protocol == ir.ProtocolRC6 {
		out = append(out, ir.Symbol{Mark: c.HeaderMark, Space: c.HeaderSpace})
	}
	return appendHalves(out, halves, c.BitMark), nil
}

// rc5Halves expands the 14-bit RC5 word into half-bit levels. A 1 is mark
// then space. The leading space of a zero start bit would be invisible to
// a receiver, so appendHalves drops it.
func rc5Halves(value uint16) []bool {
	halves := make([]bool, 0, 28)
	for i := 13; i >= 0; i-- {
		one := value>>i&1 == 1
		halves = append(halves, one, !one)
	}
	return halves
}

// rc6Halves expands the mode-0 RC6 word: start bit, 3 mode bits, the
// double-length toggle, then 16 payload bits, all mark-first for 1.
func rc6Halves(value uint32) []bool {
	halves := make([]bool, 0, 44)
	halves = append(halves, true, false) // start bit
	for i := 2; i >= 0; i-- {
		one := value>>(17+i)&1 == 1
		halves = append(halves, one, !one)
	}
	toggle := value>>16&1 == 1
	halves = append(halves, toggle, toggle, !toggle, !toggle)
	for i := 15; i >= 0; i-- {
		one := value>>i&1 == 1
		halves = append(halves, one, !one)
	}
	return halves
}

// appendHalves merges consecutive equal levels into symbols. The stream
// always ends with the trailing gap on the final space.
func appendHalves(out []ir.Symbol, halves []bool, unit uint32) []ir.Symbol {
	// Drop leading space halves; idle line carries no signal.
	start := 0
	for start < len(halves) && !halves[start] {
		start++
	}
	halves = halves[start:]

	i := 0
	for i < len(halves) {
		var mark, space uint32
		for i < len(halves) && halves[i] {
			mark += unit
			i++
		}
		for i < len(halves) && !halves[i] {
			space += unit
			i++
		}
		if i >= len(halves) {
			space += trailGapUS
		}
		out = append(out, ir.Symbol{Mark: mark, Space: space})
	}
	return out
}
