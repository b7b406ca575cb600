package decode

import (
	"ir-hub-backend/internal/ir"
)

const (
	daikinFrame1Bytes = 8
	daikinFrame2Bytes = 19
	daikinGapSpace    = 29000
	daikinMinSymbols  = 218 // two headers, 216 bit symbols, gap carried on a stop
)

// Daikin decodes the two-frame Daikin AC transmission: an 8-byte prologue
// frame, a 29ms gap, then the 19-byte state frame. Each frame ends in a
// byte-sum checksum; a failure in either is flagged.
type Daikin struct{}

func (Daikin) Protocol() ir.Protocol { return ir.ProtocolDaikin }

func (Daikin) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolDaikin)
	if len(symbols) < daikinMinSymbols {
		return nil, ir.ErrTooFewSymbols
	}

	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}
	frame1, err := readBytes(symbols[1:], c, daikinFrame1Bytes)
	if err != nil {
		return nil, err
	}

	// The frame gap rides on the stop symbol after the last data bit.
	idx := 1 + daikinFrame1Bytes*8
	if idx < len(symbols) && ir.MatchSpace(symbols[idx], daikinGapSpace, 10) {
		idx++
	}

	if idx >= len(symbols) || !matchHeader(symbols[idx], c) {
		return nil, ir.ErrTimingMismatch
	}
	frame2, err := readBytes(symbols[idx+1:], c, daikinFrame2Bytes)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolDaikin)
	code.Bits = uint16((daikinFrame1Bytes + daikinFrame2Bytes) * 8)
	code.Bytes = append(append([]byte{}, frame1...), frame2...)
	code.Data = packLSB(frame2)
	code.Address = 0x11 // Daikin manufacturer code
	code.Command = uint16(frame2[5])
	if ir.SumBytes(frame1[:daikinFrame1Bytes-1]) != frame1[daikinFrame1Bytes-1] ||
		ir.SumBytes(frame2[:daikinFrame2Bytes-1]) != frame2[daikinFrame2Bytes-1] {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}
