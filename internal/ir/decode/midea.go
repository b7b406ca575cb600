package decode

import (
	"ir-hub-backend/internal/ir"
)

const mideaBytes = 6

// Midea decodes the 48-bit Midea AC frame. It shares the Samsung envelope
// bit for bit; Samsung48 runs first and only keeps frames whose command
// bytes carry their complements, so everything else under this envelope
// lands here. The last byte is the XOR of the five before it.
type Midea struct{}

func (Midea) Protocol() ir.Protocol { return ir.ProtocolMidea }

func (Midea) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolMidea)
	if len(symbols) < mideaBytes*8+1 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readBytes(symbols[1:], c, mideaBytes)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolMidea)
	code.Bits = uint16(mideaBytes * 8)
	code.Bytes = data
	code.Data = packLSB(data)
	code.Address = uint16(data[0])
	code.Command = uint16(data[1])
	if ir.XORBytes(data[:mideaBytes-1]) != data[mideaBytes-1] {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}
