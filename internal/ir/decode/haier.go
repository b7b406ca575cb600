package decode

import (
	"ir-hub-backend/internal/ir"
)

const haierBytes = 13

// Haier decodes the 104-bit Haier AC frame. The last byte is the XOR of
// the twelve before it.
type Haier struct{}

func (Haier) Protocol() ir.Protocol { return ir.ProtocolHaier }

func (Haier) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolHaier)
	if len(symbols) < haierBytes*8+1 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readBytes(symbols[1:], c, haierBytes)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolHaier)
	code.Bits = uint16(haierBytes * 8)
	code.Bytes = data
	code.Data = packLSB(data)
	code.Address = 0xA0 // Haier manufacturer code
	code.Command = uint16(data[9])
	if ir.XORBytes(data[:haierBytes-1]) != data[haierBytes-1] {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}
