package decode

import (
	"ir-hub-backend/internal/ir"
)

const (
	fujitsuMinBytes = 8
	fujitsuMaxBytes = 16
)

// Fujitsu decodes Fujitsu General AC frames. The frame length varies
// between 8 bytes (power toggle and other stateless commands) and
// 16 bytes (the full state frame); the last byte is a two's-complement
// sum over the rest.
type Fujitsu struct{}

func (Fujitsu) Protocol() ir.Protocol { return ir.ProtocolFujitsu }

func (Fujitsu) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolFujitsu)
	if len(symbols) < fujitsuMinBytes*8+1 {
		return nil, ir.ErrTooFewSymbols
	}
	if len(symbols) > fujitsuMaxBytes*8+2 {
		// Hitachi shares this header; its frames carry 33 bytes or more.
		return nil, ir.ErrTimingMismatch
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	numBytes := (len(symbols) - 1) / 8
	if numBytes > fujitsuMaxBytes {
		numBytes = fujitsuMaxBytes
	}
	data, err := readBytes(symbols[1:], c, numBytes)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolFujitsu)
	code.Bits = uint16(numBytes * 8)
	code.Bytes = data
	code.Data = packLSB(data)
	code.Address = 0x14 // Fujitsu manufacturer code
	code.Command = uint16(data[5])
	if ir.SumBytesComplement(data[:numBytes-1]) != data[numBytes-1] {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}
