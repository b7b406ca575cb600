// Package decode implements the per-protocol IR decoders and the universal
// pulse distance/width classifier. Every decoder consumes an immutable
// symbol slice and either produces a decoded code or reports a typed
// failure; none of them keeps state between calls.
package decode

import (
	"ir-hub-backend/internal/ir"
)

// Decoder is implemented once per protocol. Decode returns
// ir.ErrTooFewSymbols when the capture is structurally too short for this
// protocol and ir.ErrTimingMismatch when the durations do not fit; the
// caller is expected to try the next decoder in its chain on either.
type Decoder interface {
	Protocol() ir.Protocol
	Decode(symbols []ir.Symbol) (*ir.Code, error)
}

// DefaultChain returns the decoders in dispatch priority order: the most
// prevalent consumer protocols first, then extended consumer protocols,
// then AC protocols, then exotic protocols, with the universal classifier
// last. Apple runs directly after NEC because it shares the NEC envelope
// and filters on its fixed vendor address, so it can never steal a frame
// from the protocols below it.
func DefaultChain() []Decoder {
	return []Decoder{
		// Tier 1: common consumer protocols
		NEC{}, Apple{}, Samsung{}, Sony{}, JVC{}, LG{}, RC5{}, RC6{},
		// Tier 2: extended consumer protocols
		Denon{}, Panasonic{}, Samsung48{}, LG2{},
		// Tier 3: AC protocols
		Daikin{}, Mitsubishi{}, Fujitsu{}, Hitachi{}, Carrier{},
		Haier{}, Midea{}, Whynter{},
		// Tier 4: exotic protocols
		Lego{}, MagiQuest{}, BoseWave{}, Fast{},
		// Tier 5: universal fallback
		Universal{},
	}
}

// matchHeader validates a header mark+space pair against the protocol
// constants at the default tolerance.
func matchHeader(sym ir.Symbol, c ir.Constants) bool {
	return ir.MatchMark(sym, c.HeaderMark, 0) && ir.MatchSpace(sym, c.HeaderSpace, 0)
}

// readWord decodes len(symbols) pulse-distance bits into a data word.
// A bitMark of 0 skips mark validation for protocols that only key on the
// space duration. With strictZero set, a space matching neither duration
// is a timing mismatch; otherwise it reads as a zero bit.
func readWord(symbols []ir.Symbol, bitMark, oneSpace, zeroSpace uint32, msbFirst, strictZero bool) (uint64, error) {
	var data uint64
	n := len(symbols)
	for i, sym := range symbols {
		if bitMark != 0 && !ir.MatchMark(sym, bitMark, 0) {
			return 0, ir.ErrTimingMismatch
		}
		one := ir.MatchSpace(sym, oneSpace, 0)
		if !one && strictZero && !ir.MatchSpace(sym, zeroSpace, 0) {
			return 0, ir.ErrTimingMismatch
		}
		if one {
			if msbFirst {
				data |= 1 << (n - 1 - i)
			} else {
				data |= 1 << i
			}
		}
	}
	return data, nil
}

// readBytes decodes n bytes of pulse-distance data, LSB first within each
// byte, the layout every byte-oriented AC protocol shares.
func readBytes(symbols []ir.Symbol, c ir.Constants, n int) ([]byte, error) {
	if len(symbols) < n*8 {
		return nil, ir.ErrTooFewSymbols
	}
	data := make([]byte, n)
	for byteIdx := 0; byteIdx < n; byteIdx++ {
		for bitIdx := 0; bitIdx < 8; bitIdx++ {
			sym := symbols[byteIdx*8+bitIdx]
			if !ir.MatchMark(sym, c.BitMark, 0) {
				return nil, ir.ErrTimingMismatch
			}
			if ir.MatchSpace(sym, c.OneSpace, 0) {
				data[byteIdx] |= 1 << bitIdx
			} else if !ir.MatchSpace(sym, c.ZeroSpace, 0) {
				return nil, ir.ErrTimingMismatch
			}
		}
	}
	return data, nil
}

// packLSB packs the first 4 bytes of an AC frame into the data word so
// short consumers can compare codes without carrying the byte payload.
func packLSB(data []byte) uint64 {
	var word uint64
	for i := 0; i < len(data) && i < 4; i++ {
		word |= uint64(data[i]) << (8 * i)
	}
	return word
}

func newCode(p ir.Protocol) *ir.Code {
	code := &ir.Code{Protocol: p, DutyCycle: 33}
	if c, ok := ir.LookupConstants(p); ok {
		code.CarrierKHz = c.CarrierKHz
		if c.MSBFirst {
			code.Flags |= ir.FlagMSBFirst
		}
	}
	return code
}
