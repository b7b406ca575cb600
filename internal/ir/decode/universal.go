package decode

import (
	"ir-hub-backend/internal/ir"
)

const (
	dwBinSizeUS   = 50
	dwBinCount    = 200 // durations cap at 10ms
	dwMinBits     = 7
	dwMinSymbols  = 2*dwMinBits + 4
	dwMaxDataBits = 64
)

// Universal is the fallback decoder for unrecognized pulse distance or
// pulse width protocols. It builds 50us histograms of the mark and space
// durations between header and stop bit, collapses each histogram into at
// most two duration clusters, classifies the encoding from which side
// varies, and reads the bits LSB first against the midpoint threshold.
// Frames where both sides vary are read as pulse distance.
type Universal struct{}

func (Universal) Protocol() ir.Protocol { return ir.ProtocolPulseDistance }

func (Universal) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	if len(symbols) < dwMinSymbols {
		return nil, ir.ErrTooFewSymbols
	}

	var markHist, spaceHist [dwBinCount]uint16
	markMax, spaceMax := 0, 0

	// Histogram the body only: symbol 0 is the header, the final symbol
	// carries the stop bit or the inter-frame gap.
	for _, sym := range symbols[1 : len(symbols)-1] {
		markBin := int(sym.Mark) / dwBinSizeUS
		spaceBin := int(sym.Space) / dwBinSizeUS
		if markBin >= dwBinCount || spaceBin >= dwBinCount {
			return nil, ir.ErrTimingMismatch
		}
		markHist[markBin]++
		spaceHist[spaceBin]++
		if markBin > markMax {
			markMax = markBin
		}
		if spaceBin > spaceMax {
			spaceMax = spaceBin
		}
	}

	markShort, markLong, ok := aggregateBins(markHist[:], markMax)
	if !ok {
		return nil, ir.ErrTimingMismatch
	}
	spaceShort, spaceLong, ok := aggregateBins(spaceHist[:], spaceMax)
	if !ok {
		return nil, ir.ErrTimingMismatch
	}
	if markLong == 0 && spaceLong == 0 {
		// A single duration on both sides carries no data.
		return nil, ir.ErrTimingMismatch
	}

	protocol := ir.ProtocolPulseDistance
	bits := len(symbols) - 2 // header and stop bit
	threshold := uint32(spaceShort+spaceLong) / 2 * dwBinSizeUS
	if spaceLong == 0 {
		// Constant spaces, varying marks: pulse width with no stop bit,
		// so the final symbol is a data bit.
		protocol = ir.ProtocolPulseWidth
		bits = len(symbols) - 1
		threshold = uint32(markShort+markLong) / 2 * dwBinSizeUS
	}
	if bits <= 0 || bits > dwMaxDataBits {
		return nil, ir.ErrTimingMismatch
	}

	var data uint64
	for i := 0; i < bits; i++ {
		sym := symbols[1+i]
		d := sym.Space
		if protocol == ir.ProtocolPulseWidth {
			d = sym.Mark
		}
		if d >= threshold {
			data |= 1 << i
		}
	}

	code := &ir.Code{
		Protocol:   protocol,
		Data:       data,
		Bits:       uint16(bits),
		CarrierKHz: 38,
		DutyCycle:  33,
	}
	return code, nil
}

// aggregateBins collapses a histogram into at most two clusters, merging
// adjacent bins across single-bin gaps into their rounded weighted
// average. It reports false when a third cluster appears, which marks the
// capture as something other than pulse distance/width.
func aggregateBins(hist []uint16, maxIndex int) (short, long int, ok bool) {
	var sum, weightedSum int
	gap := 0
	for i := 0; i <= maxIndex; i++ {
		if hist[i] != 0 {
			sum += int(hist[i])
			weightedSum += int(hist[i]) * i
			gap = 0
		} else {
			gap++
		}

		if sum != 0 && (i == maxIndex || gap > 1) {
			cluster := (weightedSum + sum/2) / sum
			switch {
			case short == 0:
				short = cluster
			case long == 0:
				long = cluster
			default:
				return 0, 0, false
			}
			sum, weightedSum = 0, 0
		}
	}
	return short, long, true
}
