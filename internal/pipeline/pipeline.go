// Package pipeline owns the capture-to-code decode path: noise filtering,
// gap trimming, tiered decoder dispatch, NEC repeat resolution and the
// multi-frame verification used while learning a remote. All mutable
// decode state lives on the Pipeline instance, so independent pipelines
// never share context.
package pipeline

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/ir/decode"
)

const (
	noiseThresholdUS = 100
	gapTrimUS        = 50000
	repeatWindow     = 200 * time.Millisecond
	verifyWindow     = 500 * time.Millisecond
	rawMinSymbols    = 10
	rawMaxSymbols    = 256
)

// Options configures a Pipeline. Zero values select the default decoder
// chain, two-frame verification and the wall clock.
type Options struct {
	Chain        []decode.Decoder
	VerifyFrames int // matching frames required to accept a learned code (2 or 3)
	Now          func() time.Time
}

// Pipeline decodes captures. Safe for concurrent use.
type Pipeline struct {
	chain        []decode.Decoder
	verifyFrames int
	now          func() time.Time

	mu        sync.Mutex
	lastNEC   *ir.Code
	lastNECAt time.Time

	candidate   *ir.Code
	matches     int
	candidateAt time.Time
}

func New(opts Options) *Pipeline {
	p := &Pipeline{
		chain:        opts.Chain,
		verifyFrames: opts.VerifyFrames,
		now:          opts.Now,
	}
	if p.chain == nil {
		p.chain = decode.DefaultChain()
	}
	if p.verifyFrames < 2 || p.verifyFrames > 3 {
		p.verifyFrames = 2
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Decode runs one capture through the pipeline and returns the first
// protocol match, a resolved repeat, or a Raw retention of the capture.
func (p *Pipeline) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	symbols = trimGap(filterNoise(symbols))
	if len(symbols) == 0 {
		return nil, ir.ErrTooFewSymbols
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.decodeLocked(symbols)
}

// Learn decodes a capture and feeds it to the multi-frame verifier. It
// returns the decoded code and whether enough matching frames have been
// seen to accept it. A frame that mismatches the buffered candidate, or
// arrives after the verification window, restarts the buffer with itself.
func (p *Pipeline) Learn(symbols []ir.Symbol) (*ir.Code, bool, error) {
	symbols = trimGap(filterNoise(symbols))
	if len(symbols) == 0 {
		return nil, false, ir.ErrTooFewSymbols
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	code, err := p.decodeLocked(symbols)
	if err != nil {
		return nil, false, err
	}

	now := p.now()
	fresh := p.candidate != nil && now.Sub(p.candidateAt) <= verifyWindow
	if !fresh || !equalCodes(p.candidate, code) {
		p.candidate = code.Clone()
		p.matches = 1
		p.candidateAt = now
		code.Validation = ir.ValidationSingleFrame
		return code, false, nil
	}

	p.matches++
	p.candidateAt = now
	if p.matches >= 3 {
		code.Validation = ir.ValidationThreeFrames
	} else {
		code.Validation = ir.ValidationTwoFrames
	}

	accepted := p.matches >= p.verifyFrames
	if accepted {
		p.candidate = nil
		p.matches = 0
	}
	return code, accepted, nil
}

func (p *Pipeline) decodeLocked(symbols []ir.Symbol) (*ir.Code, error) {
	now := p.now()
	for _, d := range p.chain {
		code, err := d.Decode(symbols)
		switch {
		case err == nil:
			if code.Protocol == ir.ProtocolNEC && code.Flags&ir.FlagRepeat == 0 {
				if p.lastNEC != nil && p.lastNEC.Data == code.Data &&
					now.Sub(p.lastNECAt) <= repeatWindow {
					code.Flags |= ir.FlagAutoRepeat
				}
				p.lastNEC = code.Clone()
				p.lastNECAt = now
			}
			code.Validation = ir.ValidationSingleFrame
			return code, nil
		case errors.Is(err, ir.ErrRepeatFrame):
			// A ditto is only meaningful while the button is still held.
			if p.lastNEC == nil || now.Sub(p.lastNECAt) > repeatWindow {
				return nil, ir.ErrNotSupported
			}
			repeat := p.lastNEC.Clone()
			repeat.Flags |= ir.FlagRepeat
			repeat.Validation = ir.ValidationSingleFrame
			p.lastNECAt = now
			return repeat, nil
		}
	}

	if len(symbols) < rawMinSymbols {
		return nil, ir.ErrTooFewSymbols
	}
	if len(symbols) > rawMaxSymbols {
		return nil, ir.ErrTimingMismatch
	}
	raw := &ir.Code{
		Protocol:   ir.ProtocolRaw,
		Bits:       uint16(len(symbols)),
		CarrierKHz: 38,
		DutyCycle:  33,
		Validation: ir.ValidationSingleFrame,
		Raw:        append([]ir.Symbol{}, symbols...),
	}
	return raw, nil
}

// filterNoise removes sub-100us glitches. A symbol with both halves under
// the threshold is dropped; one with a single noisy half is folded into
// the following symbol so the real transition is not lost. The final
// symbol is always kept.
func filterNoise(symbols []ir.Symbol) []ir.Symbol {
	out := make([]ir.Symbol, 0, len(symbols))
	var carry uint32
	for i, sym := range symbols {
		last := i == len(symbols)-1
		if !last && (sym.Mark < noiseThresholdUS || sym.Space < noiseThresholdUS) {
			if sym.Mark < noiseThresholdUS && sym.Space < noiseThresholdUS {
				continue
			}
			carry += sym.Mark + sym.Space
			continue
		}
		sym.Mark += carry
		carry = 0
		out = append(out, sym)
	}
	return out
}

// trimGap drops leading and trailing symbols that contain an idle gap of
// 50ms or more; they belong to the silence around the frame, not to it.
func trimGap(symbols []ir.Symbol) []ir.Symbol {
	start, end := 0, len(symbols)
	for start < end && (symbols[start].Mark >= gapTrimUS || symbols[start].Space >= gapTrimUS) {
		start++
	}
	for end > start && (symbols[end-1].Mark >= gapTrimUS || symbols[end-1].Space >= gapTrimUS) {
		end--
	}
	return symbols[start:end]
}

// equalCodes is the verification equality rule: bi-phase protocols
// compare with the toggle bit masked out of the data word, Raw codes
// compare symbol timings at 10% tolerance, everything else compares
// exactly on the decoded fields.
func equalCodes(a, b *ir.Code) bool {
	if a.Protocol != b.Protocol || a.Bits != b.Bits {
		return false
	}
	switch a.Protocol {
	case ir.ProtocolRaw:
		if len(a.Raw) != len(b.Raw) {
			return false
		}
		for i := range a.Raw {
			if !ir.MatchPercent(b.Raw[i].Mark, a.Raw[i].Mark, 10) ||
				!ir.MatchPercent(b.Raw[i].Space, a.Raw[i].Space, 10) {
				return false
			}
		}
		return true
	case ir.ProtocolRC5:
		return a.Data&^uint64(1<<11) == b.Data&^uint64(1<<11) &&
			a.Address == b.Address && a.Command == b.Command
	case ir.ProtocolRC6:
		return a.Data&^uint64(1<<16) == b.Data&^uint64(1<<16) &&
			a.Address == b.Address && a.Command == b.Command
	}
	// The data word only carries the first 4 bytes of long AC frames, so
	// the full payload has to agree too.
	return a.Data == b.Data && a.Address == b.Address && a.Command == b.Command &&
		bytes.Equal(a.Bytes, b.Bytes)
}
