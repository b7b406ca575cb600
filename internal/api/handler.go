package api

import (
	"fmt"

	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/pipeline"
	"ir-hub-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	pipe  *pipeline.Pipeline
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, p *pipeline.Pipeline) *Handler {
	return &Handler{store: s, pipe: p}
}

// codeResponse is the JSON shape of a decoded code. Data is rendered as a
// hex string so 48-bit and larger payloads survive JSON number precision.
type codeResponse struct {
	Protocol     string `json:"protocol"`
	Data         string `json:"data"`
	Bits         uint16 `json:"bits"`
	Address      uint16 `json:"address"`
	Command      uint16 `json:"command"`
	Repeat       bool   `json:"repeat"`
	Toggle       bool   `json:"toggle"`
	Extended     bool   `json:"extended"`
	ParityFailed bool   `json:"parity_failed"`
	CarrierKHz   uint16 `json:"carrier_khz"`
	DutyCycle    uint8  `json:"duty_cycle"`
	Validation   string `json:"validation"`
	RawSymbols   int    `json:"raw_symbols,omitempty"`
}

var validationNames = map[ir.ValidationStatus]string{
	ir.ValidationNone:        "none",
	ir.ValidationSingleFrame: "single_frame",
	ir.ValidationTwoFrames:   "two_frames",
	ir.ValidationThreeFrames: "three_frames",
}

func newCodeResponse(code *ir.Code) codeResponse {
	return codeResponse{
		Protocol:     code.Protocol.String(),
		Data:         fmt.Sprintf("0x%X", code.Data),
		Bits:         code.Bits,
		Address:      code.Address,
		Command:      code.Command,
		Repeat:       code.Flags&ir.FlagRepeat != 0,
		Toggle:       code.Flags&ir.FlagToggle != 0,
		Extended:     code.Flags&ir.FlagExtended != 0,
		ParityFailed: code.Flags&ir.FlagParityFailed != 0,
		CarrierKHz:   code.CarrierKHz,
		DutyCycle:    code.DutyCycle,
		Validation:   validationNames[code.Validation],
		RawSymbols:   len(code.Raw),
	}
}
