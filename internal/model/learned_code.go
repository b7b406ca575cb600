package model

import (
	"encoding/json"
	"fmt"
	"time"

	"ir-hub-backend/internal/ir"
)

// LearnedCode persists one decoded button press. The decoded fields are
// stored as columns; raw symbol timings, kept only for unrecognized
// protocols, are serialized to JSON so a replay is byte-identical to the
// capture.
type LearnedCode struct {
	ID         int64  `gorm:"primaryKey"`
	DeviceID   int64  `gorm:"uniqueIndex:idx_device_button;not null"`
	Button     string `gorm:"uniqueIndex:idx_device_button;size:64;not null"`
	Protocol   string `gorm:"size:32;not null"`
	Bits       uint16 `gorm:"not null"`
	Data       uint64
	Address    uint16
	Command    uint16
	Flags      uint8
	CarrierKHz uint16 `gorm:"column:carrier_khz"`
	DutyCycle  uint8
	Validation uint8
	Bytes      []byte
	RawJSON    string `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Associations
	Device Device `gorm:"constraint:OnDelete:CASCADE"`
}

// NewLearnedCode builds the persistence record for an accepted code.
func NewLearnedCode(deviceID int64, button string, code *ir.Code) (*LearnedCode, error) {
	rec := &LearnedCode{
		DeviceID:   deviceID,
		Button:     button,
		Protocol:   code.Protocol.String(),
		Bits:       code.Bits,
		Data:       code.Data,
		Address:    code.Address,
		Command:    code.Command,
		Flags:      uint8(code.Flags),
		CarrierKHz: code.CarrierKHz,
		DutyCycle:  code.DutyCycle,
		Validation: uint8(code.Validation),
	}
	if len(code.Bytes) > 0 {
		rec.Bytes = append([]byte(nil), code.Bytes...)
	}
	if len(code.Raw) > 0 {
		raw, err := json.Marshal(code.Raw)
		if err != nil {
			return nil, fmt.Errorf("marshal raw symbols: %w", err)
		}
		rec.RawJSON = string(raw)
	}
	return rec, nil
}

// ToCode rebuilds the decoded code from the stored record.
func (c *LearnedCode) ToCode() (*ir.Code, error) {
	protocol, err := ir.ParseProtocol(c.Protocol)
	if err != nil {
		return nil, fmt.Errorf("stored code %d: %w", c.ID, err)
	}

	code := &ir.Code{
		Protocol:   protocol,
		Data:       c.Data,
		Bits:       c.Bits,
		Address:    c.Address,
		Command:    c.Command,
		Flags:      ir.Flags(c.Flags),
		CarrierKHz: c.CarrierKHz,
		DutyCycle:  c.DutyCycle,
		Validation: ir.ValidationStatus(c.Validation),
	}
	if len(c.Bytes) > 0 {
		code.Bytes = append([]byte(nil), c.Bytes...)
	}
	if c.RawJSON != "" {
		if err := json.Unmarshal([]byte(c.RawJSON), &code.Raw); err != nil {
			return nil, fmt.Errorf("unmarshal raw symbols for code %d: %w", c.ID, err)
		}
	}
	return code, nil
}
