package model

import (
	"encoding/json"
	"fmt"
	"time"

	"ir-hub-backend/internal/acstate"
)

// ACConfig persists the last transmitted AC state for a device. AC remotes
// are stateful, so the hub must remember the full state between mutations.
type ACConfig struct {
	DeviceID  int64  `gorm:"primaryKey"`
	StateJSON string `gorm:"type:text;not null"`
	UpdatedAt time.Time

	// Associations
	Device Device `gorm:"constraint:OnDelete:CASCADE"`
}

// NewACConfig serializes a state for persistence.
func NewACConfig(deviceID int64, s *acstate.State) (*ACConfig, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal ac state: %w", err)
	}
	return &ACConfig{DeviceID: deviceID, StateJSON: string(raw)}, nil
}

// State deserializes the stored state.
func (c *ACConfig) State() (acstate.State, error) {
	var s acstate.State
	if err := json.Unmarshal([]byte(c.StateJSON), &s); err != nil {
		return s, fmt.Errorf("unmarshal ac state for device %d: %w", c.DeviceID, err)
	}
	return s, nil
}
