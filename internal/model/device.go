package model

import "time"

// Device represents one remote-controlled appliance the hub knows about.
// Devices are created implicitly the first time a code is learned for them.
type Device struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:128;not null"`
	Kind      string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Codes []LearnedCode `gorm:"foreignKey:DeviceID"`
}
