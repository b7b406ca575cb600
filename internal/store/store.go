package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ir-hub-backend/internal/model"
)

// Store defines the persistence operations the API layer needs. Lookups
// that find nothing return gorm.ErrRecordNotFound so handlers can map it
// to a 404.
type Store interface {
	EnsureDevice(ctx context.Context, name string) (*model.Device, error)
	GetDevice(ctx context.Context, name string) (*model.Device, error)
	ListDevices(ctx context.Context) ([]model.Device, error)

	SaveCode(ctx context.Context, code *model.LearnedCode) error
	GetCode(ctx context.Context, deviceID int64, button string) (*model.LearnedCode, error)
	ListCodes(ctx context.Context, deviceID int64) ([]model.LearnedCode, error)
	DeleteCode(ctx context.Context, deviceID int64, button string) error

	SaveACState(ctx context.Context, cfg *model.ACConfig) error
	GetACState(ctx context.Context, deviceID int64) (*model.ACConfig, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// EnsureDevice returns the named device, creating it on first use.
func (s *gormStore) EnsureDevice(ctx context.Context, name string) (*model.Device, error) {
	var device model.Device
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&device).Error
	if err == nil {
		return &device, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup device %q: %w", name, err)
	}

	device = model.Device{Name: name}
	if err := s.db.WithContext(ctx).Create(&device).Error; err != nil {
		return nil, fmt.Errorf("create device %q: %w", name, err)
	}
	return &device, nil
}

func (s *gormStore) GetDevice(ctx context.Context, name string) (*model.Device, error) {
	var device model.Device
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&device).Error; err != nil {
		return nil, fmt.Errorf("lookup device %q: %w", name, err)
	}
	return &device, nil
}

func (s *gormStore) ListDevices(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	if err := s.db.WithContext(ctx).Order("name").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return devices, nil
}

// SaveCode upserts on (device_id, button): relearning a button replaces
// its stored code.
func (s *gormStore) SaveCode(ctx context.Context, code *model.LearnedCode) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_id"}, {Name: "button"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"protocol", "bits", "data", "address", "command", "flags",
			"carrier_khz", "duty_cycle", "validation", "bytes", "raw_json",
			"updated_at",
		}),
	}).Create(code).Error
	if err != nil {
		return fmt.Errorf("save code %q for device %d: %w", code.Button, code.DeviceID, err)
	}
	return nil
}

func (s *gormStore) GetCode(ctx context.Context, deviceID int64, button string) (*model.LearnedCode, error) {
	var code model.LearnedCode
	err := s.db.WithContext(ctx).
		Where("device_id = ? AND button = ?", deviceID, button).
		First(&code).Error
	if err != nil {
		return nil, fmt.Errorf("lookup code %q for device %d: %w", button, deviceID, err)
	}
	return &code, nil
}

func (s *gormStore) ListCodes(ctx context.Context, deviceID int64) ([]model.LearnedCode, error) {
	var codes []model.LearnedCode
	err := s.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("button").
		Find(&codes).Error
	if err != nil {
		return nil, fmt.Errorf("list codes for device %d: %w", deviceID, err)
	}
	return codes, nil
}

func (s *gormStore) DeleteCode(ctx context.Context, deviceID int64, button string) error {
	res := s.db.WithContext(ctx).
		Where("device_id = ? AND button = ?", deviceID, button).
		Delete(&model.LearnedCode{})
	if res.Error != nil {
		return fmt.Errorf("delete code %q for device %d: %w", button, deviceID, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveACState upserts the single state row per device.
func (s *gormStore) SaveACState(ctx context.Context, cfg *model.ACConfig) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state_json", "updated_at"}),
	}).Create(cfg).Error
	if err != nil {
		return fmt.Errorf("save ac state for device %d: %w", cfg.DeviceID, err)
	}
	return nil
}

func (s *gormStore) GetACState(ctx context.Context, deviceID int64) (*model.ACConfig, error) {
	var cfg model.ACConfig
	if err := s.db.WithContext(ctx).First(&cfg, "device_id = ?", deviceID).Error; err != nil {
		return nil, fmt.Errorf("lookup ac state for device %d: %w", deviceID, err)
	}
	return &cfg, nil
}
