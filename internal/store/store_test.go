package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ir-hub-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_GetCode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "learned_codes" WHERE device_id = $1 AND button = $2`)).
			WithArgs(int64(7), "power", 1).
			WillReturnRows(sqlmock.NewRows(
				[]string{"id", "device_id", "button", "protocol", "bits", "data", "address", "command"}).
				AddRow(1, 7, "power", "NEC", 32, 0xF30C00FF, 0x00, 0x0C))

		code, err := s.GetCode(context.Background(), 7, "power")
		require.NoError(t, err)
		assert.Equal(t, "NEC", code.Protocol)
		assert.Equal(t, uint16(32), code.Bits)
		assert.Equal(t, uint16(0x0C), code.Command)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "learned_codes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := s.GetCode(context.Background(), 7, "missing")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStore_SaveCode_Upserts(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	// Relearning a button must replace its stored code in place.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "learned_codes"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("device_id","button") DO UPDATE`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := s.SaveCode(context.Background(), &model.LearnedCode{
		DeviceID: 7,
		Button:   "power",
		Protocol: "NEC",
		Bits:     32,
		Data:     0xF30C00FF,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_DeleteCode_NotFound(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "learned_codes"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := s.DeleteCode(context.Background(), 7, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_EnsureDevice_CreatesOnFirstUse(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "devices" WHERE name = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "devices"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	device, err := s.EnsureDevice(context.Background(), "living_room_tv")
	require.NoError(t, err)
	assert.Equal(t, int64(42), device.ID)
	assert.Equal(t, "living_room_tv", device.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}
