package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"car-rental-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

var reservationColumns = []string{
	"id", "car_id", "first_name", "last_name", "phone", "city",
	"pickup_date", "return_date", "status",
	"first_confirmation", "second_confirmation", "version",
	"created_at", "updated_at",
}

func reservationRow(status string, first, second bool, version int) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(reservationColumns).AddRow(
		"res-1", "car-1", "Yassine", "El Amrani", "0612345678", "Casablanca",
		now.AddDate(0, 0, 7), now.AddDate(0, 0, 11), status,
		first, second, version, now, now,
	)
}

func TestConfirmPickup_UpdatesReservationAndCarInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, nil, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reservations` WHERE id = \\?(.+)FOR UPDATE").
		WillReturnRows(reservationRow(models.ReservationConfirmed, true, false, 3))
	mock.ExpectExec("UPDATE `reservations` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `cars` SET").
		WithArgs(models.CarReserved, sqlmock.AnyArg(), "car-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.ConfirmPickup(context.Background(), "res-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmCall_DoesNotTouchCarStatus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, nil, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reservations` WHERE id = \\?(.+)FOR UPDATE").
		WillReturnRows(reservationRow(models.ReservationPending, false, false, 1))
	mock.ExpectExec("UPDATE `reservations` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.ConfirmCall(context.Background(), "res-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_StaleVersionIsWriteConflict(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, nil, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reservations` WHERE id = \\?(.+)FOR UPDATE").
		WillReturnRows(reservationRow(models.ReservationPending, false, false, 1))
	// a concurrent session bumped the version between load and update
	mock.ExpectExec("UPDATE `reservations` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.ConfirmCall(context.Background(), "res-1")
	assert.ErrorIs(t, err, models.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPickup_OutOfOrderRollsBackWithoutWriting(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, nil, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reservations` WHERE id = \\?(.+)FOR UPDATE").
		WillReturnRows(reservationRow(models.ReservationPending, false, false, 1))
	mock.ExpectRollback()

	err := svc.ConfirmPickup(context.Background(), "res-1")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_UnknownReservation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, nil, nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reservations` WHERE id = \\?(.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(reservationColumns))
	mock.ExpectRollback()

	err := svc.ConfirmCall(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrReservationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByCustomer_ReleasesRemainingCarsWhenOneFails(t *testing.T) {
	db, mock := newMockDB(t)
	// the release loop iterates a set, so car update order is not fixed
	mock.MatchExpectationsInOrder(false)
	svc := NewReservationService(db, nil, nil)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(reservationColumns).
		AddRow("res-1", "car-a", "Sara", "Benali", "0600000000", "Rabat",
			now, now.AddDate(0, 0, 3), models.ReservationCompleted, true, true, 2, now, now).
		AddRow("res-2", "car-b", "sara", "benali", "0600 000 000", "Rabat",
			now, now.AddDate(0, 0, 5), models.ReservationPending, false, false, 1, now, now).
		AddRow("res-3", "car-c", "Omar", "Idrissi", "0611111111", "Fes",
			now, now.AddDate(0, 0, 2), models.ReservationPending, false, false, 1, now, now)

	mock.ExpectQuery("SELECT \\* FROM `reservations`").WillReturnRows(rows)
	mock.ExpectExec("DELETE FROM `reservations`").
		WithArgs("res-1", "res-2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE `cars` SET").
		WithArgs(models.CarAvailable, sqlmock.AnyArg(), "car-a").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectExec("UPDATE `cars` SET").
		WithArgs(models.CarAvailable, sqlmock.AnyArg(), "car-b").
		WillReturnResult(sqlmock.NewResult(0, 1))

	key := models.NewCustomerKey("Sara", "Benali", "0600000000")
	require.NoError(t, svc.DeleteByCustomer(context.Background(), key))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByCustomer_NoMatches(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, nil, nil)

	mock.ExpectQuery("SELECT \\* FROM `reservations`").
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	err := svc.DeleteByCustomer(context.Background(), models.NewCustomerKey("Sara", "Benali", "0600000000"))
	assert.ErrorIs(t, err, models.ErrCustomerNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListGroupedByCustomer_GroupsAndFallbacks(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, nil, nil)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(reservationColumns).
		AddRow("res-2", "car-x", "Sara", "Benali", "0600000000", "Rabat",
			now, now.AddDate(0, 0, 5), models.ReservationPending, false, false, 1, now, now).
		AddRow("res-1", "car-x", "sara", "benali", "0600 000 000", "Rabat",
			now, now.AddDate(0, 0, 3), models.ReservationConfirmed, true, false, 2, now, now)

	mock.ExpectQuery("SELECT \\* FROM `reservations`(.+)ORDER BY created_at DESC").
		WillReturnRows(rows)
	// the referenced car row is gone (soft-deleted)
	mock.ExpectQuery("SELECT \\* FROM `cars`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image"}))

	groups, err := svc.ListGroupedByCustomer(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "res-2", groups[0].ID)
	require.Len(t, groups[0].Reservations, 2)
	for _, r := range groups[0].Reservations {
		assert.Equal(t, "Unknown Car", r.CarName)
		assert.Equal(t, "https://via.placeholder.com/150", r.CarImage)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
