package services

import (
	"context"
	"testing"
	"time"

	"car-rental-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

func validInput() CreateReservationInput {
	return CreateReservationInput{
		CarID:      "car-1",
		FirstName:  "Yassine",
		LastName:   "El Amrani",
		Phone:      "0612345678",
		City:       "Casablanca",
		PickupDate: "2025-06-01",
		ReturnDate: "2025-06-05",
	}
}

func TestValidateCreateInput_OK(t *testing.T) {
	in := validInput()
	pickup, ret, err := validateCreateInput(&in, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), pickup)
	assert.Equal(t, time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), ret)
}

func TestValidateCreateInput_TrimsFields(t *testing.T) {
	in := validInput()
	in.FirstName = "  Yassine  "
	in.CarID = " car-1 "
	_, _, err := validateCreateInput(&in, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Yassine", in.FirstName)
	assert.Equal(t, "car-1", in.CarID)
}

func TestValidateCreateInput_MissingFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*CreateReservationInput)
	}{
		{"carId", func(in *CreateReservationInput) { in.CarID = "" }},
		{"firstName", func(in *CreateReservationInput) { in.FirstName = "  " }},
		{"lastName", func(in *CreateReservationInput) { in.LastName = "" }},
		{"phone", func(in *CreateReservationInput) { in.Phone = "" }},
		{"city", func(in *CreateReservationInput) { in.City = "" }},
		{"pickupDate", func(in *CreateReservationInput) { in.PickupDate = "" }},
		{"returnDate", func(in *CreateReservationInput) { in.ReturnDate = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, _, err := validateCreateInput(&in, testNow)

			var vErr *models.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestValidateCreateInput_PastPickupDate(t *testing.T) {
	in := validInput()
	in.PickupDate = "2025-05-19"
	_, _, err := validateCreateInput(&in, testNow)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "pickupDate", vErr.Field)
}

func TestValidateCreateInput_SameDayPickupAllowed(t *testing.T) {
	in := validInput()
	in.PickupDate = "2025-05-20"
	in.ReturnDate = "2025-05-21"
	_, _, err := validateCreateInput(&in, testNow)
	assert.NoError(t, err)
}

func TestValidateCreateInput_InvertedRange(t *testing.T) {
	in := validInput()
	in.PickupDate = "2025-06-05"
	in.ReturnDate = "2025-06-01"
	_, _, err := validateCreateInput(&in, testNow)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "returnDate", vErr.Field)
}

func TestValidateCreateInput_EqualDatesRejected(t *testing.T) {
	in := validInput()
	in.PickupDate = "2025-06-01"
	in.ReturnDate = "2025-06-01"
	_, _, err := validateCreateInput(&in, testNow)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "returnDate", vErr.Field)
}

func TestValidateCreateInput_BadDateFormat(t *testing.T) {
	in := validInput()
	in.PickupDate = "01/06/2025"
	_, _, err := validateCreateInput(&in, testNow)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "pickupDate", vErr.Field)
}

func TestCreate_RejectsInvalidInputBeforeAnyStoreCall(t *testing.T) {
	// nil DB: the service must reject bad input before touching the store
	svc := NewReservationService(nil, nil, nil)

	in := validInput()
	in.ReturnDate = in.PickupDate
	res, err := svc.Create(context.Background(), in)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Nil(t, res)
}
