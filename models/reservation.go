package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation status values. The lifecycle is
// pending -> confirmed -> completed, with cancelled reachable from
// pending or confirmed. Completed is terminal.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// Reservation is a customer's request to rent one car for a date range.
// The two confirmation flags record the manual staff steps (confirmation
// phone call, physical pickup handoff) layered on top of Status. Once set
// they are never cleared.
type Reservation struct {
	ID    string `gorm:"primaryKey;type:char(36)" json:"id"`
	CarID string `gorm:"column:car_id;type:char(36);index" json:"carId"`

	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Phone     string `gorm:"size:50" json:"phone"`
	City      string `gorm:"size:100" json:"city"`

	PickupDate time.Time `gorm:"column:pickup_date" json:"pickupDate"`
	ReturnDate time.Time `gorm:"column:return_date" json:"returnDate"`

	Status             string `gorm:"size:20;index;default:pending" json:"status"`
	FirstConfirmation  bool   `gorm:"column:first_confirmation;default:false" json:"firstConfirmation"`
	SecondConfirmation bool   `gorm:"column:second_confirmation;default:false" json:"secondConfirmation"`

	// Version guards concurrent admin sessions; every transition runs a
	// conditional update against it.
	Version int `gorm:"default:1" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Car Car `gorm:"foreignKey:CarID;references:ID" json:"car,omitempty"`
}

func (r *Reservation) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReservationPending
	}
	if r.Version == 0 {
		r.Version = 1
	}
	return nil
}

// Key returns the grouping key for the customer this reservation belongs to.
func (r *Reservation) Key() CustomerKey {
	return NewCustomerKey(r.FirstName, r.LastName, r.Phone)
}

// ConfirmCall records the staff confirmation phone call. Rejected once the
// reservation left the pending stage or was cancelled.
func (r *Reservation) ConfirmCall() error {
	if r.Status == ReservationCancelled || r.Status == ReservationCompleted {
		return ErrInvalidTransition
	}
	if r.FirstConfirmation {
		return ErrInvalidTransition
	}
	r.Status = ReservationConfirmed
	r.FirstConfirmation = true
	return nil
}

// ConfirmPickup records the physical handoff and completes the
// reservation. The call must have been confirmed first.
func (r *Reservation) ConfirmPickup() error {
	if r.Status == ReservationCancelled {
		return ErrInvalidTransition
	}
	if !r.FirstConfirmation || r.SecondConfirmation {
		return ErrInvalidTransition
	}
	r.Status = ReservationCompleted
	r.SecondConfirmation = true
	return nil
}

// Cancel aborts the reservation. Only possible while the pickup has not
// been confirmed; a completed rental is terminal.
func (r *Reservation) Cancel() error {
	if r.SecondConfirmation || r.Status == ReservationCancelled {
		return ErrInvalidTransition
	}
	r.Status = ReservationCancelled
	return nil
}
