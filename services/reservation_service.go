package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"car-rental-backend/models"
	"car-rental-backend/queue"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

// ReservationService owns the reservation lifecycle: creation, the two
// staff confirmation steps, cancellation and grouped customer deletion.
// Every transition runs inside one transaction with a row lock and a
// version-conditional update, so the reservation and the car can never
// half-apply and concurrent admin sessions surface as write conflicts.
type ReservationService struct {
	DB        *gorm.DB
	Cache     *CarCache
	Publisher *EventPublisher
}

func NewReservationService(db *gorm.DB, cache *CarCache, publisher *EventPublisher) *ReservationService {
	return &ReservationService{DB: db, Cache: cache, Publisher: publisher}
}

type CreateReservationInput struct {
	CarID      string `json:"carId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`
}

// validateCreateInput trims the input in place and returns the parsed date
// range. All checks happen before any store call.
func validateCreateInput(in *CreateReservationInput, now time.Time) (time.Time, time.Time, error) {
	in.CarID = strings.TrimSpace(in.CarID)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.City = strings.TrimSpace(in.City)

	required := []struct{ field, value string }{
		{"carId", in.CarID},
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"phone", in.Phone},
		{"city", in.City},
		{"pickupDate", strings.TrimSpace(in.PickupDate)},
		{"returnDate", strings.TrimSpace(in.ReturnDate)},
	}
	for _, r := range required {
		if r.value == "" {
			return time.Time{}, time.Time{}, &models.ValidationError{Field: r.field, Reason: "is required"}
		}
	}

	pickup, err := time.Parse(dateLayout, strings.TrimSpace(in.PickupDate))
	if err != nil {
		return time.Time{}, time.Time{}, &models.ValidationError{Field: "pickupDate", Reason: "must be a date in YYYY-MM-DD format"}
	}
	ret, err := time.Parse(dateLayout, strings.TrimSpace(in.ReturnDate))
	if err != nil {
		return time.Time{}, time.Time{}, &models.ValidationError{Field: "returnDate", Reason: "must be a date in YYYY-MM-DD format"}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if pickup.Before(today) {
		return time.Time{}, time.Time{}, &models.ValidationError{Field: "pickupDate", Reason: "must not be in the past"}
	}
	if !ret.After(pickup) {
		return time.Time{}, time.Time{}, &models.ValidationError{Field: "returnDate", Reason: "must be after the pickup date"}
	}
	return pickup, ret, nil
}

// Create validates a booking request and persists it as a pending
// reservation. A pending reservation does not reserve the car: several
// customers may request the same car and staff reconcile them through the
// confirmation workflow.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	pickup, ret, err := validateCreateInput(&in, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	var car models.Car
	if err := s.DB.WithContext(ctx).First(&car, "id = ?", in.CarID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCarNotFound
		}
		return nil, &models.PersistenceError{Op: "load car", Err: err}
	}
	if car.Status == models.CarHidden {
		return nil, &models.ValidationError{Field: "carId", Reason: "is not offered for booking"}
	}

	res := models.Reservation{
		CarID:      car.ID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		City:       in.City,
		PickupDate: pickup,
		ReturnDate: ret,
		Status:     models.ReservationPending,
	}
	if err := s.DB.WithContext(ctx).Create(&res).Error; err != nil {
		return nil, &models.PersistenceError{Op: "create reservation", Err: err}
	}
	res.Car = car
	return &res, nil
}

// Get returns one reservation with its car preloaded.
func (s *ReservationService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := s.DB.WithContext(ctx).Preload("Car").First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrReservationNotFound
		}
		return nil, &models.PersistenceError{Op: "load reservation", Err: err}
	}
	return &res, nil
}

// ConfirmCall records the staff confirmation phone call
// (pending -> confirmed).
func (s *ReservationService) ConfirmCall(ctx context.Context, id string) error {
	res, err := s.transition(ctx, id, (*models.Reservation).ConfirmCall, false)
	if err != nil {
		return err
	}
	s.publishEvent(ctx, res)
	return nil
}

// ConfirmPickup records the physical handoff (confirmed -> completed) and
// flips the car to reserved within the same transaction.
func (s *ReservationService) ConfirmPickup(ctx context.Context, id string) error {
	res, err := s.transition(ctx, id, (*models.Reservation).ConfirmPickup, true)
	if err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	s.publishEvent(ctx, res)
	return nil
}

// Cancel aborts a reservation whose pickup has not been confirmed. Car
// status is untouched: a cancellable reservation never reserved its car.
func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	res, err := s.transition(ctx, id, (*models.Reservation).Cancel, false)
	if err != nil {
		return err
	}
	s.publishEvent(ctx, res)
	return nil
}

// transition loads the reservation under a FOR UPDATE lock, applies the
// state-machine step and persists it with a version-conditional update.
// reserveCar additionally marks the referenced car reserved inside the
// same transaction.
func (s *ReservationService) transition(
	ctx context.Context,
	id string,
	apply func(*models.Reservation) error,
	reserveCar bool,
) (*models.Reservation, error) {
	var updated models.Reservation

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&res, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrReservationNotFound
			}
			return &models.PersistenceError{Op: "load reservation", Err: err}
		}

		if err := apply(&res); err != nil {
			return err
		}

		result := tx.Model(&models.Reservation{}).
			Where("id = ? AND version = ?", res.ID, res.Version).
			Updates(map[string]interface{}{
				"status":              res.Status,
				"first_confirmation":  res.FirstConfirmation,
				"second_confirmation": res.SecondConfirmation,
				"version":             res.Version + 1,
			})
		if result.Error != nil {
			return &models.PersistenceError{Op: "update reservation", Err: result.Error}
		}
		if result.RowsAffected == 0 {
			return models.ErrConflict
		}
		res.Version++

		if reserveCar && res.CarID != "" {
			if err := tx.Model(&models.Car{}).
				Where("id = ?", res.CarID).
				Update("status", models.CarReserved).Error; err != nil {
				return &models.PersistenceError{Op: "reserve car", Err: err}
			}
		}

		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByCustomer removes every reservation grouped under the given
// customer key and releases the cars they referenced. The deletion itself
// must succeed; releasing a car is best-effort and only logged on failure.
func (s *ReservationService) DeleteByCustomer(ctx context.Context, key models.CustomerKey) error {
	var all []models.Reservation
	if err := s.DB.WithContext(ctx).Find(&all).Error; err != nil {
		return &models.PersistenceError{Op: "load reservations", Err: err}
	}

	ids := make([]string, 0, 4)
	carIDs := map[string]struct{}{}
	for _, r := range all {
		if r.Key() != key {
			continue
		}
		ids = append(ids, r.ID)
		if r.CarID != "" {
			carIDs[r.CarID] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return models.ErrCustomerNotFound
	}

	if err := s.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.Reservation{}).Error; err != nil {
		return &models.PersistenceError{Op: "delete reservations", Err: err}
	}

	for carID := range carIDs {
		if err := s.DB.WithContext(ctx).Model(&models.Car{}).
			Where("id = ?", carID).
			Update("status", models.CarAvailable).Error; err != nil {
			log.Printf("warning: failed to release car %s after customer deletion: %v", carID, err)
		}
	}
	s.Cache.Invalidate(ctx)
	return nil
}

// ReservationSummary is the per-reservation view the admin users page
// renders inside a customer group.
type ReservationSummary struct {
	ID                 string `json:"id"`
	CarID              string `json:"carId"`
	CarName            string `json:"carName"`
	CarImage           string `json:"carImage"`
	PickupDate         string `json:"pickupDate"`
	ReturnDate         string `json:"returnDate"`
	Status             string `json:"status"`
	FirstConfirmation  bool   `json:"firstConfirmation"`
	SecondConfirmation bool   `json:"secondConfirmation"`
}

// CustomerGroup clusters the reservations of one presumed customer.
type CustomerGroup struct {
	ID           string               `json:"id"`
	FirstName    string               `json:"firstName"`
	LastName     string               `json:"lastName"`
	Phone        string               `json:"phone"`
	City         string               `json:"city"`
	CreatedAt    time.Time            `json:"created_at"`
	Reservations []ReservationSummary `json:"reservations"`
}

// ListGroupedByCustomer returns all reservations, newest first, clustered
// by customer key in first-seen order. The group id is the id of the
// newest reservation in the group, matching how the admin UI addresses a
// "user" it has no real id for.
func (s *ReservationService) ListGroupedByCustomer(ctx context.Context) ([]CustomerGroup, error) {
	var list []models.Reservation
	if err := s.DB.WithContext(ctx).
		Preload("Car").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, &models.PersistenceError{Op: "load reservations", Err: err}
	}

	groups := make([]CustomerGroup, 0, len(list))
	index := map[models.CustomerKey]int{}
	for _, r := range list {
		summary := ReservationSummary{
			ID:                 r.ID,
			CarID:              r.CarID,
			CarName:            r.Car.Name,
			CarImage:           r.Car.Image,
			PickupDate:         r.PickupDate.Format(dateLayout),
			ReturnDate:         r.ReturnDate.Format(dateLayout),
			Status:             r.Status,
			FirstConfirmation:  r.FirstConfirmation,
			SecondConfirmation: r.SecondConfirmation,
		}
		// car row may be gone (soft-deleted); keep the group renderable
		if summary.CarName == "" {
			summary.CarName = "Unknown Car"
		}
		if summary.CarImage == "" {
			summary.CarImage = "https://via.placeholder.com/150"
		}

		key := r.Key()
		if i, ok := index[key]; ok {
			groups[i].Reservations = append(groups[i].Reservations, summary)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, CustomerGroup{
			ID:           r.ID,
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			Phone:        r.Phone,
			City:         r.City,
			CreatedAt:    r.CreatedAt,
			Reservations: []ReservationSummary{summary},
		})
	}
	return groups, nil
}

func (s *ReservationService) publishEvent(ctx context.Context, res *models.Reservation) {
	if s.Publisher == nil || res == nil {
		return
	}
	evt := queue.ReservationEvent{
		ReservationID: res.ID,
		CarID:         res.CarID,
		CarName:       res.Car.Name,
		FirstName:     res.FirstName,
		LastName:      res.LastName,
		Phone:         res.Phone,
		Status:        res.Status,
		PickupDate:    res.PickupDate.Format(dateLayout),
		ReturnDate:    res.ReturnDate.Format(dateLayout),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Publisher.Publish(ctx, evt); err != nil {
		log.Printf("warning: failed to publish event for reservation %s (%s): %v", res.ID, res.Status, err)
	}
}
