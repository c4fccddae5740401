package services

import (
	"context"
	"errors"
	"strings"

	"car-rental-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CarService manages the catalog. Car status is mutated here by direct
// admin edits; the reservation workflow flips it through
// ReservationService.
type CarService struct {
	DB    *gorm.DB
	Cache *CarCache
}

func NewCarService(db *gorm.DB, cache *CarCache) *CarService {
	return &CarService{DB: db, Cache: cache}
}

// ListVisible returns the customer-facing catalog: every car that is not
// hidden, served from the cache when possible.
func (s *CarService) ListVisible(ctx context.Context) ([]models.Car, error) {
	if cars, ok := s.Cache.GetVisible(ctx); ok {
		return cars, nil
	}

	var cars []models.Car
	if err := s.DB.WithContext(ctx).
		Where("status <> ?", models.CarHidden).
		Order("created_at DESC").
		Find(&cars).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list cars", Err: err}
	}
	s.Cache.SetVisible(ctx, cars)
	return cars, nil
}

// List returns all cars for the back office, optionally filtered by status.
func (s *CarService) List(ctx context.Context, status string) ([]models.Car, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !models.IsValidCarStatus(status) {
		return nil, &models.ValidationError{Field: "status", Reason: "must be available, reserved or hidden"}
	}

	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var cars []models.Car
	if err := q.Find(&cars).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list cars", Err: err}
	}
	return cars, nil
}

func (s *CarService) Get(ctx context.Context, id string) (*models.Car, error) {
	var car models.Car
	if err := s.DB.WithContext(ctx).First(&car, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCarNotFound
		}
		return nil, &models.PersistenceError{Op: "load car", Err: err}
	}
	return &car, nil
}

func (s *CarService) Create(ctx context.Context, car *models.Car) error {
	car.Name = strings.TrimSpace(car.Name)
	if car.Name == "" {
		return &models.ValidationError{Field: "name", Reason: "is required"}
	}
	if car.Status != "" && !models.IsValidCarStatus(car.Status) {
		return &models.ValidationError{Field: "status", Reason: "must be available, reserved or hidden"}
	}
	if err := s.DB.WithContext(ctx).Create(car).Error; err != nil {
		return &models.PersistenceError{Op: "create car", Err: err}
	}
	s.Cache.Invalidate(ctx)
	return nil
}

// UpdateCarInput patches a car; nil fields are left untouched.
type UpdateCarInput struct {
	Name         *string         `json:"name"`
	Category     *string         `json:"category"`
	Price        *float64        `json:"price"`
	Seats        *int            `json:"seats"`
	Transmission *string         `json:"transmission"`
	Fuel         *string         `json:"fuel"`
	Year         *int            `json:"year"`
	Description  *string         `json:"description"`
	Image        *string         `json:"image"`
	Gallery      *datatypes.JSON `json:"gallery"`
	Status       *string         `json:"status"`
}

func (s *CarService) Update(ctx context.Context, id string, in UpdateCarInput) (*models.Car, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, &models.ValidationError{Field: "name", Reason: "is required"}
		}
		updates["name"] = name
	}
	if in.Category != nil {
		updates["category"] = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.Seats != nil {
		updates["seats"] = *in.Seats
	}
	if in.Transmission != nil {
		updates["transmission"] = strings.TrimSpace(*in.Transmission)
	}
	if in.Fuel != nil {
		updates["fuel"] = strings.TrimSpace(*in.Fuel)
	}
	if in.Year != nil {
		updates["year"] = *in.Year
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Image != nil {
		updates["image"] = strings.TrimSpace(*in.Image)
	}
	if in.Gallery != nil {
		updates["gallery"] = *in.Gallery
	}
	if in.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*in.Status))
		if !models.IsValidCarStatus(status) {
			return nil, &models.ValidationError{Field: "status", Reason: "must be available, reserved or hidden"}
		}
		updates["status"] = status
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	result := s.DB.WithContext(ctx).Model(&models.Car{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, &models.PersistenceError{Op: "update car", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return nil, models.ErrCarNotFound
	}
	s.Cache.Invalidate(ctx)
	return s.Get(ctx, id)
}

// ToggleVisibility flips a car between hidden and visible: hidden cars
// come back as available, anything else becomes hidden.
func (s *CarService) ToggleVisibility(ctx context.Context, id string) (*models.Car, error) {
	car, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := models.CarHidden
	if car.Status == models.CarHidden {
		newStatus = models.CarAvailable
	}
	if err := s.DB.WithContext(ctx).Model(car).Update("status", newStatus).Error; err != nil {
		return nil, &models.PersistenceError{Op: "update car", Err: err}
	}
	car.Status = newStatus
	s.Cache.Invalidate(ctx)
	return car, nil
}

func (s *CarService) Delete(ctx context.Context, id string) error {
	result := s.DB.WithContext(ctx).Delete(&models.Car{}, "id = ?", id)
	if result.Error != nil {
		return &models.PersistenceError{Op: "delete car", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return models.ErrCarNotFound
	}
	s.Cache.Invalidate(ctx)
	return nil
}
