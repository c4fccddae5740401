package services

import (
	"context"
	"time"

	"car-rental-backend/models"

	"gorm.io/gorm"
)

// DashboardService computes the back-office statistics: fleet totals,
// reservation activity and a revenue estimate (price per day times rental
// days over confirmed and completed reservations).
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type DashboardStats struct {
	TotalCars          int64   `json:"totalCars"`
	AvailableCars      int64   `json:"availableCars"`
	TotalCustomers     int     `json:"totalUsers"`
	TotalReservations  int     `json:"totalReservations"`
	ActiveReservations int     `json:"activeReservations"`
	Revenue            float64 `json:"revenue"`
}

type MonthlyReservations struct {
	Month        string `json:"month"`
	Reservations int    `json:"reservations"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.DB.WithContext(ctx).Model(&models.Car{}).Count(&stats.TotalCars).Error; err != nil {
		return nil, &models.PersistenceError{Op: "count cars", Err: err}
	}
	if err := s.DB.WithContext(ctx).Model(&models.Car{}).
		Where("status = ?", models.CarAvailable).
		Count(&stats.AvailableCars).Error; err != nil {
		return nil, &models.PersistenceError{Op: "count available cars", Err: err}
	}

	var reservations []models.Reservation
	if err := s.DB.WithContext(ctx).Preload("Car").Find(&reservations).Error; err != nil {
		return nil, &models.PersistenceError{Op: "load reservations", Err: err}
	}

	now := time.Now().UTC()
	customers := map[models.CustomerKey]struct{}{}
	for _, r := range reservations {
		customers[r.Key()] = struct{}{}

		if r.Status == models.ReservationConfirmed &&
			!r.PickupDate.After(now) && !r.ReturnDate.Before(now) {
			stats.ActiveReservations++
		}

		if r.Status == models.ReservationConfirmed || r.Status == models.ReservationCompleted {
			days := int(r.ReturnDate.Sub(r.PickupDate).Hours() / 24)
			if days < 1 {
				days = 1
			}
			stats.Revenue += r.Car.Price * float64(days)
		}
	}
	stats.TotalReservations = len(reservations)
	stats.TotalCustomers = len(customers)
	return stats, nil
}

// ReservationsByMonth buckets reservation creation over the last six
// months, oldest first.
func (s *DashboardService) ReservationsByMonth(ctx context.Context) ([]MonthlyReservations, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	var created []time.Time
	if err := s.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("created_at >= ?", start).
		Pluck("created_at", &created).Error; err != nil {
		return nil, &models.PersistenceError{Op: "load reservation dates", Err: err}
	}

	out := make([]MonthlyReservations, 0, 6)
	index := map[string]int{}
	for i := 0; i < 6; i++ {
		m := start.AddDate(0, i, 0)
		label := m.Format("Jan")
		index[m.Format("2006-01")] = len(out)
		out = append(out, MonthlyReservations{Month: label})
	}
	for _, t := range created {
		if i, ok := index[t.UTC().Format("2006-01")]; ok {
			out[i].Reservations++
		}
	}
	return out, nil
}

// CarsByCategory returns the fleet breakdown used by the dashboard chart.
func (s *DashboardService) CarsByCategory(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	if err := s.DB.WithContext(ctx).Model(&models.Car{}).
		Select("category AS name, COUNT(*) AS value").
		Group("category").
		Order("value DESC").
		Scan(&out).Error; err != nil {
		return nil, &models.PersistenceError{Op: "count cars by category", Err: err}
	}
	return out, nil
}
