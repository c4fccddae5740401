package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"car-rental-backend/models"
	"car-rental-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

type AdminService struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAdminService(db *gorm.DB, jwtSecret string) *AdminService {
	return &AdminService{DB: db, JWTSecret: jwtSecret, TokenTTL: 24 * time.Hour}
}

// Authenticate checks admin credentials and returns a signed session token.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", &models.PersistenceError{Op: "load admin", Err: err}
	}
	if !utils.CheckPassword(admin.Password, password) {
		return "", ErrInvalidCredentials
	}
	return utils.NewAdminToken(s.JWTSecret, admin.ID, admin.Username, s.TokenTTL)
}

func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list admins", Err: err}
	}
	return admins, nil
}

func (s *AdminService) Create(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &models.ValidationError{Field: "username", Reason: "is required"}
	}
	if len(password) < 6 {
		return nil, &models.ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := models.Admin{Username: username, Password: hash}
	if err := s.DB.WithContext(ctx).Create(&admin).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, &models.ValidationError{Field: "username", Reason: "is already taken"}
		}
		return nil, &models.PersistenceError{Op: "create admin", Err: err}
	}
	return &admin, nil
}

func (s *AdminService) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Admin{}, id)
	if result.Error != nil {
		return &models.PersistenceError{Op: "delete admin", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return models.ErrAdminNotFound
	}
	return nil
}
