package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"car-rental-backend/models"
	"car-rental-backend/utils"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDatabase creates the default admin account and a starter fleet when
// the corresponding tables are empty. Safe to run on every startup.
func SeedDatabase() {
	// ---------------- Admins ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := utils.HashPassword(utils.EnvOrDefault("ADMIN_DEFAULT_PASSWORD", "admin123"))
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				Username: utils.EnvOrDefault("ADMIN_DEFAULT_USERNAME", "admin@rental.local"),
				Password: hash,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Cars ----------------
	var carCount int64
	DB.Model(&models.Car{}).Count(&carCount)
	if carCount > 0 {
		log.Println("Cars already seeded")
		return
	}

	cars := []models.Car{
		{
			Name: "Dacia Duster", Category: "SUV", Price: 400, Seats: 5,
			Transmission: "manual", Fuel: "Diesel", Year: 2022,
			Description: "The perfect SUV for Moroccan roads, combining comfort and practicality.",
			Status:      models.CarAvailable,
		},
		{
			Name: "Renault Clio", Category: "Economy", Price: 250, Seats: 5,
			Transmission: "manual", Fuel: "Gasoline", Year: 2023,
			Description: "Fuel-efficient and easy to drive, ideal for city exploration.",
			Status:      models.CarAvailable,
		},
		{
			Name: "Mercedes C-Class", Category: "Luxury", Price: 700, Seats: 5,
			Transmission: "automatic", Fuel: "Gasoline", Year: 2022,
			Description: "Experience luxury and performance during your stay in Morocco.",
			Status:      models.CarAvailable,
		},
		{
			Name: "Range Rover Evoque", Category: "SUV", Price: 800, Seats: 5,
			Transmission: "automatic", Fuel: "Diesel", Year: 2023,
			Description: "A premium SUV with exceptional off-road capabilities.",
			Status:      models.CarAvailable,
		},
	}
	if err := DB.Create(&cars).Error; err != nil {
		log.Printf("warning: failed to seed cars: %v", err)
		return
	}
	log.Println("Cars seeded")
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "rental_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Car{},
		&models.Reservation{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
