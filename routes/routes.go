package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"car-rental-backend/controllers"
	"car-rental-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the public catalog/booking surface and the JWT-guarded
// admin back office.
func SetupRouter(
	cc *controllers.CarController,
	rc *controllers.ReservationController,
	authc *controllers.AuthController,
	adminc *controllers.AdminController,
	dashc *controllers.DashboardController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Public catalog and booking flow
		cars := api.Group("/cars")
		{
			cars.GET("", cc.GetCars)
			cars.GET("/:id", cc.GetCar)
		}
		api.POST("/reservations", rc.CreateReservation)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authc.Login)
		}

		// Back office
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(jwtSecret))
		{
			adminCars := admin.Group("/cars")
			{
				adminCars.GET("", cc.AdminGetCars)
				adminCars.POST("", cc.CreateCar)
				adminCars.PUT("/:id", cc.UpdateCar)
				adminCars.PATCH("/:id", cc.UpdateCar)
				adminCars.PATCH("/:id/visibility", cc.ToggleCarVisibility)
				adminCars.DELETE("/:id", cc.DeleteCar)
			}

			users := admin.Group("/users")
			{
				users.GET("", rc.GetUsers)
				users.DELETE("", rc.DeleteUser)
			}

			reservations := admin.Group("/reservations")
			{
				reservations.GET("/:id", rc.GetReservation)
				reservations.POST("/:id/confirm-call", rc.ConfirmCall)
				reservations.POST("/:id/confirm-pickup", rc.ConfirmPickup)
				reservations.POST("/:id/cancel", rc.CancelReservation)
			}

			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/stats", dashc.GetStats)
				dashboard.GET("/reservations-by-month", dashc.GetReservationsByMonth)
				dashboard.GET("/cars-by-category", dashc.GetCarsByCategory)
			}

			admins := admin.Group("/admins")
			{
				admins.GET("", adminc.GetAdmins)
				admins.POST("", adminc.CreateAdmin)
				admins.DELETE("/:id", adminc.DeleteAdmin)
			}
		}
	}

	return r
}
