package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/middleware"
	"carrental/internal/modules/auth"
	"carrental/internal/modules/booking"
	"carrental/internal/modules/cars"
	jwtsvc "carrental/internal/pkg/jwt"
	"carrental/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	carRepo := repository.NewCarRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	accessTokens := jwtsvc.New(cfg.JWTSecret, cfg.AccessTTL)
	refreshTokens := jwtsvc.New(cfg.RefreshSecret, cfg.RefreshTTL)

	authService := auth.NewService(userRepo, accessTokens, refreshTokens)
	authHandler := auth.NewHandler(authService, cfg.RefreshTTL, cfg.CookieSecure)

	carService := cars.NewService(carRepo, bookingRepo)
	carHandler := cars.NewHandler(carService)

	bookingService := booking.NewService(bookingRepo, carRepo)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		carHandler.RegisterPublicRoutes(v1)

		// protected (booking endpoints)
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(accessTokens))
		{
			bookingHandler.RegisterRoutes(protected)
		}

		// admin (fleet management)
		admin := v1.Group("/")
		admin.Use(middleware.JWTAuth(accessTokens), middleware.AdminOnly())
		{
			carHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
