package server

import (
	"context"
	"net/http"

	"github.com/IsroilovA/gym-class-management/internal/auth"
	"github.com/IsroilovA/gym-class-management/internal/booking"
	"github.com/IsroilovA/gym-class-management/internal/config"
	"github.com/IsroilovA/gym-class-management/internal/member"
	"github.com/IsroilovA/gym-class-management/internal/notify"
	"github.com/IsroilovA/gym-class-management/internal/schedule"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	memberRepo := member.NewRepository(db)
	scheduleRepo := schedule.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	reportRepo := booking.NewReportRepository(db)

	memberSvc := member.NewService(memberRepo, cfg.JWTSecret)
	scheduleSvc := schedule.NewService(scheduleRepo)
	bookingSvc := booking.NewService(bookingRepo, scheduleRepo, memberRepo, notifier)

	memberHandler := member.NewHandler(memberSvc)
	scheduleHandler := schedule.NewHandler(scheduleSvc)
	bookingHandler := booking.NewHandler(bookingSvc)
	reportHandler := booking.NewReportHandler(reportRepo)

	public := router.Group("/auth")
	{
		public.POST("/register", memberHandler.Register)
		public.POST("/login", memberHandler.Login)
		public.POST("/refresh", memberHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", memberHandler.GetMe)
		protected.GET("/trainers", scheduleHandler.ListTrainers)
		protected.GET("/classes", scheduleHandler.ListClasses)
		protected.GET("/classes/:classID", scheduleHandler.GetClass)
		protected.POST("/classes/:classID/book", bookingHandler.BookClass)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)
	}

	staffMiddleware := auth.RequireRole("staff")
	staff := router.Group("/staff")
	staff.Use(authMiddleware, staffMiddleware)
	{
		staff.POST("/trainers", scheduleHandler.CreateTrainer)
		staff.DELETE("/trainers/:trainerID", scheduleHandler.DeleteTrainer)
		staff.POST("/classes", scheduleHandler.CreateClass)
		staff.PUT("/classes/:classID", scheduleHandler.UpdateClass)
		staff.DELETE("/classes/:classID", scheduleHandler.DeleteClass)
		staff.GET("/classes/:classID/roster", bookingHandler.ClassRoster)
		staff.POST("/bookings/:bookingID/revalidate", bookingHandler.RevalidateBooking)
		staff.GET("/reports/remaining-spots", scheduleHandler.RemainingSpotsReport)
		staff.GET("/reports/bookings", reportHandler.GetBookingStats)
	}

	registerSystemRoutes(router, db)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
