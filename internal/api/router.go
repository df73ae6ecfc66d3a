package api

import (
	"net/http"
	"time"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/api/handler"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/app/service"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common/security"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	adminService *service.AdminService,
	vehicleService *service.VehicleService,
	topicService *service.TopicService,
	questionService *service.QuestionService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The exam frontend is served from a different origin; the API has
	// always allowed any origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Puts verified claims (or the verification error) in the request
	// context; the Authenticator middleware on gated groups acts on them.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Traffic Master Backend is running..."))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	adminHandler := handler.NewAdminHandler(adminService)
	r.Route("/admin", adminHandler.RegisterRoutes)

	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	r.Route("/vehicles", vehicleHandler.RegisterRoutes)

	topicHandler := handler.NewTopicHandler(topicService)
	r.Route("/topics", topicHandler.RegisterRoutes)

	questionHandler := handler.NewQuestionHandler(questionService)
	r.Route("/questions", questionHandler.RegisterRoutes)

	return r
}
