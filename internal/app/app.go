package app

import (
	"enemauth/internal/app/deps"
	"enemauth/internal/app/services"
	forgotpassword "enemauth/internal/http/handlers/auth/forgot_password"
	resetpassword "enemauth/internal/http/handlers/auth/reset_password"
	validateresettoken "enemauth/internal/http/handlers/auth/validate_reset_token"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(allowedOrigins []string, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/forgot-password", forgotpassword.New(s.RequestPasswordReset))
	authRouter.Method(
		http.MethodGet,
		"/validate-reset-token",
		validateresettoken.New(s.ValidatePasswordResetToken),
	)
	authRouter.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/api/auth", authRouter)
	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps.Config.AllowedOrigins, s),
		Addr:    fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
	}
}
