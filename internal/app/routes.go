package app

import (
	"github.com/69GliTcH/SimpliFin/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Spending records
	r.HandleFunc("/api/spending", deps.ViewHandler.GetSpendings).Methods("GET")
	r.HandleFunc("/api/spending", deps.SpendingHandler.CreateSpending).Methods("POST")
	r.HandleFunc("/api/spending/stream", deps.SpendingHandler.StreamSpendings).Methods("GET")
	r.HandleFunc("/api/spending/export", deps.ExportHandler.ExportSpendings).Methods("GET")
	r.HandleFunc("/api/spending/{spendingId}", deps.SpendingHandler.DeleteSpending).Methods("DELETE")

	// Analytics
	r.HandleFunc("/api/analytics/distribution", deps.ViewHandler.GetDistribution).Methods("GET")
	r.HandleFunc("/api/analytics/timeline", deps.ViewHandler.GetTimeline).Methods("GET")

	// Dashboard
	r.HandleFunc("/api/dashboard/summary", deps.ViewHandler.GetSummary).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Google sign-in
	r.HandleFunc("/api/auth/google/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/auth/google/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
}
