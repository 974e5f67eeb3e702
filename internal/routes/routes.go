// Package routes defines all API routes.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"sentinel-backend/internal/controller"
	"sentinel-backend/internal/middleware"
	"sentinel-backend/internal/utils"
)

// SetupRouter registers every route with its authentication requirements.
func SetupRouter(
	authController *controller.AuthController,
	dataController *controller.DataController,
	statsController *controller.StatsController,
	authn *middleware.Authenticator,
) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	authRoutes := router.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/ping", authController.Ping).Methods("GET")
	authRoutes.HandleFunc("/register", authController.Register).Methods("POST")
	authRoutes.HandleFunc("/login", authController.Login).Methods("POST")
	authRoutes.HandleFunc("/forgot-password", authController.ForgotPassword).Methods("POST")
	authRoutes.HandleFunc("/reset-password", authController.ResetPassword).Methods("POST")

	// Account operations require a user token; device tokens are rejected.
	authRoutes.Handle("/logout", authn.RequireUserToken(http.HandlerFunc(authController.Logout))).Methods("POST")
	authRoutes.Handle("/me", authn.RequireUserToken(http.HandlerFunc(authController.Me))).Methods("GET")
	authRoutes.Handle("/me", authn.RequireUserToken(http.HandlerFunc(authController.UpdateMe))).Methods("PATCH")
	authRoutes.Handle("/me", authn.RequireUserToken(http.HandlerFunc(authController.DeleteMe))).Methods("DELETE")
	authRoutes.Handle("/users", authn.RequireUserToken(http.HandlerFunc(authController.Users))).Methods("GET")
	authRoutes.Handle("/devices/{deviceId}/token", authn.RequireUserToken(http.HandlerFunc(authController.DeviceToken))).Methods("POST")

	// Data routes accept both token kinds.
	apiRoutes := router.PathPrefix("/api").Subrouter()
	apiRoutes.Handle("/data", authn.RequireToken(http.HandlerFunc(dataController.Ingest))).Methods("POST")
	apiRoutes.Handle("/data/latest", authn.RequireToken(http.HandlerFunc(dataController.Latest))).Methods("GET")
	apiRoutes.Handle("/data/{device_id}", authn.RequireToken(http.HandlerFunc(dataController.History))).Methods("GET")
	apiRoutes.Handle("/alerts", authn.RequireToken(http.HandlerFunc(dataController.Alerts))).Methods("GET")

	router.HandleFunc("/stats/summary", statsController.Summary).Methods("GET")

	return router
}
