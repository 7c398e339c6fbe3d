package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"naebak/handler"
	"naebak/middleware"
)

// SetupRoutes wires all HTTP routes
func SetupRoutes(
	jwtSecret string,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	complaintHandler *handler.ComplaintHandler,
	staffHandler *handler.StaffHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	api := router.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/health", healthCheck).Methods("GET")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/governorates", catalogHandler.ListGovernorates).Methods("GET")
	api.HandleFunc("/complaint-types", catalogHandler.ListComplaintTypes).Methods("GET")

	// Citizen (authenticated)
	citizen := api.PathPrefix("/complaints").Subrouter()
	citizen.Use(middleware.Authenticate(jwtSecret))
	citizen.HandleFunc("", complaintHandler.Submit).Methods("POST")
	citizen.HandleFunc("", complaintHandler.ListMine).Methods("GET")
	citizen.HandleFunc("/{id}", complaintHandler.Get).Methods("GET")
	citizen.HandleFunc("/{id}/timeline", complaintHandler.Timeline).Methods("GET")
	citizen.HandleFunc("/{id}/attachments", complaintHandler.Attachments).Methods("GET")
	citizen.HandleFunc("/{id}/rate", complaintHandler.Rate).Methods("POST")

	// Staff (authenticated, deputy or admin role)
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(middleware.Authenticate(jwtSecret))
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/complaints", staffHandler.List).Methods("GET")
	staff.HandleFunc("/complaints/number/{number}", staffHandler.GetByNumber).Methods("GET")
	staff.HandleFunc("/complaints/{id}", staffHandler.Get).Methods("GET")
	staff.HandleFunc("/complaints/{id}/timeline", staffHandler.Timeline).Methods("GET")
	staff.HandleFunc("/complaints/{id}/status", staffHandler.Transition).Methods("PUT")
	staff.HandleFunc("/complaints/{id}/assign", staffHandler.Assign).Methods("PUT")
	staff.HandleFunc("/worklist", staffHandler.Worklist).Methods("GET")
	staff.HandleFunc("/stats", staffHandler.Stats).Methods("GET")

	return router
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
