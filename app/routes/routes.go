package routes

import (
	"net/http"

	"blogadmin/app/config"
	"blogadmin/app/controllers"
	"blogadmin/app/middleware"
	"blogadmin/app/services"

	"github.com/gorilla/mux"
)

// SetupAdminRoutes defines the admin application's routes and returns a
// router wired against the given repository and feedback collaborators.
func SetupAdminRoutes(cfg *config.Config, postService *services.PostService, moderationService *services.ModerationService) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	adminController := controllers.NewAdminController(postService, moderationService, cfg.BasePath)

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.BasicAuth(cfg.AdminUser, cfg.AdminPasswordHash))

	// Post admin endpoints
	admin.HandleFunc("/posts", adminController.List).Methods("GET")
	admin.HandleFunc("/posts/feed", adminController.ListFeed).Methods("GET")
	admin.HandleFunc("/posts/{id:[0-9]+}/edit", adminController.Edit).Methods("GET")
	admin.HandleFunc("/posts", adminController.Update).Methods("POST")
	admin.HandleFunc("/posts/{id:[0-9]+}/date", adminController.SetPostDate).Methods("POST")
	admin.HandleFunc("/posts/{id:[0-9]+}/comments", adminController.CommentsAdmin).Methods("POST")
	admin.HandleFunc("/posts/{id:[0-9]+}/delete", adminController.Delete).Methods("POST")
	admin.HandleFunc("/posts/{id:[0-9]+}/{slug}", adminController.Details).Methods("GET")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
