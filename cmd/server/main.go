package main

import (
	"log"
	"net/http"
	"strings"

	"lessonloop/internal/config"
	"lessonloop/internal/handlers"
	"lessonloop/internal/middleware"
	"lessonloop/internal/store"
)

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	handlers.SetConfig(cfg)

	// Initialize templates early to catch any errors at startup
	handlers.InitTemplates()

	authHandler, err := handlers.NewAuthHandler(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	runsHandler := handlers.NewRunsHandler(cfg, st)
	sessionsHandler := handlers.NewSessionsHandler(cfg, st)

	// Setup routes
	mux := http.NewServeMux()

	// Request logging middleware - concise request log
	requestLogMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cfg.Debugf("REQUEST: %s %s", r.Method, r.URL.Path)
			next(w, r)
		}
	}
	protect := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(next, cfg.SessionSecret)
	}

	// Auth routes (public) - register BEFORE protected routes
	mux.HandleFunc("/login", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.Login(w, r)
		} else {
			authHandler.LoginForm(w, r)
		}
	}))
	mux.HandleFunc("/logout", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodPost {
			authHandler.Logout(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// /runs (exact) - class list
	mux.HandleFunc("/runs", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runs" {
			http.NotFound(w, r)
			return
		}
		protect(runsHandler.List)(w, r)
	}))

	// /runs/new - profile form and creation
	mux.HandleFunc("/runs/new", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runs/new" {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodGet {
			protect(runsHandler.NewForm)(w, r)
		} else if r.Method == http.MethodPost {
			protect(runsHandler.Create)(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Routes with path parameters - handled manually off a catch-all
	// (Go stdlib mux routing kept deliberately simple, one dispatcher).
	mux.HandleFunc("/runs/", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		// Skip /runs/new and bare /runs/ (already handled above)
		if path == "/runs/new" || path == "/runs/" {
			http.NotFound(w, r)
			return
		}

		switch {
		case strings.HasSuffix(path, "/profile") && r.Method == http.MethodPost:
			protect(runsHandler.UpdateProfile)(w, r)
		case strings.HasSuffix(path, "/generate") && r.Method == http.MethodPost:
			protect(sessionsHandler.Generate)(w, r)
		case strings.HasSuffix(path, "/delete") && r.Method == http.MethodPost:
			protect(runsHandler.Delete)(w, r)
		case strings.HasSuffix(path, "/export") && r.Method == http.MethodGet:
			protect(sessionsHandler.Export)(w, r)
		case strings.HasSuffix(path, "/download") && r.Method == http.MethodGet:
			protect(sessionsHandler.Download)(w, r)
		case strings.HasSuffix(path, "/feedback") && r.Method == http.MethodPost:
			protect(sessionsHandler.Feedback)(w, r)
		case strings.Contains(path, "/sessions/") && r.Method == http.MethodGet:
			protect(sessionsHandler.PlanView)(w, r)
		case r.Method == http.MethodGet:
			protect(runsHandler.Detail)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Root redirect - protected route (register last)
	mux.HandleFunc("/", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		protect(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/runs", http.StatusFound)
		})(w, r)
	}))

	port := cfg.Port
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on http://localhost:%s", port)
	log.Printf("Instructor login: %s / %s", cfg.InstructorEmail, cfg.InstructorPassword)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
