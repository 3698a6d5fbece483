package handlers

import (
	"net/http"

	"lessonloop/internal/config"
	"lessonloop/internal/middleware"

	"golang.org/x/crypto/bcrypt"
)

// AuthHandler guards the planner behind the single instructor account
// configured via INSTRUCTOR_EMAIL / INSTRUCTOR_PASSWORD. The password
// is hashed once at startup and only the hash is kept around.
type AuthHandler struct {
	cfg          *config.Config
	passwordHash []byte
}

func NewAuthHandler(cfg *config.Config) (*AuthHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.InstructorPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{cfg: cfg, passwordHash: hash}, nil
}

// LoginForm renders the login page, or redirects straight to the class
// list when a valid session already exists.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err == nil {
		if _, err := middleware.ValidateSessionCookie(cookie, h.cfg.SessionSecret); err == nil {
			http.Redirect(w, r, "/runs", http.StatusFound)
			return
		}
	}

	data := map[string]interface{}{
		"Title": "Login – LessonLoop",
	}
	renderTemplate(w, r, "login.html", data)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		data := map[string]interface{}{
			"Title": "Login – LessonLoop",
			"Error": "Email and password are required",
		}
		renderTemplate(w, r, "login.html", data)
		return
	}

	if email != h.cfg.InstructorEmail ||
		bcrypt.CompareHashAndPassword(h.passwordHash, []byte(password)) != nil {
		data := map[string]interface{}{
			"Title": "Login – LessonLoop",
			"Error": "Invalid email or password",
		}
		renderTemplate(w, r, "login.html", data)
		return
	}

	cookie, err := middleware.CreateSessionCookie(email, h.cfg.SessionSecret)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/runs", http.StatusFound)
}

// Logout clears the session cookie and redirects to login.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Match CreateSessionCookie settings
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1, // Immediately expire
	}
	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/login", http.StatusFound)
}
