package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const UserEmailKey contextKey = "userEmail"

const SessionCookieName = "lessonloop_session"

func CreateSessionCookie(userEmail, secret string) (*http.Cookie, error) {
	value := fmt.Sprintf("%s|%d", userEmail, time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	signature := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	cookieValue := fmt.Sprintf("%s|%s", value, signature)

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    cookieValue,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7, // 7 days
	}

	return cookie, nil
}

func ValidateSessionCookie(cookie *http.Cookie, secret string) (userEmail string, err error) {
	if cookie == nil {
		return "", fmt.Errorf("no session cookie")
	}

	parts := strings.Split(cookie.Value, "|")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid session format")
	}

	value := strings.Join(parts[:2], "|")
	signature := parts[2]

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	expectedSignature := base64.URLEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return "", fmt.Errorf("invalid session signature")
	}

	return parts[0], nil
}

func RequireAuth(next http.HandlerFunc, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		userEmail, err := ValidateSessionCookie(cookie, secret)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), UserEmailKey, userEmail)
		next(w, r.WithContext(ctx))
	}
}

func GetUserEmail(r *http.Request) string {
	if val := r.Context().Value(UserEmailKey); val != nil {
		return val.(string)
	}
	return ""
}
