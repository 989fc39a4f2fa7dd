package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.errorLog.Printf("panic: %v", err)
				http.Error(w, fmt.Sprintf(`{"error": %q}`, http.StatusText(http.StatusInternalServerError)), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAuth rejects requests without a valid identity before any handler
// runs. An expired access token is refreshed from the session store when a
// Refresh-Token header is supplied.
func (app *application) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := app.identify(w, r)
		if !ok {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), "user_id", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalIdentity attaches the viewer id when a valid token is present and
// lets anonymous requests through untouched. Browse and detail pages use it
// to compute ownership and save affordances.
func (app *application) optionalIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := app.identify(w, r); ok {
			r = r.WithContext(context.WithValue(r.Context(), "user_id", userID))
		}
		next.ServeHTTP(w, r)
	})
}

func (app *application) identify(w http.ResponseWriter, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := app.tokens.Parse(accessToken)
	if err == nil {
		return claims.UserID, true
	}

	// Access token invalid or expired, try the refresh token.
	refreshToken := r.Header.Get("Refresh-Token")
	if refreshToken == "" {
		return "", false
	}

	session, err := app.sessions.GetSessionByToken(r.Context(), refreshToken)
	if err != nil {
		return "", false
	}
	if session.ExpiresAt.Before(time.Now()) {
		return "", false
	}

	newAccessToken, err := app.tokens.NewAccessToken(session.UserID, 20*time.Hour)
	if err != nil {
		return "", false
	}
	w.Header().Set("Authorization", "Bearer "+newAccessToken)
	return session.UserID, true
}
