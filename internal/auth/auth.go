package auth

import (
	"html/template"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/tahcohcat/ttsstudio/config"
	"github.com/tahcohcat/ttsstudio/internal/logger"
)

const sessionName = "ttsstudio-session"

// Auth guards the studio behind a single shared password. With no password
// hash configured every request is let through.
type Auth struct {
	store        *sessions.CookieStore
	passwordHash []byte
	login        *template.Template
	logger       *logger.Log
}

func New(cfg *config.AuthConfig, login *template.Template) *Auth {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode

	return &Auth{
		store:        store,
		passwordHash: []byte(cfg.PasswordHash),
		login:        login,
		logger:       logger.Named("auth"),
	}
}

// Enabled reports whether a password is required.
func (a *Auth) Enabled() bool {
	return len(a.passwordHash) > 0
}

func (a *Auth) renderLogin(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := map[string]string{}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	if err := a.login.Execute(w, data); err != nil {
		a.logger.WithError(err).Error("failed to render login page")
	}
}

func (a *Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !a.Enabled() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		a.renderLogin(w, http.StatusOK, "")
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			a.renderLogin(w, http.StatusBadRequest, "Invalid form submission")
			return
		}
		password := r.FormValue("password")

		if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
			a.logger.Warn("rejected login attempt")
			a.renderLogin(w, http.StatusUnauthorized, "Invalid password")
			return
		}

		session, _ := a.store.Get(r, sessionName)
		session.Values["authenticated"] = true
		if err := session.Save(r, w); err != nil {
			a.logger.WithError(err).Error("failed to save session")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func (a *Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := a.store.Get(r, sessionName)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// IsAuthenticated reports whether r carries a logged-in session.
func (a *Auth) IsAuthenticated(r *http.Request) bool {
	if !a.Enabled() {
		return true
	}
	session, err := a.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	ok, _ := session.Values["authenticated"].(bool)
	return ok
}

// Middleware redirects browsers to /login and answers API calls with 401.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.IsAuthenticated(r) {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Accept") == "application/json" || r.Header.Get("Content-Type") == "application/json" {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}
