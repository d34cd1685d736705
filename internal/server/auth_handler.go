package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mockhotels/brandaudit/internal/config"
	"github.com/mockhotels/brandaudit/internal/rendering"
	"github.com/mockhotels/brandaudit/internal/server/middleware"
	"github.com/mockhotels/brandaudit/internal/session"
)

// AuthHandler implements the access gate: one shared secret, compared to
// the user's input; success mints a signed session cookie.
type AuthHandler struct {
	passwords  *config.PasswordConfig
	jwtService *JWTService
	sessions   *session.Store
	renderer   *rendering.Renderer
	validator  *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(passwords *config.PasswordConfig, jwtService *JWTService, sessions *session.Store, renderer *rendering.Renderer) *AuthHandler {
	return &AuthHandler{
		passwords:  passwords,
		jwtService: jwtService,
		sessions:   sessions,
		renderer:   renderer,
		validator:  validator.New(),
	}
}

type loginForm struct {
	Token string `validate:"required"`
}

// Login handles the access-gate form post.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	form := loginForm{Token: r.PostFormValue("token")}
	if err := h.validator.Struct(form); err != nil {
		h.renderLoginError(w, http.StatusBadRequest, "An access token is required")
		return
	}

	if !h.passwords.Verify(form.Token) {
		h.renderLoginError(w, http.StatusUnauthorized, "Invalid access token")
		return
	}

	sess := h.sessions.Create()
	token, err := h.jwtService.GenerateToken(sess.ID)
	if err != nil {
		h.sessions.Delete(sess.ID)
		h.renderLoginError(w, http.StatusInternalServerError, "Failed to start a session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwtService.CookieTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout drops the server-side session and expires the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, err := middleware.GetSessionID(r); err == nil {
		h.sessions.Delete(id)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.RenderPage(w, rendering.Page{LoginError: message}); err != nil {
		log.Printf("Error rendering login page: %v", err)
		fmt.Fprintln(w, message)
	}
}
