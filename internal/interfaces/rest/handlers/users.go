package handlers

import (
	"net/http"

	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/middleware"
)

func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.RespondWithJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleLogin sets the HttpOnly session cookie and also returns the token
// for clients that prefer a bearer header.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	token, expiresAt, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	rest.RespondWithJSON(w, http.StatusCreated, SessionResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	if err := h.users.Logout(r.Context(), principal.Token); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
