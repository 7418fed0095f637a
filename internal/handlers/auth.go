// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"factorysite/internal/middleware"
	"factorysite/internal/models"
	"factorysite/internal/render"
	"factorysite/internal/session"
)

// totpIssuer is the account label shown in authenticator apps.
const totpIssuer = "Factory Site Admin"

// Users is the admin account store. *store.UserStore satisfies it.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	SetTOTPSecret(ctx context.Context, id uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, id uuid.UUID) error
	CheckPassword(user *models.AdminUser, password string) bool
}

// Sessions manages admin sessions. *session.Store satisfies it.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Update(ctx context.Context, r *http.Request, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups the sign-in handlers of the admin API. Signing in is two
// steps: a password login opens a session with TwoFADone unset, and a
// valid TOTP code completes it.
type Auth struct {
	sessions Sessions
	users    Users
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions Sessions, users Users) *Auth {
	return &Auth{sessions: sessions, users: users}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	TwoFADone     bool   `json:"two_fa_done"`
	Needs2FASetup bool   `json:"needs_2fa_setup"`
	CSRFToken     string `json:"csrf_token,omitempty"`
}

// Login checks the password and opens a half-authenticated session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Failure(w, r, "sign in", err)
		return
	}

	user, err := a.users.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		render.Failure(w, r, "sign in", err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		slog.Warn("login failed", "email", req.Email)
		render.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	data := &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TwoFADone:   false,
	}
	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		render.Failure(w, r, "sign in", err)
		return
	}

	slog.Info("password accepted", "email", user.Email, "needs_2fa_setup", user.Needs2FASetup())
	render.JSON(w, http.StatusOK, sessionResponse{
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		Needs2FASetup: user.Needs2FASetup(),
		CSRFToken:     middleware.CSRFTokenFromCtx(r.Context()),
	})
}

// Session describes the signed-in user, or answers 401.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		render.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := a.users.FindByID(r.Context(), sess.UserID)
	if err != nil {
		render.Failure(w, r, "load session", err)
		return
	}
	if user == nil {
		render.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	render.JSON(w, http.StatusOK, sessionResponse{
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		TwoFADone:     sess.TwoFADone,
		Needs2FASetup: user.Needs2FASetup(),
		CSRFToken:     middleware.CSRFTokenFromCtx(r.Context()),
	})
}

type setupResponse struct {
	Enabled bool   `json:"enabled"`
	Secret  string `json:"secret,omitempty"`
	QRCode  string `json:"qr_code,omitempty"`
}

// TwoFASetup issues a fresh TOTP secret and its QR code as a PNG data
// URI. Accounts that already enabled 2FA get {"enabled": true} only.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	user, err := a.users.FindByID(r.Context(), sess.UserID)
	if err != nil {
		render.Failure(w, r, "set up two-factor authentication", err)
		return
	}
	if user == nil {
		render.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !user.Needs2FASetup() {
		render.JSON(w, http.StatusOK, setupResponse{Enabled: true})
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		render.Failure(w, r, "generate TOTP key", err)
		return
	}
	if err := a.users.SetTOTPSecret(r.Context(), user.ID, key.Secret()); err != nil {
		render.Failure(w, r, "set up two-factor authentication", err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		render.Failure(w, r, "generate QR code", err)
		return
	}

	render.JSON(w, http.StatusOK, setupResponse{
		Secret: key.Secret(),
		QRCode: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}

type verifyRequest struct {
	Code string `json:"code"`
}

// TwoFAVerify checks a TOTP code and completes the session. The first
// successful verification also enables 2FA on the account.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	var req verifyRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Failure(w, r, "verify code", err)
		return
	}

	user, err := a.users.FindByID(r.Context(), sess.UserID)
	if err != nil {
		render.Failure(w, r, "verify code", err)
		return
	}
	if user == nil || user.TOTPSecret == nil {
		render.Error(w, http.StatusConflict, "Two-factor authentication is not set up")
		return
	}

	if !totp.Validate(strings.TrimSpace(req.Code), *user.TOTPSecret) {
		slog.Warn("invalid totp code", "email", user.Email)
		render.Error(w, http.StatusUnauthorized, "Invalid code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(r.Context(), user.ID); err != nil {
			render.Failure(w, r, "enable two-factor authentication", err)
			return
		}
		slog.Info("2fa enabled", "email", user.Email)
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		render.Failure(w, r, "verify code", fmt.Errorf("update session: %w", err))
		return
	}

	slog.Info("login complete", "email", user.Email)
	render.JSON(w, http.StatusOK, sessionResponse{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TwoFADone:   true,
		CSRFToken:   middleware.CSRFTokenFromCtx(r.Context()),
	})
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	render.NoContent(w)
}
