// Package tokensvc implements the server-side token endpoints. The three
// handlers manage a long-lived refresh credential in an HttpOnly cookie and
// mint short-lived access tokens into a script-readable cookie. They perform
// no credential verification beyond cookie presence; the cookie scoping
// itself is the mechanism.
package tokensvc

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/avorobjovs/demoboard/internal/common"
	"github.com/avorobjovs/demoboard/internal/logging"
	"github.com/avorobjovs/demoboard/internal/tokensvc/config"
	"github.com/avorobjovs/demoboard/internal/tokensvc/respond"
)

// nowFn is a seam for tests that pin token timestamps.
var nowFn = time.Now

// Handler owns the /auth/* token endpoints.
type Handler struct {
	cfg    config.Config
	logger logging.Logger
}

// NewHandler constructs the handler. A nil logger is replaced with a no-op one.
func NewHandler(cfg config.Config, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Handler{cfg: cfg, logger: logger}
}

// Register attaches the token routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/auth/set-refresh", h.handleSetRefresh)
	mux.HandleFunc("/auth/refresh", h.handleRefresh)
	mux.HandleFunc("/auth/clear-refresh", h.handleClearRefresh)
}

type setRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) handleSetRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req setRefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, common.ErrMissingToken.Error())
		return
	}
	if req.RefreshToken == "" {
		respond.Error(w, http.StatusBadRequest, common.ErrMissingToken.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    req.RefreshToken,
		Path:     "/",
		MaxAge:   int(common.RefreshTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, err := r.Cookie(common.RefreshTokenCookieName); err != nil {
		respond.Error(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
		return
	}

	accessToken, err := common.MintOpaqueToken(common.AccessTokenPrefix, nowFn())
	if err != nil {
		h.logger.Error(r.Context(), "minting access token failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, common.ErrInternal.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(common.AccessTokenTTL / time.Second),
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	respond.JSON(w, http.StatusOK, map[string]string{
		"accessToken": accessToken,
		"message":     "token refreshed",
	})
}

func (h *Handler) handleClearRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RequestLogging tags every request with a generated id and logs method,
// path and duration once the handler returns.
func RequestLogging(logger logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := nowFn()
		log := logger.With("request_id", uuid.NewString())
		next.ServeHTTP(w, r)
		log.Info(r.Context(), "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}
