package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/vistacall/relay/internal/core/domain"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "signaling relay is running",
	})
}

// IssueToken mints a media-channel credential for GET /rtcToken?channelName&uid.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channelName")
	uidParam := r.URL.Query().Get("uid")
	if channel == "" || uidParam == "" {
		writeError(w, http.StatusBadRequest, "channelName and uid required")
		return
	}

	// fractional or non-numeric identifiers are rejected, never truncated
	uid, err := strconv.ParseUint(uidParam, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "uid must be numeric")
		return
	}

	cred, err := h.TokenService.Issue(channel, uint32(uid), 0)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("Token generation failed")
		writeError(w, http.StatusInternalServerError, "token_generation_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rtcToken":    cred.Token,
		"uid":         cred.UID,
		"channelName": cred.Channel,
	})
}

// SendPush triggers the out-of-band fallback alert for POST /sendPush.
func (h *Handler) SendPush(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To      string `json:"to"`
		From    string `json:"from"`
		Channel string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.PushService.Notify(r.Context(), req.To, req.From, req.Channel)
	switch {
	case errors.Is(err, domain.ErrNoPushToken):
		writeError(w, http.StatusBadRequest, "No push token for recipient")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "push_failed")
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
