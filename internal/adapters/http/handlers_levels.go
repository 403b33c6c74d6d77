package http

import "net/http"

func (h *Handler) canStartLevel(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
		return
	}
	var req struct {
		Level string `json:"level"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, r, "can_start_level", err)
		return
	}
	decision, err := h.service.CanStartLevel(r.Context(), token, req.Level)
	if err != nil {
		writeMappedError(w, r, "can_start_level", err)
		return
	}
	writeSuccess(w, http.StatusOK, decision)
}

func (h *Handler) completeLevel(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
		return
	}
	var req struct {
		Level string `json:"level"`
		Score int64  `json:"score"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, r, "complete_level", err)
		return
	}
	progress, err := h.service.CompleteLevel(r.Context(), token, req.Level, req.Score)
	if err != nil {
		writeMappedError(w, r, "complete_level", err)
		return
	}
	writeSuccess(w, http.StatusOK, progress)
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
		return
	}
	progress, err := h.service.Progress(r.Context(), token)
	if err != nil {
		writeMappedError(w, r, "get_progress", err)
		return
	}
	writeSuccess(w, http.StatusOK, progress)
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 0)
	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		writeMappedError(w, r, "leaderboard", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
		return
	}
	if err := h.service.DeleteAccount(r.Context(), token); err != nil {
		writeMappedError(w, r, "delete_account", err)
		return
	}
	writeMessage(w, http.StatusOK, "Account deleted")
}
