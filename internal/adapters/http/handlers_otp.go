package http

import "net/http"

func (h *Handler) otpSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email   string `json:"email"`
		Purpose string `json:"purpose"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, r, "otp_send", err)
		return
	}
	if err := h.service.RequestOTP(r.Context(), req.Email, req.Purpose); err != nil {
		writeMappedError(w, r, "otp_send", err)
		return
	}
	writeMessage(w, http.StatusOK, "If the address is valid, a code has been sent")
}

func (h *Handler) otpVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email   string `json:"email"`
		OTP     string `json:"otp"`
		Purpose string `json:"purpose"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, r, "otp_verify", err)
		return
	}
	if err := h.service.VerifyOTP(r.Context(), req.Email, req.Purpose, req.OTP); err != nil {
		writeMappedError(w, r, "otp_verify", err)
		return
	}
	writeMessage(w, http.StatusOK, "Code verified")
}
