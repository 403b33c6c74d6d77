package application

import (
	"fmt"
	"time"

	"github.com/quizforge/training-service/internal/domain"
	"github.com/quizforge/training-service/internal/ports"
)

func otpEmail(to string, purpose domain.OTPPurpose, code string, ttl time.Duration) ports.EmailMessage {
	subject := "Your verification code"
	action := "finish signing up"
	if purpose == domain.PurposeResetPassword {
		subject = "Your password reset code"
		action = "reset your password"
	}
	body := fmt.Sprintf(
		"Your one-time code is %s.\n\nEnter it to %s. The code expires in %d minutes and can be used once.\nIf you did not request it, you can ignore this email.",
		code, action, int(ttl.Minutes()),
	)
	return ports.EmailMessage{To: to, Subject: subject, Body: body}
}
