package jobqueue

import (
	"encoding/json"

	"github.com/dripgate/dripgate/internal/pkg/mail"
)

// ProcessPasswordResetMail sends the reset link for a pending password
// reset request.
func ProcessPasswordResetMail(job *Job) error {
	var payload PasswordResetMailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return err
	}
	return mail.SendPasswordResetMail(payload.Email, payload.Name, payload.Token)
}
