package jobqueue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobType identifies the processor responsible for a job.
type JobType string

const (
	// JobTypeWelcomeMail delivers initial credentials to a new subscriber.
	JobTypeWelcomeMail JobType = "welcome_mail"
	// JobTypePasswordResetMail delivers a reset link on request.
	JobTypePasswordResetMail JobType = "password_reset_mail"
)

// JobStatus tracks a job through its lifecycle.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job is one queued unit of background work, serialized as JSON on the
// Redis list.
type Job struct {
	ID         string          `json:"id"`
	Type       JobType         `json:"type"`
	Status     JobStatus       `json:"status"`
	Payload    json.RawMessage `json:"payload"`
	RetryCount int             `json:"retry_count"`
	MaxRetries int             `json:"max_retries"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewJob builds a pending job with a serialized payload.
func NewJob(jobType JobType, payload interface{}) (*Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Job{
		ID:         uuid.New().String(),
		Type:       jobType,
		Status:     JobStatusPending,
		Payload:    raw,
		MaxRetries: 3,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// IsRetryable reports whether the job may run again after a failure.
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// WelcomeMailPayload carries the one-time credentials message. It lives
// only in the queue and is deleted with the job.
type WelcomeMailPayload struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	TempPassword string `json:"temp_password"`
}

// PasswordResetMailPayload carries the one-time reset token to the mailer.
type PasswordResetMailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}
