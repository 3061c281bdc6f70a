package jobqueue

import (
	"encoding/json"
	"log"

	"github.com/dripgate/dripgate/internal/pkg/mail"
)

// ProcessWelcomeMail sends the one-time credentials message for a freshly
// provisioned subscriber.
func ProcessWelcomeMail(job *Job) error {
	var payload WelcomeMailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return err
	}
	return mail.SendWelcomeMail(payload.Email, payload.Name, payload.TempPassword)
}

// WelcomeNotifier adapts the queue to the provisioning engine's notifier
// contract. Enqueueing is the only work done on the request path; the
// worker sends the mail later.
type WelcomeNotifier struct {
	queue *Queue
}

// NewWelcomeNotifier wraps the queue for provisioning.
func NewWelcomeNotifier(queue *Queue) *WelcomeNotifier {
	return &WelcomeNotifier{queue: queue}
}

// NotifyWelcome enqueues the welcome mail job. Failures are logged and
// swallowed: the provisioning transaction has already committed and must
// not be affected.
func (n *WelcomeNotifier) NotifyWelcome(email, name, tempPassword string) {
	job, err := NewJob(JobTypeWelcomeMail, WelcomeMailPayload{
		Email:        email,
		Name:         name,
		TempPassword: tempPassword,
	})
	if err != nil {
		log.Printf("welcome mail job build failed for %s: %v", email, err)
		return
	}
	if err := n.queue.Enqueue(job); err != nil {
		log.Printf("welcome mail enqueue failed for %s: %v", email, err)
	}
}
