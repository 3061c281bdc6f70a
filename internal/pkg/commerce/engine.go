package commerce

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
)

// OutcomeKind classifies the result of processing one payment event.
type OutcomeKind string

const (
	// OutcomeCreated means a new subscriber was provisioned.
	OutcomeCreated OutcomeKind = "created"
	// OutcomeRenewed means an existing subscriber's window was reset.
	OutcomeRenewed OutcomeKind = "renewed"
	// OutcomeDuplicate means the order id was already processed; the
	// event is acknowledged as success without any mutation.
	OutcomeDuplicate OutcomeKind = "duplicate"
)

// Outcome reports what ProcessPaymentEvent did.
type Outcome struct {
	Kind         OutcomeKind
	UserID       uint
	RenewalCycle int
}

// ErrStorageConflict wraps a transactional conflict that persisted after
// the internal retry.
var ErrStorageConflict = errors.New("storage conflict while provisioning")

// errUserConflict marks a concurrent creation of the same user; the retry
// finds the row and takes the renewal path instead.
var errUserConflict = errors.New("concurrent user creation")

// errDuplicateOrder marks the unique external_id index firing; the order
// was processed by a racing request.
var errDuplicateOrder = errors.New("duplicate order id")

const conflictRetryDelay = 250 * time.Millisecond

// WelcomeNotifier delivers the one-time welcome message with the
// subscriber's temporary password. Implementations must be asynchronous:
// provisioning never waits on them.
type WelcomeNotifier interface {
	NotifyWelcome(email, name, tempPassword string)
}

// Engine idempotently provisions subscriptions from payment events.
type Engine struct {
	repo     Repository
	notifier WelcomeNotifier
	now      func() time.Time
}

// NewEngine wires the provisioning engine.
func NewEngine(repo Repository, notifier WelcomeNotifier) *Engine {
	return &Engine{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithNow overrides the clock source. Tests use this for determinism.
func (e *Engine) WithNow(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ProcessPaymentEvent creates or renews the subscriber for the event and
// appends the payment ledger entry, all inside one transaction. The
// external order id deduplicates at-least-once delivery: replays are
// acknowledged as success without touching the user or the ledger. A
// transactional conflict is retried once before it surfaces.
func (e *Engine) ProcessPaymentEvent(ctx context.Context, event PaymentEvent) (Outcome, error) {
	if strings.TrimSpace(event.Email) == "" {
		return Outcome{}, ErrNoCustomerEmail
	}
	if strings.TrimSpace(event.OrderID) == "" {
		return Outcome{}, errors.New("payment event carries no order id")
	}
	if event.Provider == "" {
		event.Provider = models.PaymentProviderShopify
	}

	outcome, err := e.processOnce(ctx, event)
	if err == nil {
		return outcome, nil
	}
	if errors.Is(err, errDuplicateOrder) {
		return Outcome{Kind: OutcomeDuplicate}, nil
	}
	if !errors.Is(err, errUserConflict) && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return Outcome{}, err
	}

	// One retry after backoff; the conflicting row now exists and the
	// rerun takes the renewal or duplicate path.
	select {
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	case <-time.After(conflictRetryDelay):
	}

	outcome, err = e.processOnce(ctx, event)
	if err == nil {
		return outcome, nil
	}
	if errors.Is(err, errDuplicateOrder) {
		return Outcome{Kind: OutcomeDuplicate}, nil
	}
	if errors.Is(err, errUserConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return Outcome{}, fmt.Errorf("%w: %v", ErrStorageConflict, err)
	}
	return Outcome{}, err
}

func (e *Engine) processOnce(ctx context.Context, event PaymentEvent) (Outcome, error) {
	var (
		outcome      Outcome
		welcomeEmail string
		welcomeName  string
		tempPassword string
	)

	err := e.repo.Transaction(func(tx Repository) error {
		// Dedup check first; the unique index on external_id closes the
		// remaining race between this check and the insert below.
		if _, err := tx.FindPaymentByExternalID(event.OrderID); err == nil {
			outcome = Outcome{Kind: OutcomeDuplicate}
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := e.now().UTC()
		user, err := tx.FindUserByEmail(event.Email)
		switch {
		case err == nil:
			user.RenewSubscription(now)
			if err := tx.SaveUser(user); err != nil {
				return err
			}
			outcome = Outcome{Kind: OutcomeRenewed, UserID: user.ID, RenewalCycle: user.RenewalCount}

		case errors.Is(err, gorm.ErrRecordNotFound):
			plain, err := models.GenerateTempPassword()
			if err != nil {
				return err
			}
			user, err = models.NewSubscriber(event.Name, event.Email, plain, now)
			if err != nil {
				return err
			}
			if err := tx.CreateUser(user); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errUserConflict
				}
				return err
			}
			welcomeEmail, welcomeName, tempPassword = user.Email, user.Name, plain
			outcome = Outcome{Kind: OutcomeCreated, UserID: user.ID, RenewalCycle: user.RenewalCount}

		default:
			return err
		}

		record := &models.PaymentRecord{
			UserID:       user.ID,
			AmountCents:  event.AmountCents,
			Currency:     event.Currency,
			Status:       models.PaymentStatusSucceeded,
			Provider:     event.Provider,
			ExternalID:   event.OrderID,
			RenewalCycle: user.RenewalCount,
		}
		if err := tx.CreatePayment(record); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateOrder
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	// The welcome message carries the plaintext temporary password exactly
	// once, after the transaction committed. It is fire-and-forget and can
	// neither fail nor delay provisioning.
	if outcome.Kind == OutcomeCreated && e.notifier != nil {
		e.notifier.NotifyWelcome(welcomeEmail, welcomeName, tempPassword)
	}

	return outcome, nil
}
