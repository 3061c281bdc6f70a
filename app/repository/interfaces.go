package repository

import (
	"time"

	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPasswordResetToken(token string) (*models.User, error)
	Update(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	CountCreatedBefore(cutoff time.Time) (int64, error)
	CountRetained(cutoff time.Time, minRenewals int) (int64, error)
	AddXP(userID uint, points int) error
	TouchLastActive(userID uint, at time.Time) error
}

// ContentRepository defines the interface for catalog operations. The
// ordering contract (day_offset ascending, insertion order as tie-break)
// is what the scheduler relies on.
type ContentRepository interface {
	UpsertByDay(content *models.Content) error
	GetByID(id uint) (*models.Content, error)
	GetByUUID(uuid string) (*models.Content, error)
	GetAllOrdered() ([]models.Content, error)
	Delete(id uint) error
	Count() (int64, error)
}

// InteractionRepository defines field-scoped atomic upserts keyed on the
// unique (user_id, content_id) pair. Each upsert touches only its own
// column so concurrent like+favorite writes merge instead of clobbering.
type InteractionRepository interface {
	Get(userID, contentID uint) (*models.Interaction, error)
	ListByUser(userID uint) ([]models.Interaction, error)
	ListByContent(contentID uint) ([]models.Interaction, error)
	UpsertLike(userID, contentID uint, liked bool) (*models.Interaction, error)
	UpsertFavorite(userID, contentID uint, favorite bool) (*models.Interaction, error)
	UpsertNote(userID, contentID uint, note string) (*models.Interaction, error)
}

// PaymentRepository exposes read access to the append-only ledger. Writes
// happen exclusively inside the provisioning transaction, which also owns
// the by-external-id dedup lookup.
type PaymentRepository interface {
	TotalSucceededCents() (int64, error)
	RevenueByDay(since time.Time) ([]DailyRevenue, error)
}

// TenantRepository defines store tenant CRUD plus webhook secret resolution.
type TenantRepository interface {
	Create(tenant *models.StoreTenant) error
	GetByID(id uint) (*models.StoreTenant, error)
	GetByDomain(domain string) (*models.StoreTenant, error)
	ListAll() ([]models.StoreTenant, error)
	ListActive() ([]models.StoreTenant, error)
	Update(tenant *models.StoreTenant) error
	Delete(id uint) error
}

// SessionRepository defines login session persistence.
type SessionRepository interface {
	Create(session *models.Session) error
	GetByToken(token string) (*models.Session, error)
	DeleteByToken(token string) error
	DeleteByUser(userID uint) (int64, error)
	DeleteExpired(now time.Time) (int64, error)
	CountExpired(now time.Time) (int64, error)
	Count() (int64, error)
}

// SettingRepository defines the key-value configuration store.
type SettingRepository interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// DailyRevenue is one chart bucket of succeeded payments.
type DailyRevenue struct {
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Content     ContentRepository
	Interaction InteractionRepository
	Payment     PaymentRepository
	Tenant      TenantRepository
	Session     SessionRepository
	Setting     SettingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Content:     NewContentRepository(db),
		Interaction: NewInteractionRepository(db),
		Payment:     NewPaymentRepository(db),
		Tenant:      NewTenantRepository(db),
		Session:     NewSessionRepository(db),
		Setting:     NewSettingRepository(db),
	}
}
