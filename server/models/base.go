package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	MAX_CONTACTS_PER_USER = 100
	MAX_ALERTS_PER_USER   = 100
	MAX_HISTORY_PER_USER  = 50
)

// ErrDuplicate is returned when an insert violates a unique index
var ErrDuplicate = errors.New("duplicate record")

type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate assigns an id & creation time to records that don't have one yet
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.NewString()
	}

	if base.CreatedAt.IsZero() {
		base.CreatedAt = time.Now().UTC()
	}

	return nil
}

// Store is the persistence gateway over the six raksha collections
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

func ownedBy(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func newestFirst(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Limit(limit)
	}
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// translateError maps unique index violations to ErrDuplicate. Drivers that don't
// implement gorm's error translation are matched on their message.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry") {
		return ErrDuplicate
	}

	return err
}
