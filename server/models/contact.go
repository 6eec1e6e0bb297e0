package models

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const DEFAULT_RELATIONSHIP = "family"

type Contact struct {
	BaseModel
	UserID       string `json:"user_id" gorm:"not null;index;size:36"`
	Name         string `json:"name" gorm:"not null"`
	PhoneNumber  string `json:"phone_number" gorm:"not null"`
	Relationship string `json:"relationship" gorm:"not null"`
	IsPrimary    bool   `json:"is_primary"`
}

func (store *Store) CreateContact(contact *Contact) error {
	if contact.Relationship == "" {
		contact.Relationship = DEFAULT_RELATIONSHIP
	}

	return errors.Wrap(store.db.Create(contact).Error, "CreateContact")
}

// ContactsForUser returns at most 'limit' contacts owned by the user, oldest first
func (store *Store) ContactsForUser(userID string, limit int) ([]Contact, error) {
	contacts := []Contact{}
	err := store.db.Scopes(ownedBy(userID)).Order("created_at ASC").Limit(limit).Find(&contacts).Error
	if err != nil {
		return nil, errors.Wrap(err, "ContactsForUser")
	}

	return contacts, nil
}

// DeleteContact removes the contact only if it belongs to the user. gorm.ErrRecordNotFound
// is returned when nothing matched.
func (store *Store) DeleteContact(userID, contactID string) error {
	result := store.db.Scopes(ownedBy(userID)).Delete(&Contact{}, "id = ?", contactID)
	if result.Error != nil {
		return errors.Wrap(result.Error, "DeleteContact")
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
