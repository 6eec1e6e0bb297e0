package models

import (
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var allFieldsExceptPassword = []string{"id",
	"email",
	"phone_number",
	"full_name",
	"is_active",
	"created_at",
}

type User struct {
	BaseModel
	Email       string `json:"email" gorm:"not null;uniqueIndex;size:255"`
	PhoneNumber string `json:"phone_number" gorm:"not null;uniqueIndex;size:32"`
	FullName    string `json:"full_name" gorm:"not null"`
	Password    string `json:"-" gorm:"column:hashed_password;not null"`
	IsActive    bool   `json:"is_active"`
}

// CreateUserWithSettings inserts the user along with default settings. Either both rows
// exist afterwards or neither does.
func (store *Store) CreateUserWithSettings(user *User) error {
	err := store.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translateError(err)
		}

		settings := DefaultSettings(user.ID)
		return translateError(tx.Create(&settings).Error)
	})

	if errors.Is(err, ErrDuplicate) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "CreateUserWithSettings")
}

// UserExists reports whether a user with the given email or phone number is already registered
func (store *Store) UserExists(email, phoneNumber string) (bool, error) {
	var count int64
	err := store.db.Model(&User{}).
		Where("email = ? OR phone_number = ?", email, phoneNumber).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "UserExists")
	}

	return count > 0, nil
}

func (store *Store) FindUserBy(field string, value interface{}) (*User, error) {
	user := User{}
	err := store.db.Select(allFieldsExceptPassword).First(&user, fmt.Sprintf("%v = ?", field), value).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserByEmail returns the user including the password hash
func (store *Store) FindUserByEmail(email string) (*User, error) {
	user := User{}
	err := store.db.First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (store *Store) CountUsers() (int64, error) {
	var count int64
	err := store.db.Model(&User{}).Count(&count).Error
	return count, errors.Wrap(err, "CountUsers")
}
