package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is a destination for allocated money, e.g. a savings account.
type Account struct {
	DefaultModel
	User     User      `json:"-"`
	UserID   uuid.UUID `gorm:"uniqueIndex:account_name_user_id"`
	Name     string    `gorm:"uniqueIndex:account_name_user_id"`
	Note     string
	Archived bool
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	return tx.First(&User{}, toSave.UserID).Error
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}
