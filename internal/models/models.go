package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null" json:"role"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`

	Phone       string `json:"phone"`
	City        string `json:"city"`
	Country     string `json:"country"`
	LinkedInURL string `json:"linkedin_url"`

	Headline        string `json:"headline"`
	CurrentTitle    string `json:"current_title"`
	YearsExperience int    `json:"years_experience"`
	Skills          string `gorm:"type:text" json:"skills"`

	// Set for employers only.
	CompanyID *uint    `json:"company_id,omitempty"`
	Company   *Company `json:"company,omitempty"`

	Resume *Resume `json:"resume,omitempty"`
}

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"uniqueIndex;not null" json:"company_name"`

	// 'omitempty' prevents loops when fetching a User -> Company -> Users -> ...
	Users []User `json:"users,omitempty"`
}

// Resume is the file uploaded on the last signup step.
type Resume struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"uniqueIndex" json:"user_id"`
	FileName  string    `json:"file_name"`
	MediaType string    `json:"media_type"`
	SizeBytes int64     `json:"size_bytes"`
	Content   []byte    `json:"-"`
}

// WizardSessionItem is one key of a browser tab's signup storage.
type WizardSessionItem struct {
	SessionID string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"primaryKey;column:item_key;size:128"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"index"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&Company{}, &User{}, &Resume{}, &WizardSessionItem{}}
}
