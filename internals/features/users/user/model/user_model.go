package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type Guardian struct {
	Name        string `gorm:"column:name;size:100" json:"name,omitempty"`
	Relation    string `gorm:"column:relation;size:30" json:"relation,omitempty"`
	PhoneNumber string `gorm:"column:phone_number;size:20" json:"phone_number,omitempty"`
}

// UserModel merepresentasikan tabel users (siswa & admin sekolah)
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName        string    `gorm:"size:100;not null" json:"user_name"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Role            string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsEmailVerified bool      `gorm:"not null;default:false" json:"is_email_verified"`

	RollNumber  string   `gorm:"size:30;index" json:"roll_number,omitempty"`
	Class       string   `gorm:"size:20" json:"class,omitempty"`
	Section     string   `gorm:"size:20" json:"section,omitempty"`
	PhoneNumber string   `gorm:"size:20" json:"phone_number,omitempty"`
	Guardian    Guardian `gorm:"embedded;embeddedPrefix:guardian_" json:"guardian"`
	Address     string   `gorm:"size:255" json:"address,omitempty"`
	Status      string   `gorm:"type:varchar(10);not null;default:'active'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.SetDefaultValues()
	return nil
}

// SetDefaultValues memastikan nilai default sebelum disimpan
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "user"
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
}

func (u *UserModel) IsActive() bool { return u.Status == UserStatusActive }
