package dto

import (
	"strings"

	uModel "smartedu_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest: dipakai admin untuk mendaftarkan siswa / admin
type CreateUserRequest struct {
	UserName    string         `json:"user_name" validate:"required,min=3,max=100"`
	Email       string         `json:"email" validate:"required,email,max=255"`
	Password    string         `json:"password" validate:"required,min=8,max=72"`
	Role        string         `json:"role" validate:"omitempty,oneof=user admin"`
	RollNumber  string         `json:"roll_number" validate:"omitempty,max=30"`
	Class       string         `json:"class" validate:"omitempty,max=20"`
	Section     string         `json:"section" validate:"omitempty,max=20"`
	PhoneNumber string         `json:"phone_number" validate:"omitempty,max=20"`
	Guardian    *GuardianInput `json:"guardian,omitempty"`
	Address     string         `json:"address" validate:"omitempty,max=255"`
}

type GuardianInput struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Relation    string `json:"relation" validate:"omitempty,max=30"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
}

// Normalize: trim & normalisasi dasar
func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Role = strings.TrimSpace(strings.ToLower(r.Role))
	r.RollNumber = strings.TrimSpace(r.RollNumber)
	r.Class = strings.TrimSpace(r.Class)
	r.Section = strings.TrimSpace(r.Section)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Address = strings.TrimSpace(r.Address)
}

// ToModel: password masih plain, di-hash di service
func (r *CreateUserRequest) ToModel() *uModel.UserModel {
	m := &uModel.UserModel{
		UserName:    r.UserName,
		Email:       r.Email,
		Password:    r.Password,
		Role:        r.Role,
		RollNumber:  r.RollNumber,
		Class:       r.Class,
		Section:     r.Section,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
	}
	if r.Guardian != nil {
		m.Guardian = uModel.Guardian{
			Name:        strings.TrimSpace(r.Guardian.Name),
			Relation:    strings.TrimSpace(r.Guardian.Relation),
			PhoneNumber: strings.TrimSpace(r.Guardian.PhoneNumber),
		}
	}
	return m
}
