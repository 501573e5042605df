package models

import (
	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"
)

// Profile is an account row in the legacy profiles table. Password is only ever
// populated on the way in; it is hashed before the row is saved and never
// serialized back out.
type Profile struct {
	BaseUUIDModel
	Nombre       string `gorm:"type:varchar(255);not null"        json:"nombre"`
	Correo       string `gorm:"type:varchar(255);not null;unique" json:"correo"`
	RolID        int    `gorm:"column:rol_id;not null"            json:"rolId"`
	Password     string `gorm:"-"                                 json:"-"`
	PasswordHash string `gorm:"type:varchar(255);not null"        json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// BeforeSave hashes an incoming plaintext password. The ID comes from the
// embedded BeforeCreate hook; this one must stay side-effect free on updates.
func (p *Profile) BeforeSave(tx *gorm.DB) error {
	if p.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		p.PasswordHash = string(hash)
		p.Password = ""
	}

	return nil
}

func (p *Profile) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

func (p *Profile) Role() Role {
	role, _ := RoleFromCode(p.RolID)
	return role
}
