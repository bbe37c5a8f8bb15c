package models

// User: учётная запись. Пароль хранится только в виде bcrypt-хэша.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"column:username;type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:password;type:varchar(255);not null" json:"-"`
	IsAdmin      bool   `gorm:"column:is_admin;not null;default:false" json:"isAdmin"`
}

func (User) TableName() string { return "users" }
