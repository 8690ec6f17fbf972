package models

type User struct {
	Base
	Username   string  `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FirstName  string  `gorm:"size:100;not null" json:"firstName"`
	LastName   string  `gorm:"size:100;not null" json:"lastName"`
	Email      string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string  `gorm:"not null" json:"-"`
	AvatarURL  *string `json:"avatarUrl"`
	TelegramID *int64  `gorm:"uniqueIndex" json:"telegramId,omitempty"`
}
