package model

import "time"

// User - владелец коллекций.
type User struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username         string    `gorm:"not null" json:"username"`
	Email            string    `gorm:"not null;uniqueIndex" json:"email"`
	Password         string    `gorm:"not null" json:"-"`
	RegistrationDate time.Time `json:"registrationDate"`
	ProfilePicture   string    `json:"profilePicture"`

	// Список коллекций выводится по creator_id, отдельно не хранится.
	Collections   []Collection `gorm:"foreignKey:CreatorID" json:"collectionList"`
	FavoriteItems []*Item      `gorm:"many2many:user_favorite_items" json:"favoriteItemList,omitempty"`
}
