package model

import "time"

type User struct {
	ID               string       `json:"id"`
	Username         string       `json:"username"`
	Email            string       `json:"email"`
	RegistrationDate time.Time    `json:"registrationDate"`
	ProfilePicture   string       `json:"profilePicture"`
	CollectionList   []Collection `json:"collectionList"`
	FavoriteItemList []Item       `json:"favoriteItemList,omitempty"`
}

// AuthResponse - ответ регистрации и входа.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
