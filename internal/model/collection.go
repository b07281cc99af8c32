package model

import "time"

// Значения видимости коллекций и записей.
const (
	VisibilityEveryone = "everyone"
	VisibilityOwner    = "owner"
)

// Collection - именованная группа записей пользователя.
type Collection struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `gorm:"not null" json:"description"`
	Visibility   string    `gorm:"not null;default:everyone" json:"visibility"`
	CoverPicture string    `json:"coverPicture"`
	CreationDate time.Time `gorm:"index" json:"creationDate"`
	UpdateDate   time.Time `json:"updateDate"`

	CreatorID string `gorm:"type:uuid;not null;index" json:"creatorId"`
	Creator   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"creator,omitempty"`

	// Записи выводятся по collection_id.
	Items []Item `gorm:"foreignKey:CollectionID" json:"itemList"`
}

// IsPublic сообщает, видна ли коллекция всем.
func (c *Collection) IsPublic() bool {
	return c.Visibility == VisibilityEveryone
}

// VisibleTo проверяет доступ на чтение: владелец или видимость "everyone".
func (c *Collection) VisibleTo(userID string) bool {
	return c.IsPublic() || (userID != "" && c.CreatorID == userID)
}
