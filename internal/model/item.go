package model

import (
	"path"
	"time"

	"gorm.io/datatypes"
)

// Item - запись внутри коллекции со списком медиафайлов.
type Item struct {
	ID           string                     `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string                     `gorm:"not null" json:"name"`
	Description  string                     `gorm:"not null" json:"description"`
	Visibility   string                     `gorm:"not null;default:everyone" json:"visibility"`
	CreationDate time.Time                  `gorm:"index" json:"creationDate"`
	UpdateDate   time.Time                  `json:"updateDate"`
	MediaList    datatypes.JSONSlice[string] `json:"mediaList"`

	CollectionID string      `gorm:"type:uuid;not null;index" json:"collectionId"`
	Collection   *Collection `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Cover возвращает первый медиафайл - он служит обложкой записи.
func (it *Item) Cover() string {
	if len(it.MediaList) == 0 {
		return ""
	}
	return it.MediaList[0]
}

// IsPublic сообщает, видна ли запись всем.
func (it *Item) IsPublic() bool {
	return it.Visibility == VisibilityEveryone
}

// IndexOfMedia ищет медиафайл по базовому имени файла.
func (it *Item) IndexOfMedia(name string) int {
	for i, p := range it.MediaList {
		if p == name || path.Base(p) == name {
			return i
		}
	}
	return -1
}
