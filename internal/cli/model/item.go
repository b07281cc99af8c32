package model

import "time"

// Item - запись коллекции в том виде, в каком её отдаёт сервер.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Visibility   string    `json:"visibility"`
	CreationDate time.Time `json:"creationDate"`
	UpdateDate   time.Time `json:"updateDate"`
	MediaList    []string  `json:"mediaList"`
	CollectionID string    `json:"collectionId"`
}
