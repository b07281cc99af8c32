package model

import "time"

type Creator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Collection - коллекция; ItemList заполнен только в ответе GET /collections/{id}.
type Collection struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Visibility   string    `json:"visibility"`
	CoverPicture string    `json:"coverPicture"`
	CreationDate time.Time `json:"creationDate"`
	UpdateDate   time.Time `json:"updateDate"`
	Creator      Creator   `json:"creator"`
	ItemList     []Item    `json:"itemList,omitempty"`
}
