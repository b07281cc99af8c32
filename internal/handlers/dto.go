package handlers

import (
	"MediaShelf/internal/model"
	"time"
)

type creatorDTO struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// collectionDTO - коллекция без записей; создатель раскрывается только как id и имя.
type collectionDTO struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Visibility   string     `json:"visibility"`
	CoverPicture string     `json:"coverPicture"`
	CreationDate time.Time  `json:"creationDate"`
	UpdateDate   time.Time  `json:"updateDate"`
	Creator      creatorDTO `json:"creator"`
}

// collectionDetailDTO - коллекция вместе со списком записей.
type collectionDetailDTO struct {
	collectionDTO
	ItemList []model.Item `json:"itemList"`
}

type userDTO struct {
	ID               string          `json:"id"`
	Username         string          `json:"username"`
	Email            string          `json:"email"`
	RegistrationDate time.Time       `json:"registrationDate"`
	ProfilePicture   string          `json:"profilePicture"`
	CollectionList   []collectionDTO `json:"collectionList"`
	FavoriteItemList []*model.Item   `json:"favoriteItemList,omitempty"`
}

// authResponse - ответ регистрации и входа.
type authResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toCollectionDTO(c *model.Collection) collectionDTO {
	dto := collectionDTO{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Visibility:   c.Visibility,
		CoverPicture: c.CoverPicture,
		CreationDate: c.CreationDate,
		UpdateDate:   c.UpdateDate,
		Creator:      creatorDTO{ID: c.CreatorID},
	}
	if c.Creator != nil {
		dto.Creator.Username = c.Creator.Username
	}
	return dto
}

func toCollectionDTOs(list []model.Collection) []collectionDTO {
	out := make([]collectionDTO, 0, len(list))
	for i := range list {
		out = append(out, toCollectionDTO(&list[i]))
	}
	return out
}

func toCollectionDetailDTO(c *model.Collection) collectionDetailDTO {
	items := c.Items
	if items == nil {
		items = []model.Item{}
	}
	return collectionDetailDTO{collectionDTO: toCollectionDTO(c), ItemList: items}
}

func toUserDTO(u *model.User) userDTO {
	return userDTO{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		RegistrationDate: u.RegistrationDate,
		ProfilePicture:   u.ProfilePicture,
		CollectionList:   toCollectionDTOs(u.Collections),
		FavoriteItemList: u.FavoriteItems,
	}
}
