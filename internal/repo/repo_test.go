package repo

import (
	"MediaShelf/internal/model"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует отдельную in-memory SQLite (modernc.org/sqlite) для каждого теста
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	// держим одно соединение открытым, иначе in-memory база исчезнет
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(2)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// хелперы для наполнения базы

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u, err := NewUserRepository(db).CreateUser(context.Background(), &model.User{
		Username: email,
		Email:    email,
		Password: "hash",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedCollection(t *testing.T, db *gorm.DB, creatorID, name string, visibility string, created time.Time) *model.Collection {
	t.Helper()
	c := &model.Collection{
		Name:         name,
		Description:  "d",
		Visibility:   visibility,
		CoverPicture: "uploads/images/" + name + ".png",
		CreatorID:    creatorID,
		CreationDate: created,
		UpdateDate:   created,
	}
	if err := NewCollectionRepository(db).Create(context.Background(), c); err != nil {
		t.Fatalf("seed collection: %v", err)
	}
	return c
}

func seedItem(t *testing.T, db *gorm.DB, collectionID, name string, created time.Time, media ...string) *model.Item {
	t.Helper()
	it := &model.Item{
		Name:         name,
		Description:  "d",
		Visibility:   model.VisibilityEveryone,
		CollectionID: collectionID,
		CreationDate: created,
		UpdateDate:   created,
		MediaList:    media,
	}
	if err := NewItemRepository(db).Create(context.Background(), it); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return it
}
