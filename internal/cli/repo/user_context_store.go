package repo

// UserContextStore абстракция для хранения контекста пользователя (id после входа).
type UserContextStore interface {
	SaveUserID(id string) error
	LoadUserID() (string, error)
}

// Session объединяет токен и контекст пользователя.
type Session interface {
	TokenStore
	UserContextStore
}
