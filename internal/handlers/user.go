package handlers

import (
	"MediaShelf/internal/config"
	"MediaShelf/internal/middleware"
	"MediaShelf/internal/model"
	"MediaShelf/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler обрабатывает регистрацию, вход и профиль.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

var (
	userGetFailure = failure{
		notFound: "Could not find a user for the provided id.",
		internal: "Fetching user failed, please try again later.",
	}
	userUpdateFailure = failure{
		notFound:  "Could not find a user for the provided id.",
		forbidden: "Unauthorized person can not update this user.",
		internal:  "Something went wrong, could not update user.",
	}
	userPictureFailure = failure{
		notFound:  "Could not find a user for the provided id.",
		forbidden: "Unauthorized person can not update this user.",
		internal:  "Something went wrong, could not update profile picture.",
	}
	userDeleteFailure = failure{
		notFound:  "Could not find a user for the provided id.",
		forbidden: "Unauthorized person can not delete this user.",
		internal:  "Something went wrong, could not delete user.",
	}
)

// Register регистрация пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, err, failure{internal: "Registration failed, please try again later."})
		return
	}
	h.respondWithToken(w, http.StatusCreated, user, "Registration failed, please try again later.")
}

// Login вход пользователя
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, err, failure{internal: "Logging in failed, please try again later."})
		return
	}
	h.respondWithToken(w, http.StatusOK, user, "Logging in failed, please try again later.")
}

// Get профиль пользователя
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.UserService.GetProfile(r.Context(), chi.URLParam(r, "id"), viewerID)
	if err != nil {
		writeServiceError(w, h.Logger, err, userGetFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// Update изменение имени, email или пароля
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), chi.URLParam(r, "id"), callerID, service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, h.Logger, err, userUpdateFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// ChangePicture замена аватара
func (h *UserHandler) ChangePicture(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	form, ok := readMultipart(w, r, h.Config.UploadMaxBytes())
	if !ok {
		return
	}
	defer form.closer()
	if form.file == nil {
		writeMessage(w, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}

	user, err := h.UserService.UpdateProfilePicture(r.Context(), chi.URLParam(r, "id"), callerID, form.file)
	if err != nil {
		writeServiceError(w, h.Logger, err, userPictureFailure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// Delete удаление пользователя со всеми коллекциями
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.UserService.Delete(r.Context(), chi.URLParam(r, "id"), callerID); err != nil {
		writeServiceError(w, h.Logger, err, userDeleteFailure)
		return
	}
	writeMessage(w, http.StatusOK, "User deleted.")
}

// respondWithToken выпускает токен, ставит cookie и отдаёт его в теле ответа.
func (h *UserHandler) respondWithToken(w http.ResponseWriter, status int, user *model.User, failMsg string) {
	token, err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret, h.Config.TokenTTL)
	if err != nil {
		h.Logger.Errorw("token signing failed", "user_id", user.ID, "error", err)
		writeMessage(w, http.StatusInternalServerError, failMsg)
		return
	}
	writeJSON(w, status, authResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
