package dto

import "posterhub/internal/posterhub/domain/entities"

// UserRequest - тело запроса создания или обновления пользователя.
type UserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// ToEntity собирает нового пользователя из запроса.
func (r *UserRequest) ToEntity() *entities.User {
	return entities.NewUser(r.Username, r.Email, r.Name)
}
