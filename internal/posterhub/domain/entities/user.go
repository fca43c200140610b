package entities

import "github.com/google/uuid"

// User представляет собой владельца афиш.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Posters  []*Poster `json:"posters"`
}

// NewUser создает нового пользователя со сгенерированным ID.
func NewUser(username, email, name string) *User {
	return &User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Name:     name,
		Posters:  make([]*Poster, 0),
	}
}

// IsValid проверяет обязательные поля пользователя.
func (u *User) IsValid() bool {
	return u != nil && u.Username != "" && u.Email != "" && u.Name != ""
}

// AddPoster добавляет афишу в коллекцию пользователя. Коллекция ведет себя
// как множество по ID афиши: повторное добавление заменяет существующую
// запись, а не дублирует ее.
func (u *User) AddPoster(poster *Poster) {
	for i, existing := range u.Posters {
		if existing.ID == poster.ID {
			u.Posters[i] = poster
			return
		}
	}
	u.Posters = append(u.Posters, poster)
}
