// Package dto определяет форматы запросов HTTP-слоя.
package dto

import (
	"time"

	"posterhub/internal/posterhub/domain/entities"
)

// PosterRequest - тело запроса создания или обновления афиши.
type PosterRequest struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	Organization string     `json:"organization"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	IsRecurring  bool       `json:"is_recurring"`
}

// ToEntity собирает новую афишу из запроса.
func (r *PosterRequest) ToEntity() *entities.Poster {
	poster := entities.NewPoster(r.Title, r.Content, r.Description, r.Tags, r.Organization)
	poster.StartDate = r.StartDate
	poster.EndDate = r.EndDate
	poster.IsRecurring = r.IsRecurring
	return poster
}

// OCRRequest - тело запроса распознавания текста на изображении.
type OCRRequest struct {
	ImageURL string `json:"image_url"`
}

// OCRResponse - результат распознавания текста.
type OCRResponse struct {
	Text string `json:"text"`
}
