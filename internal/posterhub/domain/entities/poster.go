// Package entities defines the domain entities for the posterhub service.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Poster представляет собой афишу мероприятия.
type Poster struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Description  string     `json:"description,omitempty"`
	Tags         []string   `json:"tags"`
	Organization string     `json:"organization,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	IsRecurring  bool       `json:"is_recurring"`
	UserID       string     `json:"user_id,omitempty"`
}

// NewPoster создает новую афишу со сгенерированным ID и временем создания.
// Повторяющиеся теги схлопываются.
func NewPoster(title, content, description string, tags []string, organization string) *Poster {
	return &Poster{
		ID:           uuid.New().String(),
		Title:        title,
		Content:      content,
		Description:  description,
		Tags:         DedupTags(tags),
		Organization: organization,
		CreatedAt:    time.Now(),
	}
}

// IsValid проверяет обязательные поля афиши: непустые ID и заголовок.
func (p *Poster) IsValid() bool {
	return p != nil && p.ID != "" && p.Title != ""
}

// HasTag проверяет наличие тега у афиши.
func (p *Poster) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DedupTags удаляет повторяющиеся теги, сохраняя порядок первого вхождения.
func DedupTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
