// Package search реализует чистые функции поиска, сортировки и выборки
// уникальных значений над коллекцией афиш. Пакет не обращается к хранилищу:
// коллекцию всегда передает вызывающий.
package search

import (
	"sort"
	"strings"
	"time"

	"posterhub/internal/posterhub/domain/entities"
)

// Поля сортировки и выборки уникальных значений.
const (
	FieldCreatedAt    = "createdAt"
	FieldStartDate    = "startDate"
	FieldTitle        = "title"
	FieldOrganization = "organization"
	FieldTags         = "tags"
)

// HaystackSeparator разделяет поля при сборке строки поиска. Разделитель
// является частью контракта поиска по подстроке: он гарантирует, что значения
// соседних полей не склеиваются в ложные совпадения.
const HaystackSeparator = "\n"

// MatchesTag проверяет, что тег присутствует у афиши.
func MatchesTag(poster *entities.Poster, tag string) bool {
	return poster.HasTag(tag)
}

// MatchesAllTags проверяет, что у афиши присутствует каждый из запрошенных
// тегов (семантика AND). Пустой список тегов совпадает с любой афишей.
func MatchesAllTags(poster *entities.Poster, tags []string) bool {
	for _, tag := range tags {
		if !poster.HasTag(tag) {
			return false
		}
	}
	return true
}

// MatchesOrganization проверяет точное совпадение организации.
func MatchesOrganization(poster *entities.Poster, organization string) bool {
	return poster.Organization == organization
}

// Haystack собирает строку поиска афиши: заголовок, описание (если есть),
// теги и организация (если есть), соединенные HaystackSeparator.
func Haystack(poster *entities.Poster) string {
	parts := make([]string, 0, 3+len(poster.Tags))
	parts = append(parts, poster.Title)
	if poster.Description != "" {
		parts = append(parts, poster.Description)
	}
	parts = append(parts, poster.Tags...)
	if poster.Organization != "" {
		parts = append(parts, poster.Organization)
	}
	return strings.Join(parts, HaystackSeparator)
}

// MatchesTerm проверяет, что term является подстрокой строки поиска афиши.
// Сравнение чувствительно к регистру.
func MatchesTerm(poster *entities.Poster, term string) bool {
	return strings.Contains(Haystack(poster), term)
}

// ByTag возвращает афиши, содержащие тег.
func ByTag(posters []*entities.Poster, tag string) []*entities.Poster {
	result := make([]*entities.Poster, 0)
	for _, p := range posters {
		if MatchesTag(p, tag) {
			result = append(result, p)
		}
	}
	return result
}

// ByTags возвращает афиши, содержащие каждый из запрошенных тегов.
func ByTags(posters []*entities.Poster, tags []string) []*entities.Poster {
	result := make([]*entities.Poster, 0)
	for _, p := range posters {
		if MatchesAllTags(p, tags) {
			result = append(result, p)
		}
	}
	return result
}

// ByOrganization возвращает афиши запрошенной организации.
func ByOrganization(posters []*entities.Poster, organization string) []*entities.Poster {
	result := make([]*entities.Poster, 0)
	for _, p := range posters {
		if MatchesOrganization(p, organization) {
			result = append(result, p)
		}
	}
	return result
}

// ByTerm сначала сужает коллекцию по тегам (если они заданы), затем
// отбирает афиши, у которых term входит в строку поиска.
func ByTerm(posters []*entities.Poster, term string, tags []string) []*entities.Poster {
	narrowed := posters
	if len(tags) > 0 {
		narrowed = ByTags(posters, tags)
	}

	result := make([]*entities.Poster, 0)
	for _, p := range narrowed {
		if MatchesTerm(p, term) {
			result = append(result, p)
		}
	}
	return result
}

// SortBy возвращает копию коллекции, устойчиво отсортированную по
// возрастанию createdAt или startDate. Неизвестное поле оставляет
// исходный порядок. Афиши без startDate уходят в конец.
func SortBy(posters []*entities.Poster, field string) []*entities.Poster {
	result := make([]*entities.Poster, len(posters))
	copy(result, posters)

	switch field {
	case FieldCreatedAt:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	case FieldStartDate:
		sort.SliceStable(result, func(i, j int) bool {
			return startDateBefore(result[i].StartDate, result[j].StartDate)
		})
	}

	return result
}

func startDateBefore(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

// DistinctValues возвращает отсортированный набор уникальных значений поля
// по всей коллекции. Поддерживаются поля title, organization и tags (для
// тегов берется объединение всех наборов). Неизвестное поле дает пустой
// набор: поведение исходной системы для него не определено.
func DistinctValues(posters []*entities.Poster, field string) []string {
	seen := make(map[string]struct{})

	for _, p := range posters {
		switch field {
		case FieldTitle:
			seen[p.Title] = struct{}{}
		case FieldOrganization:
			if p.Organization != "" {
				seen[p.Organization] = struct{}{}
			}
		case FieldTags:
			for _, tag := range p.Tags {
				seen[tag] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(seen))
	for v := range seen {
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}
