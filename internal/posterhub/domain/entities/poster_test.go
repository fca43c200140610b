package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"

	"posterhub/internal/posterhub/domain/entities"
)

func TestNewPoster(t *testing.T) {
	fixedTime := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	patch, err := mpatch.PatchMethod(time.Now, func() time.Time {
		return fixedTime
	})
	require.NoError(t, err, "Failed to patch time.Now")
	defer func() {
		if err := patch.Unpatch(); err != nil {
			t.Errorf("Failed to unpatch: %v", err)
		}
	}()

	poster := entities.NewPoster("Jazz Night", "https://img.example/1.png", "Live music", []string{"music", "jazz", "music"}, "Blue Note")

	assert.NotEmpty(t, poster.ID)
	assert.Equal(t, "Jazz Night", poster.Title)
	assert.Equal(t, "https://img.example/1.png", poster.Content)
	assert.Equal(t, "Live music", poster.Description)
	assert.Equal(t, []string{"music", "jazz"}, poster.Tags)
	assert.Equal(t, "Blue Note", poster.Organization)
	assert.Equal(t, fixedTime, poster.CreatedAt)
	assert.Nil(t, poster.StartDate)
	assert.False(t, poster.IsRecurring)
}

func TestPosterIsValid(t *testing.T) {
	tests := []struct {
		name     string
		poster   *entities.Poster
		expected bool
	}{
		{name: "Valid poster", poster: &entities.Poster{ID: "1", Title: "Jazz"}, expected: true},
		{name: "Missing ID", poster: &entities.Poster{Title: "Jazz"}, expected: false},
		{name: "Missing title", poster: &entities.Poster{ID: "1"}, expected: false},
		{name: "Nil poster", poster: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.poster.IsValid())
		})
	}
}

func TestHasTag(t *testing.T) {
	poster := &entities.Poster{ID: "1", Title: "Jazz", Tags: []string{"music", "live"}}

	assert.True(t, poster.HasTag("music"))
	assert.False(t, poster.HasTag("art"))
	assert.False(t, poster.HasTag("Music"))
}

func TestDedupTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		expected []string
	}{
		{name: "Duplicates collapse keeping first position", tags: []string{"b", "a", "b", "c", "a"}, expected: []string{"b", "a", "c"}},
		{name: "No duplicates", tags: []string{"a", "b"}, expected: []string{"a", "b"}},
		{name: "Nil input", tags: nil, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, entities.DedupTags(tt.tags))
		})
	}
}
