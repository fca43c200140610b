package posterusecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"posterhub/internal/posterhub/domain/entities"
)

type mockPosterRepository struct {
	mock.Mock
}

func (m *mockPosterRepository) Get(ctx context.Context, id string) (*entities.Poster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Poster), args.Error(1)
}

func (m *mockPosterRepository) GetAll(ctx context.Context) ([]*entities.Poster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Poster), args.Error(1)
}

func (m *mockPosterRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPosterRepository) Put(ctx context.Context, poster *entities.Poster) (*entities.Poster, error) {
	args := m.Called(ctx, poster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Poster), args.Error(1)
}

func (m *mockPosterRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPosterRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// memoryCache - потокобезопасный кэш в памяти для сценариев с конкуренцией,
// где важна реальная последовательность чтений и записей.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) Close() error {
	return nil
}

// memoryPosterRepository - потокобезопасное хранилище афиш в памяти для
// сценариев с конкуренцией, где мок с заранее заданным сценарием не
// передает реальное чередование операций.
type memoryPosterRepository struct {
	mu      sync.Mutex
	posters map[string]entities.Poster
}

func newMemoryPosterRepository() *memoryPosterRepository {
	return &memoryPosterRepository{posters: make(map[string]entities.Poster)}
}

func (r *memoryPosterRepository) Get(_ context.Context, id string) (*entities.Poster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	poster, ok := r.posters[id]
	if !ok {
		return nil, nil
	}
	copied := poster
	return &copied, nil
}

func (r *memoryPosterRepository) GetAll(_ context.Context) ([]*entities.Poster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entities.Poster, 0, len(r.posters))
	for id := range r.posters {
		poster := r.posters[id]
		result = append(result, &poster)
	}
	return result, nil
}

func (r *memoryPosterRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.posters[id]
	return ok, nil
}

func (r *memoryPosterRepository) Put(_ context.Context, poster *entities.Poster) (*entities.Poster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posters[poster.ID] = *poster
	saved := r.posters[poster.ID]
	return &saved, nil
}

func (r *memoryPosterRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posters, id)
	return nil
}

func (r *memoryPosterRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posters = make(map[string]entities.Poster)
	return nil
}

// emptyCache настраивает кэш на промахи и успешные записи для сценариев,
// где кэширование не является предметом проверки.
func emptyCache() *mockCache {
	cacheMock := new(mockCache)
	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", nil).Maybe()
	cacheMock.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	cacheMock.On("Delete", mock.Anything, mock.Anything).Return(nil).Maybe()
	return cacheMock
}
