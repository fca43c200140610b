// Package keylock предоставляет мьютексы, привязанные к строковым ключам.
// Используется для сериализации check-then-act операций над одной сущностью.
package keylock

import "sync"

// KeyLock выдает мьютекс на каждый ключ. Запись о ключе живет, пока
// хотя бы одна горутина держит или ждет его блокировку.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New создает новый KeyLock.
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*entry)}
}

// Lock блокирует ключ и возвращает функцию разблокировки.
func (k *KeyLock) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
