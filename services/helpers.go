package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Dosada05/cs2-arena/repositories"
)

// handleRepositoryError переводит ошибки хранилища в ошибки сервиса.
// Неизвестные ошибки возвращаются как есть.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrGroupNotFound):
		return ErrGroupNotFound
	case errors.Is(err, repositories.ErrBracketMatchNotFound):
		return ErrBracketMatchNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrMatchPairConflict):
		return ErrDuplicatePairing
	}
	return err
}

func groupLockKey(group string) string {
	return "group:" + group
}

func stageLockKey(stage string) string {
	return "stage:" + stage
}

// keyedMutex serializes work per key inside the process. Entries are dropped
// once nobody holds or waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

// Lock takes every key in sorted order and returns the matching unlock.
func (k *keyedMutex) Lock(keys ...string) func() {
	sorted := uniqueSorted(keys)
	entries := make([]*keyedEntry, len(sorted))

	k.mu.Lock()
	for i, key := range sorted {
		e, ok := k.locks[key]
		if !ok {
			e = &keyedEntry{}
			k.locks[key] = e
		}
		e.refs++
		entries[i] = e
	}
	k.mu.Unlock()

	for _, e := range entries {
		e.mu.Lock()
	}

	return func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
		}
		k.mu.Lock()
		for i, key := range sorted {
			entries[i].refs--
			if entries[i].refs == 0 {
				delete(k.locks, key)
			}
		}
		k.mu.Unlock()
	}
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// lockKeys takes the store-level lock for each key in sorted order.
func lockKeys(ctx context.Context, tx repositories.Store, keys ...string) error {
	for _, key := range uniqueSorted(keys) {
		if err := tx.Lock(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
