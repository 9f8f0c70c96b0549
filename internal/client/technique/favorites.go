package technique

import (
	"sort"
	"sync"

	"github.com/sabrinaansede/apphib/pkg/logger"
)

const FavoritesKey = "fav_tecnicas"

type Storage interface {
	Get(key string, dst interface{}) bool
	Set(key string, value interface{}) error
}

// Favorites is the set of favourite card ids, written through to storage
// on every change.
type Favorites struct {
	mu      sync.Mutex
	storage Storage
	ids     map[string]struct{}
}

// LoadFavorites starts empty when nothing usable is stored.
func LoadFavorites(storage Storage) *Favorites {
	f := &Favorites{storage: storage, ids: make(map[string]struct{})}
	var ids []string
	if storage.Get(FavoritesKey, &ids) {
		for _, id := range ids {
			f.ids[id] = struct{}{}
		}
	}
	return f
}

// Toggle flips id and reports whether it is now a favourite. A failed write
// keeps the in-memory change.
func (f *Favorites) Toggle(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, had := f.ids[id]
	if had {
		delete(f.ids, id)
	} else {
		f.ids[id] = struct{}{}
	}
	if err := f.storage.Set(FavoritesKey, f.listLocked()); err != nil {
		logger.Warn("no se pudieron guardar las técnicas favoritas: %v", err)
	}
	return !had
}

func (f *Favorites) Has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}

// List returns the ids sorted.
func (f *Favorites) List() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listLocked()
}

func (f *Favorites) listLocked() []string {
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
