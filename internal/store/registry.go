package store

import (
	"fmt"
	"os"
	"sync"

	"github.com/evamaren/daybook/internal/models"
)

// Space groups the snapshot containers for one owner's data.
type Space struct {
	Entries *Snapshot[models.JournalEntry]
	Meals   *Snapshot[models.Meal]
	Plans   *Snapshot[models.WeeklyPlan]
}

// Registry is the process-wide container of per-owner spaces. With a cache
// configured, each snapshot hydrates from its named key at first use and
// writes the full list back through on every mutation.
type Registry struct {
	mu     sync.Mutex
	spaces map[uint]*Space
	cache  *Cache
}

func NewRegistry(cache *Cache) *Registry {
	return &Registry{
		spaces: make(map[uint]*Space),
		cache:  cache,
	}
}

// Space returns the snapshot space for the given owner, building it on first
// use.
func (registry *Registry) Space(ownerID uint) *Space {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if space, ok := registry.spaces[ownerID]; ok {
		return space
	}

	space := &Space{
		Entries: NewSnapshot[models.JournalEntry](),
		Meals:   NewSnapshot[models.Meal](),
		Plans:   NewSnapshot[models.WeeklyPlan](),
	}
	if registry.cache != nil {
		hydrateSnapshot(registry.cache, journalCacheKey(ownerID), space.Entries)
		hydrateSnapshot(registry.cache, mealCacheKey(ownerID), space.Meals)
		hydrateSnapshot(registry.cache, planCacheKey(ownerID), space.Plans)
	}
	registry.spaces[ownerID] = space
	return space
}

// Forget drops an owner's space and erases its cached lists. Called on sign
// out so a shared machine keeps no copy of the owner's data.
func (registry *Registry) Forget(ownerID uint) {
	registry.mu.Lock()
	delete(registry.spaces, ownerID)
	cache := registry.cache
	registry.mu.Unlock()

	if cache == nil {
		return
	}
	for _, key := range []string{journalCacheKey(ownerID), mealCacheKey(ownerID), planCacheKey(ownerID)} {
		if err := cache.Erase(key); err != nil {
			fmt.Fprintf(os.Stderr, "store: erase %s: %v\n", key, err)
		}
	}
}

func hydrateSnapshot[T Entity](cache *Cache, key string, snapshot *Snapshot[T]) {
	items := make([]T, 0)
	found, err := cache.ReadList(key, &items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: hydrate %s: %v\n", key, err)
	} else if found {
		snapshot.ReplaceAll(items)
	}
	snapshot.SetPersist(func(list []T) {
		if err := cache.WriteList(key, list); err != nil {
			fmt.Fprintf(os.Stderr, "store: persist %s: %v\n", key, err)
		}
	})
}

// Cache key names follow the original persisted-store names, one list per
// owner and kind.
func journalCacheKey(ownerID uint) string {
	return fmt.Sprintf("%d-journal-storage", ownerID)
}

func mealCacheKey(ownerID uint) string {
	return fmt.Sprintf("%d-diet-planner-storage", ownerID)
}

func planCacheKey(ownerID uint) string {
	return fmt.Sprintf("%d-weekly-planner-storage", ownerID)
}
