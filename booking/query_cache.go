package booking

import (
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
)

const classesKey = "classes"

func userKey(id string) string {
	return "users/" + id
}

// Changed announces that a booking of UserID for ClassID was written.
type Changed struct {
	UserID  string
	ClassID string
}

// QueryCache holds the class list and user documents for staleTime. Entries
// are advisory: the mock API stays the source of truth. A staleTime of zero
// or less keeps nothing, every read goes to the remote.
type QueryCache struct {
	cache    *cache.Cache
	disabled bool
}

func NewQueryCache(staleTime time.Duration) *QueryCache {
	if staleTime <= 0 {
		return &QueryCache{cache: cache.New(cache.NoExpiration, 0), disabled: true}
	}

	return &QueryCache{cache: cache.New(staleTime, 2*staleTime)}
}

func (q *QueryCache) Classes() ([]FitnessClass, bool) {
	cached, found := q.cache.Get(classesKey)

	if !found {
		return nil, false
	}

	return slices.Clone(cached.([]FitnessClass)), true
}

func (q *QueryCache) SetClasses(classes []FitnessClass) {
	if q.disabled {
		return
	}
	q.cache.Set(classesKey, slices.Clone(classes), cache.DefaultExpiration)
}

func (q *QueryCache) User(id string) (UserDocument, bool) {
	cached, found := q.cache.Get(userKey(id))

	if !found {
		return UserDocument{}, false
	}

	doc := cached.(UserDocument)
	doc.Bookings = slices.Clone(doc.Bookings)

	return doc, true
}

func (q *QueryCache) SetUser(doc UserDocument) {
	if q.disabled {
		return
	}
	doc.Bookings = slices.Clone(doc.Bookings)
	q.cache.Set(userKey(doc.ID), doc, cache.DefaultExpiration)
}

// Invalidate drops the entries a booking change makes stale: the user's
// document and the class list.
func (q *QueryCache) Invalidate(ev Changed) {
	q.cache.Delete(userKey(ev.UserID))
	q.cache.Delete(classesKey)
}
