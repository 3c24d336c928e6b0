package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

const (
	acquisitionPrefix = "acq:"
	editPrefix        = "edit:"
)

// SessionStore keeps workflow sessions in memory. A session expires after ttl
// without access.
type SessionStore struct {
	items *cache.Cache
	ttl   time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{
		items: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func (st *SessionStore) NewID() string {
	return uuid.NewString()
}

func (st *SessionStore) PutAcquisition(s *AcquisitionSession) {
	st.items.Set(acquisitionPrefix+s.ID(), s, st.ttl)
}

func (st *SessionStore) GetAcquisition(id string) (*AcquisitionSession, error) {
	v, ok := st.touch(acquisitionPrefix + id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s, ok := v.(*AcquisitionSession)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *SessionStore) DeleteAcquisition(id string) {
	st.items.Delete(acquisitionPrefix + id)
}

func (st *SessionStore) PutEdit(s *EditSession) {
	st.items.Set(editPrefix+s.ID(), s, st.ttl)
}

func (st *SessionStore) GetEdit(id string) (*EditSession, error) {
	v, ok := st.touch(editPrefix + id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s, ok := v.(*EditSession)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (st *SessionStore) DeleteEdit(id string) {
	st.items.Delete(editPrefix + id)
}

func (st *SessionStore) Count() int {
	return st.items.ItemCount()
}

// touch returns the item and slides its expiry. Replace only succeeds while
// the key exists, so a concurrent delete is never undone.
func (st *SessionStore) touch(key string) (interface{}, bool) {
	v, ok := st.items.Get(key)
	if !ok {
		return nil, false
	}
	if err := st.items.Replace(key, v, st.ttl); err != nil {
		return nil, false
	}
	return v, true
}
