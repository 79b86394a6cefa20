package webfonts

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/guarzo/webfonts/common"
	"github.com/guarzo/webfonts/common/model"
)

const (
	// CacheFileName is the blob the index is stored under.
	CacheFileName = "fonts.json"
	// FreshnessWindow is how long a stored index is served before it is rebuilt.
	FreshnessWindow = 24 * time.Hour
)

var (
	ErrNotFound       = errors.New("webfonts: cached index not found")
	ErrCorruptCache   = errors.New("webfonts: cached index is corrupt")
	ErrPersistFailure = errors.New("webfonts: failed to persist index")
)

// IndexStore persists the derived index.
type IndexStore interface {
	IsFresh() bool
	Load() (*model.FontIndex, error)
	Save(idx *model.FontIndex) error
}

var _ IndexStore = (*CacheStore)(nil)

// CacheStore keeps the index as one JSON document in a BlobStore and judges
// freshness by the blob's modification time.
type CacheStore struct {
	blobs common.BlobStore
	now   func() time.Time
}

// NewCacheStore wraps blobs. The clock defaults to time.Now.
func NewCacheStore(blobs common.BlobStore) *CacheStore {
	return &CacheStore{blobs: blobs, now: time.Now}
}

// SetClockForTest replaces the clock used by IsFresh.
func (s *CacheStore) SetClockForTest(now func() time.Time) {
	s.now = now
}

// IsFresh reports whether the stored index is younger than FreshnessWindow.
func (s *CacheStore) IsFresh() bool {
	mod, err := s.blobs.ModTime(CacheFileName)
	if err != nil {
		return false
	}
	return s.now().Sub(mod) < FreshnessWindow
}

func (s *CacheStore) Load() (*model.FontIndex, error) {
	data, err := s.blobs.Read(CacheFileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}

	var idx model.FontIndex
	if err := model.JSONUnmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if idx.Type == nil && idx.Weight == nil && idx.Subset == nil {
		return nil, fmt.Errorf("%w: no mappings", ErrCorruptCache)
	}
	return &idx, nil
}

// Save replaces the stored index wholesale.
func (s *CacheStore) Save(idx *model.FontIndex) error {
	if idx == nil {
		return fmt.Errorf("%w: nil index", ErrPersistFailure)
	}
	data, err := model.JSONMarshal(idx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	if err := s.blobs.Write(CacheFileName, data); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	return nil
}
