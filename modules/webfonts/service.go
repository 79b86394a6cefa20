package webfonts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/guarzo/webfonts/common"
	"github.com/guarzo/webfonts/common/model"
)

// ErrorMessage is the text callers see when no fonts match a query.
const ErrorMessage = "Error: No fonts exist with the given parameters"

// ErrNoFonts is returned by every query that has nothing to list, whether the
// key is unknown or no index could be obtained.
var ErrNoFonts = errors.New(ErrorMessage)

// FontService is the query surface over the catalog index.
type FontService interface {
	RefreshIfStale(ctx context.Context) error
	ListWeights(ctx context.Context) ([]string, error)
	ListSubsets(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
	FontsByWeight(ctx context.Context, weight string) ([]string, error)
	FontsBySubset(ctx context.Context, subset string) ([]string, error)
	FontsByCategory(ctx context.Context, category string) ([]string, error)
	CatalogURL() (string, error)
	APIKey() string
	SortOrder() SortOrder
	CacheDir() string
}

// ServiceOptions configures NewFontService.
type ServiceOptions struct {
	APIKey string
	Sort   SortOrder
	// CacheDir is reported by CacheDir(); the store passed to NewFontService
	// decides where fonts.json actually lives.
	CacheDir string
	Logger   common.Logger
}

// fontService owns the in-memory index. Once loaded it is kept for the life
// of the service and not checked against the cache file again.
type fontService struct {
	client   CatalogClient
	store    IndexStore
	logger   common.Logger
	apiKey   string
	sort     SortOrder
	cacheDir string
	lower    cases.Caser

	index *model.FontIndex
}

// NewFontService constructs a fontService. The API key is trimmed; an
// invalid sort order is rejected.
func NewFontService(client CatalogClient, store IndexStore, opts ServiceOptions) (FontService, error) {
	order, err := ParseSortOrder(string(opts.Sort))
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = common.NopLogger{}
	}
	return &fontService{
		client:   client,
		store:    store,
		logger:   logger,
		apiKey:   strings.TrimSpace(opts.APIKey),
		sort:     order,
		cacheDir: strings.TrimSpace(opts.CacheDir),
		lower:    cases.Lower(language.Und),
	}, nil
}

func (s *fontService) APIKey() string       { return s.apiKey }
func (s *fontService) SortOrder() SortOrder { return s.sort }
func (s *fontService) CacheDir() string     { return s.cacheDir }

// CatalogURL is the request the next refresh would issue.
func (s *fontService) CatalogURL() (string, error) {
	return s.client.CatalogURL(s.sort, s.apiKey)
}

// RefreshIfStale makes sure an index is held: the one already in memory, a
// fresh cache file, or a new build from the remote catalog. A failed save
// still keeps the new index in memory.
func (s *fontService) RefreshIfStale(ctx context.Context) error {
	if s.index != nil {
		return nil
	}

	if s.store.IsFresh() {
		idx, err := s.store.Load()
		if err == nil {
			s.logger.Debugf("loaded font index from cache")
			s.index = idx
			return nil
		}
		s.logger.Warnf("discarding cached font index: %v", err)
	}

	if s.apiKey == "" {
		s.logger.Debugf("no API key configured, fetching the catalog anonymously")
	}
	records, err := s.client.Fetch(ctx, s.sort, s.apiKey)
	if err != nil {
		return fmt.Errorf("refresh font index: %w", err)
	}
	idx := BuildIndex(records)
	s.index = idx
	s.logger.Infof("rebuilt font index from %d catalog items", len(records))

	if err := s.store.Save(idx); err != nil {
		return fmt.Errorf("refresh font index: %w", err)
	}
	return nil
}

// ensureIndex refreshes if needed and reports whether an index can be served.
func (s *fontService) ensureIndex(ctx context.Context) bool {
	if err := s.RefreshIfStale(ctx); err != nil {
		s.logger.Warnf("%v", err)
	}
	return s.index != nil
}

func (s *fontService) ListWeights(ctx context.Context) ([]string, error) {
	if !s.ensureIndex(ctx) {
		return nil, ErrNoFonts
	}
	return sortedKeys(s.index.Weight)
}

func (s *fontService) ListSubsets(ctx context.Context) ([]string, error) {
	if !s.ensureIndex(ctx) {
		return nil, ErrNoFonts
	}
	return sortedKeys(s.index.Subset)
}

func (s *fontService) ListCategories(ctx context.Context) ([]string, error) {
	if !s.ensureIndex(ctx) {
		return nil, ErrNoFonts
	}
	return sortedKeys(s.index.Type)
}

// FontsByWeight treats "400" as "regular" and "400italic" as "italic".
func (s *fontService) FontsByWeight(ctx context.Context, weight string) ([]string, error) {
	switch weight {
	case "400":
		weight = "regular"
	case "400italic":
		weight = "italic"
	}
	if !s.ensureIndex(ctx) {
		return nil, ErrNoFonts
	}
	return familiesFor(s.index.Weight, s.lower.String(weight))
}

func (s *fontService) FontsBySubset(ctx context.Context, subset string) ([]string, error) {
	if !s.ensureIndex(ctx) {
		return nil, ErrNoFonts
	}
	return familiesFor(s.index.Subset, s.lower.String(subset))
}

func (s *fontService) FontsByCategory(ctx context.Context, category string) ([]string, error) {
	if !s.ensureIndex(ctx) {
		return nil, ErrNoFonts
	}
	return familiesFor(s.index.Type, s.lower.String(category))
}

func sortedKeys[V any](m map[string]V) ([]string, error) {
	if len(m) == 0 {
		return nil, ErrNoFonts
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// familiesFor lists the families under key in catalog order.
func familiesFor[V any](m map[string]*model.Families[V], key string) ([]string, error) {
	families, ok := m[key]
	if !ok || families.Len() == 0 {
		return nil, ErrNoFonts
	}
	return families.Names(), nil
}
