package webfonts

import (
	"fmt"
	"strings"
)

// SortOrder is the order the remote catalog lists its items in.
type SortOrder string

const (
	SortAlpha      SortOrder = "alpha"
	SortDate       SortOrder = "date"
	SortPopularity SortOrder = "popularity"
	SortStyle      SortOrder = "style"
	SortTrending   SortOrder = "trending"
)

// DefaultSortOrder is used when no order is configured.
const DefaultSortOrder = SortPopularity

// SortOrders lists every order the API accepts.
var SortOrders = []SortOrder{SortAlpha, SortDate, SortPopularity, SortStyle, SortTrending}

// ParseSortOrder validates s. An empty value yields DefaultSortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSortOrder, nil
	}
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
}
