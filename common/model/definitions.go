package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// If you want a helper for JSON unmarshal:
func JSONUnmarshal(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

// JSONMarshal is the encoding counterpart of JSONUnmarshal.
func JSONMarshal(in interface{}) ([]byte, error) {
	return json.Marshal(in)
}

// ----------------------------------------------------------------------
// Catalog data as returned by the webfonts listing API
// ----------------------------------------------------------------------

// FontRecord is one item of the remote font catalog.
type FontRecord struct {
	Family   string            `json:"family"`
	Category string            `json:"category"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

// CatalogResponse is the body of GET /webfonts/v1/webfonts.
type CatalogResponse struct {
	Items []FontRecord `json:"items"`
}

// ----------------------------------------------------------------------
// Derived index, stored as fonts.json
// ----------------------------------------------------------------------

// FontFiles holds every variant -> URL mapping of one family.
type FontFiles struct {
	Files map[string]string `json:"files"`
}

// FontFile holds the single URL of one variant of one family.
type FontFile struct {
	File string `json:"file"`
}

// Families maps family name -> V and remembers the order families were first
// added in. It encodes as a JSON object whose keys keep that order.
type Families[V any] struct {
	names   []string
	entries map[string]V
}

// Set stores v under name. A name already present keeps its position.
func (f *Families[V]) Set(name string, v V) {
	if f.entries == nil {
		f.entries = make(map[string]V)
	}
	if _, ok := f.entries[name]; !ok {
		f.names = append(f.names, name)
	}
	f.entries[name] = v
}

// Get returns the entry for name.
func (f *Families[V]) Get(name string) (V, bool) {
	var zero V
	if f == nil {
		return zero, false
	}
	v, ok := f.entries[name]
	if !ok {
		return zero, false
	}
	return v, true
}

// Names returns the family names in insertion order.
func (f *Families[V]) Names() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Len is the number of families.
func (f *Families[V]) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

func (f *Families[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads object keys in document order.
func (f *Families[V]) UnmarshalJSON(data []byte) error {
	f.names, f.entries = nil, nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("families: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("families: expected family name, got %v", tok)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("families: %s: %w", name, err)
		}
		f.Set(name, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// FontIndex groups the catalog three ways. Each mapping is key -> family -> files,
// with families in catalog order.
type FontIndex struct {
	Type   map[string]*Families[FontFiles] `json:"type"`
	Weight map[string]*Families[FontFile]  `json:"weight"`
	Subset map[string]*Families[FontFiles] `json:"subset"`
}

// NewFontIndex returns an index with all three mappings allocated.
func NewFontIndex() *FontIndex {
	return &FontIndex{
		Type:   make(map[string]*Families[FontFiles]),
		Weight: make(map[string]*Families[FontFile]),
		Subset: make(map[string]*Families[FontFiles]),
	}
}
