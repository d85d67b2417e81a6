package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/heropick/internal/domain/catalog"
	"github.com/okian/heropick/internal/domain/model"
)

// CatalogEntry is one hero as stored in the tag file. Tags fetched from the
// statistics provider and hand-maintained tags are kept apart so that a
// refresh never drops manual corrections.
type CatalogEntry struct {
	Name       string   `json:"-" yaml:"-"`
	StratzTags []string `json:"stratz_tags" yaml:"stratz_tags"`
	CustomTags []string `json:"custom_tags" yaml:"custom_tags"`
}

// Tags merges provider and custom tags, dropping duplicates and keeping the
// first occurrence.
func (e CatalogEntry) Tags() []string {
	seen := make(map[string]struct{}, len(e.StratzTags)+len(e.CustomTags))
	out := make([]string, 0, len(e.StratzTags)+len(e.CustomTags))
	for _, list := range [][]string{e.StratzTags, e.CustomTags} {
		for _, t := range list {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, path, err)
	}
	return data, nil
}

// decodeOrdered walks a top-level mapping in file order and hands every value
// to fn, which decodes it into whatever shape it expects.
func decodeOrdered(path string, data []byte, fn func(key string, decode func(any) error, isList bool) error) error {
	if isYAML(path) {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%w %s: %w", ErrDecode, path, err)
		}
		if len(doc.Content) == 0 {
			return nil
		}
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("%w %s: top level must be a mapping", ErrDecode, path)
		}
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, val := root.Content[i], root.Content[i+1]
			if err := fn(key.Value, val.Decode, val.Kind == yaml.SequenceNode); err != nil {
				return fmt.Errorf("%w %s: %q: %w", ErrDecode, path, key.Value, err)
			}
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w %s: top level must be an object", ErrDecode, path)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrDecode, path, err)
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w %s: %q: %w", ErrDecode, path, key, err)
		}
		trimmed := bytes.TrimSpace(raw)
		isList := len(trimmed) > 0 && trimmed[0] == '['
		decode := func(v any) error { return json.Unmarshal(raw, v) }
		if err := fn(key, decode, isList); err != nil {
			return fmt.Errorf("%w %s: %q: %w", ErrDecode, path, key, err)
		}
	}
	return nil
}

// LoadCatalogEntries reads the tag file in file order. A hero maps either to a
// plain tag list or to {stratz_tags, custom_tags}.
func LoadCatalogEntries(path string) ([]CatalogEntry, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var out []CatalogEntry
	err = decodeOrdered(path, data, func(key string, decode func(any) error, isList bool) error {
		e := CatalogEntry{Name: key}
		if isList {
			var tags []string
			if err := decode(&tags); err != nil {
				return err
			}
			e.CustomTags = tags
		} else if err := decode(&e); err != nil {
			return err
		}
		e.Name = key
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadCatalog reads the tag file into a catalog.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	entries, err := LoadCatalogEntries(path)
	if err != nil {
		return nil, err
	}
	return CatalogFromEntries(entries)
}

// CatalogFromEntries builds a catalog from stored entries.
func CatalogFromEntries(entries []CatalogEntry) (*catalog.Catalog, error) {
	heroes := make([]model.Hero, len(entries))
	for i, e := range entries {
		heroes[i] = model.Hero{Name: e.Name, Tags: e.Tags()}
	}
	c, err := catalog.New(heroes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return c, nil
}

// LoadPool reads the comfort file. File order becomes the pool order, which
// breaks score ties. Unrecognised comfort strings are kept and read as "ok".
func LoadPool(path string) (*catalog.Pool, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var entries []catalog.PoolEntry
	err = decodeOrdered(path, data, func(key string, decode func(any) error, _ bool) error {
		var level string
		if err := decode(&level); err != nil {
			return err
		}
		parsed, _ := model.ParseComfort(level)
		entries = append(entries, catalog.PoolEntry{Hero: key, Comfort: parsed})
		return nil
	})
	if err != nil {
		return nil, err
	}
	p, err := catalog.NewPool(entries)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}
	return p, nil
}

// LoadMatchupRecords reads the matchup file.
func LoadMatchupRecords(path string) (map[string]model.MatchupRecord, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	records := make(map[string]model.MatchupRecord)
	err = decodeOrdered(path, data, func(key string, decode func(any) error, _ bool) error {
		var rec model.MatchupRecord
		if err := decode(&rec); err != nil {
			return err
		}
		records[key] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LoadMatchups reads the matchup file into a table.
func LoadMatchups(path string) (*catalog.MatchupTable, error) {
	records, err := LoadMatchupRecords(path)
	if err != nil {
		return nil, err
	}
	return catalog.NewMatchupTable(records), nil
}

// SaveCatalog writes entries as {name: {stratz_tags, custom_tags}}.
func SaveCatalog(path string, entries []CatalogEntry) error {
	out := make(map[string]CatalogEntry, len(entries))
	for _, e := range entries {
		if e.StratzTags == nil {
			e.StratzTags = []string{}
		}
		if e.CustomTags == nil {
			e.CustomTags = []string{}
		}
		out[e.Name] = e
	}
	return writeJSON(path, out)
}

// SaveMatchups writes the matchup records.
func SaveMatchups(path string, records map[string]model.MatchupRecord) error {
	return writeJSON(path, records)
}

// writeJSON writes v indented to a temp file next to path and renames it into
// place, so readers and the watcher never see a half-written file.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrSave, path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSave, path, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrSave, path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w %s: %w", ErrSave, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSave, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSave, path, err)
	}
	return nil
}

// SortedNames returns the keys of records in lexical order.
func SortedNames(records map[string]model.MatchupRecord) []string {
	names := make([]string, 0, len(records))
	for n := range records {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
