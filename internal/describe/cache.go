// Package describe looks up the short text shown when a tile is tapped.
//
// A Cache is owned by the caller and loads its file at most once, on the
// first lookup. The file maps an image filename or stem to a description;
// it is parsed as YAML, which also accepts plain JSON.
package describe

import (
	"os"
	"path"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/lettergrid/assets"
	"github.com/robalobadob/lettergrid/internal/round"
)

// Fallback is returned when no description matches.
const Fallback = "No description available for this animal yet."

// Cache is a lazily populated description table.
type Cache struct {
	path string

	once sync.Once
	data map[string]string
}

// NewCache returns a cache reading path, or the embedded descriptions when
// path is empty. Nothing is read until the first Lookup.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

func (c *Cache) load() {
	c.data = map[string]string{}

	var (
		raw []byte
		err error
	)
	if c.path == "" {
		raw, err = assets.Descriptions()
	} else {
		raw, err = os.ReadFile(c.path)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", c.path).Msg("descriptions unavailable")
		return
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		log.Warn().Err(err).Str("path", c.path).Msg("descriptions unreadable")
		return
	}
	for k, v := range parsed {
		if s, ok := v.(string); ok {
			c.data[k] = s
		}
	}
	log.Debug().Int("count", len(c.data)).Msg("descriptions loaded")
}

// Lookup returns the best description for an image filename, trying the
// base name, the stem, then the stem with underscores as spaces.
func (c *Cache) Lookup(item string) string {
	c.once.Do(c.load)

	base := path.Base(item)
	stem := round.Stem(item)
	for _, key := range []string{base, stem, strings.ReplaceAll(stem, "_", " ")} {
		if d, ok := c.data[key]; ok {
			return d
		}
	}
	return Fallback
}

// Len reports how many descriptions are loaded.
func (c *Cache) Len() int {
	c.once.Do(c.load)
	return len(c.data)
}
