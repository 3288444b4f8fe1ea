// internal/pool/pool.go
//
// Item pool management for the round composer.
//
// Responsibilities:
//   - Load the image filenames from a directory, or fall back to the
//     embedded default list when no directory is configured.
//   - Provide an immutable, sorted, duplicate-free snapshot.
//
// Loading behavior (Load):
//   1. If dir is set, list every *.png file in it (extension matched
//      case-insensitively, subdirectories ignored).
//   2. If dir is empty, use assets/pool.txt.
//
// The composer only ever sees the snapshot; it never touches the disk.

package pool

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/robalobadob/lettergrid/assets"
	"github.com/robalobadob/lettergrid/internal/round"
)

// ImageExt is the only file type picked up from an image directory.
const ImageExt = ".png"

// Pool is a snapshot of the available items.
type Pool struct {
	source string
	items  []string
}

// Load builds a pool from dir, or from the embedded list when dir is "".
func Load(dir string) (*Pool, error) {
	if dir == "" {
		list, err := assets.PoolList()
		if err != nil {
			return nil, fmt.Errorf("pool: read embedded list: %w", err)
		}
		return New("embedded", list), nil
	}
	list, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	return New(dir, list), nil
}

// New builds a pool from an explicit item list.
func New(source string, items []string) *Pool {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	sort.Strings(out)
	return &Pool{source: source, items: out}
}

// readDir lists image files in dir (filenames only).
func readDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("pool: read %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ImageExt) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// Items returns a copy of the snapshot in sorted order.
func (p *Pool) Items() []string {
	return append([]string(nil), p.items...)
}

// Len is the number of items.
func (p *Pool) Len() int { return len(p.items) }

// Source names where the pool came from (a directory or "embedded").
func (p *Pool) Source() string { return p.source }

// Letters returns the letter universe of the pool.
func (p *Pool) Letters() []string { return round.Letters(p.items) }
