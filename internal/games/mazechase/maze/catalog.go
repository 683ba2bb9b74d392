package maze

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

//go:embed levels/*.yaml
var builtinLevels embed.FS

// Source supplies level data by number.
type Source interface {
	Level(n int) (Level, error)
}

// Static is an in-memory Source. Level n maps to index n-1; numbers without
// an entry get the first level.
type Static []Level

// Level implements Source.
func (s Static) Level(n int) (Level, error) {
	if len(s) == 0 {
		return Level{}, errors.New("maze: empty static source")
	}
	l := s[0]
	if n >= 1 && n <= len(s) {
		l = s[n-1]
	}
	l.Number = n
	return l, nil
}

// Catalog resolves level numbers to level data. A level is looked up in the
// override directory first, then among the built-in levels. Levels that are
// missing or invalid fall back to level 1.
type Catalog struct {
	dir      string
	maxLevel int
	logger   *log.Logger
}

// NewCatalog creates a catalog. dir may be empty to use built-in levels only.
func NewCatalog(dir string, maxLevel int) *Catalog {
	if maxLevel < 1 {
		maxLevel = 1
	}
	return &Catalog{dir: dir, maxLevel: maxLevel}
}

// SetLogger attaches a logger for fallback diagnostics.
func (c *Catalog) SetLogger(l *log.Logger) {
	c.logger = l
}

// MaxLevel returns the highest level number the catalog serves.
func (c *Catalog) MaxLevel() int {
	return c.maxLevel
}

// Level returns data for level n, clamped to [1, MaxLevel]. The returned
// level carries the requested number even when the layout came from level 1.
// An error means not even level 1 could be loaded.
func (c *Catalog) Level(n int) (Level, error) {
	n = max(1, min(n, c.maxLevel))

	l, err := c.Load(n)
	if err != nil && n != 1 {
		if !errors.Is(err, fs.ErrNotExist) {
			c.warn("level invalid, using level 1", "level", n, "err", err)
		}
		l, err = c.Load(1)
	}
	if err != nil {
		c.warn("level 1 unavailable, using built-in", "err", err)
		l, err = loadBuiltin(1)
	}
	if err != nil {
		return Level{}, fmt.Errorf("maze: load level %d: %w", n, err)
	}
	l.Number = n
	return l, nil
}

// Load returns level n without any fallback.
func (c *Catalog) Load(n int) (Level, error) {
	if c.dir != "" {
		l, err := LoadFile(filepath.Join(c.dir, fileName(n)))
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return Level{}, err
		}
	}
	return loadBuiltin(n)
}

// Available lists the level numbers that have their own layout.
func (c *Catalog) Available() []int {
	var nums []int
	for n := 1; n <= c.maxLevel; n++ {
		if _, err := c.Load(n); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

// LoadFile loads a single level file.
func LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	l, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	l.FilePath = path
	return l, nil
}

func loadBuiltin(n int) (Level, error) {
	name := "levels/" + fileName(n)
	data, err := builtinLevels.ReadFile(name)
	if err != nil {
		return Level{}, fmt.Errorf("built-in %s: %w", name, err)
	}
	l, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("built-in %s: %w", name, err)
	}
	l.FilePath = name
	return l, nil
}

func fileName(n int) string {
	return fmt.Sprintf("level%d.yaml", n)
}

func (c *Catalog) warn(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, keyvals...)
	}
}
