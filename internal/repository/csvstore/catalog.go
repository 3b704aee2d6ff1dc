package csvstore

import (
	"context"
	"fmt"
	"io"
	"sync"

	"liftlog/internal/models"
)

// Catalog каталог упражнений в одном CSV файле.
// Все изменения идут под общей блокировкой и сразу сохраняются на диск.
type Catalog struct {
	path string

	mu      sync.RWMutex
	entries []models.CatalogEntry
	known   map[string]struct{}
}

// OpenCatalog загружает каталог из файла; отсутствующий файл даёт пустой каталог
func OpenCatalog(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload перечитывает каталог с диска
func (c *Catalog) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.read()
	if err != nil {
		return err
	}
	c.set(entries)
	return nil
}

// Len количество упражнений в каталоге
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Groups группы мышц в порядке появления в каталоге
func (c *Catalog) Groups(context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	var groups []string
	for _, e := range c.entries {
		if _, ok := seen[e.Group]; ok {
			continue
		}
		seen[e.Group] = struct{}{}
		groups = append(groups, e.Group)
	}
	return groups, nil
}

// Exercises упражнения группы в порядке добавления
func (c *Catalog) Exercises(_ context.Context, group string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	for _, e := range c.entries {
		if e.Group == group {
			names = append(names, e.Exercise)
		}
	}
	return names, nil
}

// AddIfAbsent добавляет упражнение, если его нет ни в одной группе
func (c *Catalog) AddIfAbsent(_ context.Context, group, exercise string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.known[exercise]; ok {
		return false, nil
	}

	next := make([]models.CatalogEntry, len(c.entries), len(c.entries)+1)
	copy(next, c.entries)
	next = append(next, models.CatalogEntry{Group: group, Exercise: exercise})
	if err := c.write(next); err != nil {
		return false, err
	}
	c.set(next)
	return true, nil
}

// DropLast удаляет последнее добавленное упражнение
func (c *Catalog) DropLast(context.Context) (models.CatalogEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) == 0 {
		return models.CatalogEntry{}, false, nil
	}
	last := c.entries[len(c.entries)-1]
	next := c.entries[:len(c.entries)-1:len(c.entries)-1]
	if err := c.write(next); err != nil {
		return models.CatalogEntry{}, false, err
	}
	c.set(next)
	return last, true, nil
}

// set заменяет содержимое; вызывать под c.mu
func (c *Catalog) set(entries []models.CatalogEntry) {
	c.entries = entries
	c.known = make(map[string]struct{}, len(entries))
	for _, e := range entries {
		c.known[e.Exercise] = struct{}{}
	}
}

func (c *Catalog) read() ([]models.CatalogEntry, error) {
	f, ok, err := openIfExists(c.path)
	if err != nil {
		return nil, fmt.Errorf("открытие каталога %s: %w", c.path, err)
	}
	if !ok {
		return nil, nil
	}
	defer f.Close()

	entries, err := ReadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("чтение каталога %s: %w", c.path, err)
	}
	return entries, nil
}

func (c *Catalog) write(entries []models.CatalogEntry) error {
	err := writeFileAtomic(c.path, func(w io.Writer) error {
		return WriteCatalog(w, entries)
	})
	if err != nil {
		return fmt.Errorf("сохранение каталога: %w", err)
	}
	return nil
}
