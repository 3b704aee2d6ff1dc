package csvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch перечитывает каталог, когда файл меняют вручную, пока ctx не отменён.
// Следим за папкой: файл заменяется через rename и теряет наблюдатель.
func (c *Catalog) Watch(ctx context.Context) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("создание папки каталога %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("создание наблюдателя: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("наблюдение за %s: %w", dir, err)
	}

	target := filepath.Clean(c.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := c.Reload(); err != nil {
					log.Warn().Err(err).Str("path", c.path).Msg("каталог не перечитан")
					continue
				}
				log.Debug().Str("path", c.path).Int("entries", c.Len()).Msg("каталог перечитан")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("ошибка наблюдателя каталога")
			}
		}
	}()

	log.Info().Str("path", c.path).Msg("наблюдение за каталогом запущено")
	return nil
}
