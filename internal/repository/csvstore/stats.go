package csvstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"liftlog/internal/models"
)

// Stats журналы подходов: по одному CSV файлу на чат
type Stats struct {
	dir string

	mu    sync.Mutex
	locks map[int64]*chatLock
}

// chatLock блокировка журнала; запись в locks живёт, пока refs > 0
type chatLock struct {
	mu   sync.Mutex
	refs int
}

// NewStats создаёт хранилище журналов в папке dir
func NewStats(dir string) (*Stats, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("создание папки журналов %s: %w", dir, err)
	}
	return &Stats{dir: dir, locks: make(map[int64]*chatLock)}, nil
}

// Path путь к журналу чата
func (s *Stats) Path(chatID int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(chatID, 10)+"_stats.csv")
}

// withChat выполняет fn под эксклюзивной блокировкой журнала чата
func (s *Stats) withChat(chatID int64, fn func() error) error {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &chatLock{}
		s.locks[chatID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, chatID)
		}
		s.mu.Unlock()
	}()
	return fn()
}

// lockedChats количество чатов, чьи блокировки сейчас заняты или ожидаются
func (s *Stats) lockedChats() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

// Ensure читает журнал, чтобы убедиться что он доступен
func (s *Stats) Ensure(ctx context.Context, chatID int64) error {
	_, err := s.Load(ctx, chatID)
	return err
}

// Load возвращает журнал чата; отсутствующий журнал пустой
func (s *Stats) Load(_ context.Context, chatID int64) ([]models.SetRecord, error) {
	var records []models.SetRecord
	err := s.withChat(chatID, func() error {
		var err error
		records, err = s.read(chatID)
		return err
	})
	return records, err
}

// Append дописывает подходы в конец журнала и перезаписывает файл целиком
func (s *Stats) Append(_ context.Context, chatID int64, records ...models.SetRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.withChat(chatID, func() error {
		existing, err := s.read(chatID)
		if err != nil {
			return err
		}
		return s.write(chatID, append(existing, records...))
	})
}

// DropLast удаляет последний подход; на пустом журнале ничего не делает
func (s *Stats) DropLast(_ context.Context, chatID int64) (bool, error) {
	dropped := false
	err := s.withChat(chatID, func() error {
		existing, err := s.read(chatID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			return nil
		}
		if err := s.write(chatID, existing[:len(existing)-1]); err != nil {
			return err
		}
		dropped = true
		return nil
	})
	return dropped, err
}

func (s *Stats) read(chatID int64) ([]models.SetRecord, error) {
	f, ok, err := openIfExists(s.Path(chatID))
	if err != nil {
		return nil, fmt.Errorf("открытие журнала чата %d: %w", chatID, err)
	}
	if !ok {
		return nil, nil
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("чтение журнала чата %d: %w", chatID, err)
	}
	return records, nil
}

func (s *Stats) write(chatID int64, records []models.SetRecord) error {
	err := writeFileAtomic(s.Path(chatID), func(w io.Writer) error {
		return WriteRecords(w, records)
	})
	if err != nil {
		return fmt.Errorf("запись журнала чата %d: %w", chatID, err)
	}
	return nil
}
