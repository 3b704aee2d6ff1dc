package session

import (
	"strconv"
	"time"

	"liftlog/internal/models"

	"github.com/patrickmn/go-cache"
	"github.com/robfig/cron"
	"github.com/rs/zerolog/log"
)

// Store незавершённые записи подходов по чатам.
// Сессия, которую не трогали дольше ttl, считается брошенной и удаляется.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore создаёт хранилище сессий; ttl <= 0 хранит сессии бессрочно
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	// очистку запускает Sweep по расписанию, свой janitor не нужен
	return &Store{cache: cache.New(ttl, 0), ttl: ttl}
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// Get возвращает копию сессии чата; без сессии отдаёт пустую в StepIdle
func (s *Store) Get(chatID int64) models.Session {
	if v, ok := s.cache.Get(key(chatID)); ok {
		return v.(models.Session)
	}
	return models.Session{ChatID: chatID, Step: models.StepIdle}
}

// Save сохраняет сессию и продлевает её срок
func (s *Store) Save(sess models.Session) {
	s.cache.Set(key(sess.ChatID), sess, cache.DefaultExpiration)
}

// Reset забывает сессию чата
func (s *Store) Reset(chatID int64) {
	s.cache.Delete(key(chatID))
}

// Len количество хранимых сессий, включая просроченные до очистки
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

// Sweep удаляет просроченные сессии и возвращает их примерное число
func (s *Store) Sweep() int {
	before := s.cache.ItemCount()
	s.cache.DeleteExpired()
	if n := before - s.cache.ItemCount(); n > 0 {
		return n
	}
	return 0
}

// StartSweeper запускает очистку по cron расписанию, например "@every 10m"
func (s *Store) StartSweeper(spec string) (*cron.Cron, error) {
	c := cron.New()
	err := c.AddFunc(spec, func() {
		if n := s.Sweep(); n > 0 {
			log.Info().Int("sessions", n).Msg("брошенные сессии удалены")
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
