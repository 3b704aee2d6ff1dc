package liveness

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// TimeLayout формат времени запуска в ответе
const TimeLayout = "02/01/2006 15:04:05"

// Handler отвечает на GET / строкой с временем запуска процесса
func Handler(boot time.Time) http.Handler {
	body := []byte("I'm alive " + boot.Format(TimeLayout))

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write(body)
	})
	return r
}

// Serve запускает HTTP сервер и останавливает его при отмене ctx
func Serve(ctx context.Context, addr string, boot time.Time) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(boot),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("эндпоинт liveness запущен")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
