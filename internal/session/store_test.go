package session

import (
	"testing"
	"time"

	"liftlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetMissing(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Get(42)
	assert.Equal(t, models.Session{ChatID: 42, Step: models.StepIdle}, sess)
}

func TestStore_SaveIsCopy(t *testing.T) {
	s := NewStore(time.Hour)
	sess := s.Get(42)
	sess.Step = models.StepAwaitGroup
	assert.Equal(t, models.StepIdle, s.Get(42).Step, "без Save сессия не меняется")

	s.Save(sess)
	assert.Equal(t, models.StepAwaitGroup, s.Get(42).Step)

	s.Reset(42)
	assert.Equal(t, models.StepIdle, s.Get(42).Step)
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore(30 * time.Millisecond)
	s.Save(models.Session{ChatID: 1, Step: models.StepAwaitReps})
	s.Save(models.Session{ChatID: 2, Step: models.StepAwaitWeight})
	require.Equal(t, 2, s.Len())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, models.StepIdle, s.Get(1).Step)
	assert.Equal(t, 2, s.Sweep())
	assert.Equal(t, 0, s.Len())
}

func TestStore_NoExpiry(t *testing.T) {
	s := NewStore(0)
	s.Save(models.Session{ChatID: 1, Step: models.StepAwaitReps})
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, s.Sweep())
	assert.Equal(t, models.StepAwaitReps, s.Get(1).Step)
}

func TestStore_StartSweeper(t *testing.T) {
	s := NewStore(time.Hour)

	_, err := s.StartSweeper("not a spec")
	assert.Error(t, err)

	c, err := s.StartSweeper("@every 1h")
	require.NoError(t, err)
	c.Stop()
}
