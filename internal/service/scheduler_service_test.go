package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySpec(t *testing.T) {
	spec, err := dailySpec("07:45")
	require.NoError(t, err)
	assert.Equal(t, "0 45 7 * * *", spec)

	spec, err = dailySpec("00:00")
	require.NoError(t, err)
	assert.Equal(t, "0 0 0 * * *", spec)

	_, err = dailySpec("7pm")
	assert.Error(t, err)
}

func TestScheduler_Register(t *testing.T) {
	s := NewScheduler(time.UTC)

	_, err := s.Every(500*time.Millisecond, func() {})
	assert.Error(t, err)

	id, err := s.Every(time.Minute, func() {})
	require.NoError(t, err)
	assert.NotZero(t, id)

	daily, err := s.Daily("06:30", func() {})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next(daily)
	assert.Equal(t, 6, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, next.After(time.Now()))
}
