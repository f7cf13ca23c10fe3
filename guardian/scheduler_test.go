package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerAcceptsStandardSpecs(t *testing.T) {
	scheduler := NewScheduler(zerolog.Nop())

	assert.NoError(t, scheduler.AddJob("0 * * * *", func() {}))
	assert.NoError(t, scheduler.AddJob("* * * * *", func() {}))
	assert.NoError(t, scheduler.AddJob("*/5 * * * *", func() {}))
}

func TestSchedulerRejectsInvalidSpec(t *testing.T) {
	scheduler := NewScheduler(zerolog.Nop())

	assert.Error(t, scheduler.AddJob("every minute", func() {}))
	assert.Error(t, scheduler.AddJob("* * * *", func() {}))
}
