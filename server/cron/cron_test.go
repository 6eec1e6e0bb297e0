package cron

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

func TestNewCronScheduler(t *testing.T) {
	assert.Equal(t, "Asia/Kolkata", NewCronScheduler("Asia/Kolkata").Location().String())
	assert.Equal(t, time.UTC, NewCronScheduler("Not/AZone").Location())
	assert.Equal(t, time.UTC, NewCronScheduler("").Location())
}
