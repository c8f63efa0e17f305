package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureLogger(t *testing.T) {
	logger, buf := CaptureLogger()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Debug("compiled", "n", i)
		}()
	}
	wg.Wait()

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=compiled")
	assert.NotContains(t, out, "time=")
}

func TestNewTestLogger(t *testing.T) {
	logger := NewTestLogger(t)
	assert.True(t, logger.Enabled(t.Context(), -4))
	logger.Info("visible with -v")
}
