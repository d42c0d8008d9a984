// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(l *ConsoleLogger)
		want    string
	}{
		{"verbose enabled", true, func(l *ConsoleLogger) { l.Verbose("test message: %s", "value") }, "[VERBOSE] test message: value\n"},
		{"verbose disabled", false, func(l *ConsoleLogger) { l.Verbose("test message: %s", "value") }, ""},
		{"info", false, func(l *ConsoleLogger) { l.Info("fetched %d files", 3) }, "fetched 3 files\n"},
		{"warn", false, func(l *ConsoleLogger) { l.Warn("codemeta.json: bad") }, "[WARN] codemeta.json: bad\n"},
		{"error", false, func(l *ConsoleLogger) { l.Error("boom") }, "[ERROR] boom\n"},
		{"percent without args", false, func(l *ConsoleLogger) { l.Info("100%") }, "100%\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewConsoleLogger(&buf, tt.verbose))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, true).With("run 1234")
	l.Warn("missing %s", "CITATION.cff")
	assert.Equal(t, "[WARN] [run 1234] missing CITATION.cff\n", buf.String())
}

func TestConsoleLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, true)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Info("line")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, strings.Count(buf.String(), "line\n"))
}

func TestOrNull(t *testing.T) {
	assert.IsType(t, NullLogger{}, OrNull(nil))
	c := NewConsoleLogger(&bytes.Buffer{}, false)
	assert.Same(t, c, OrNull(c))
}
