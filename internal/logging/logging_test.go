// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		debug   int
		want    logrus.Level
	}{
		{"default", false, 0, logrus.WarnLevel},
		{"verbose", true, 0, logrus.InfoLevel},
		{"debug", false, 1, logrus.DebugLevel},
		{"debug wins over verbose", true, 3, logrus.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.verbose, tt.debug))
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, 0, true)

	log.Debug("hidden")
	log.Info("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "run_id=")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNew_DistinctRunIDs(t *testing.T) {
	a := New(&bytes.Buffer{}, false, 0, true)
	b := New(&bytes.Buffer{}, false, 0, true)
	assert.NotEqual(t, a.Data["run_id"], b.Data["run_id"])
}
