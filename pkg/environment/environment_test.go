package environment

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type countingHub struct{ reloads int }

func (h *countingHub) BroadcastReload() { h.reloads++ }

func TestBrowserReload(t *testing.T) {
	logger, hook := test.NewNullLogger()
	hub := &countingHub{}

	var r Resetter = NewBrowserReload(hub, logger)
	r.Reload()

	assert.Equal(t, 1, hub.reloads)
	if assert.NotNil(t, hook.LastEntry()) {
		assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	}
}
