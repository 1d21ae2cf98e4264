package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePass(t *testing.T) {
	m := New()
	require.NoError(t, m.Register(prometheus.NewRegistry()))

	m.ObservePass(DirectionWrite, 3, time.Millisecond, nil)
	m.ObservePass(DirectionWrite, 2, time.Millisecond, errors.New("boom"))
	m.CountPointer(DirectionRead, PointerLink)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Passes.WithLabelValues(DirectionWrite, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Passes.WithLabelValues(DirectionWrite, "error")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Nodes.WithLabelValues(DirectionWrite)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Pointers.WithLabelValues(DirectionRead, PointerLink)))
}

func TestRegisterTwiceFails(t *testing.T) {
	r := prometheus.NewRegistry()
	m := New()

	require.NoError(t, m.Register(r))
	assert.Error(t, m.Register(r))
}

func TestNilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObservePass(DirectionRead, 1, time.Second, nil)
		m.CountPointer(DirectionRead, PointerNil)
	})
}
