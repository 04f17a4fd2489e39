package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-glide/pkg/telemetry"
)

func openMemory(t *testing.T) *Recorder {
	t.Helper()
	r, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecorder_AppendAndLoad(t *testing.T) {
	r := openMemory(t)

	s, err := r.NewSession("boost run")
	require.NoError(t, err)
	assert.Len(t, s.ID, 36)

	var samples []telemetry.Sample
	for i := 1; i <= 1200; i++ {
		samples = append(samples, telemetry.Sample{
			Tick:     uint64(i),
			Time:     float64(i) * 0.02,
			State:    "boosting",
			Speed:    float64(i) / 100,
			Boost:    100 - float64(i)/20,
			CanBoost: true,
			Position: [3]float64{1, 2, float64(i)},
		})
	}
	require.NoError(t, r.Append(s.ID, samples))

	loaded, err := r.Samples(s.ID)
	require.NoError(t, err)
	require.Len(t, loaded, len(samples))
	assert.Equal(t, samples[0], loaded[0])
	assert.Equal(t, samples[1199], loaded[1199])
}

func TestRecorder_KeepsAppendOrderAcrossReloads(t *testing.T) {
	r := openMemory(t)
	s, err := r.NewSession("reloaded run")
	require.NoError(t, err)

	before := []telemetry.Sample{
		{Tick: 1, Time: 0.02, State: "boosting", Transitions: 1},
		{Tick: 2, Time: 0.04, State: "boosting", Transitions: 1},
		{Tick: 3, Time: 0.06, State: "slow", Transitions: 2},
	}
	// ticks restart after a reload
	after := []telemetry.Sample{
		{Tick: 1, Time: 0.02, State: "normal"},
		{Tick: 2, Time: 0.04, State: "normal"},
	}
	require.NoError(t, r.Append(s.ID, before))
	require.NoError(t, r.Append(s.ID, after))

	loaded, err := r.Samples(s.ID)
	require.NoError(t, err)
	assert.Equal(t, append(append([]telemetry.Sample{}, before...), after...), loaded)
}

func TestRecorder_SessionsAreIsolated(t *testing.T) {
	r := openMemory(t)

	a, err := r.NewSession("a")
	require.NoError(t, err)
	b, err := r.NewSession("b")
	require.NoError(t, err)

	require.NoError(t, r.Append(a.ID, []telemetry.Sample{{Tick: 1, State: "normal"}}))
	require.NoError(t, r.Append(b.ID, []telemetry.Sample{{Tick: 1, State: "slow"}, {Tick: 2, State: "slow"}}))

	got, err := r.Samples(b.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	sessions, err := r.Sessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestRecorder_UnknownSession(t *testing.T) {
	r := openMemory(t)
	err := r.Append("missing", []telemetry.Sample{{Tick: 1}})
	assert.ErrorIs(t, err, ErrUnknownSession)

	assert.NoError(t, r.Append("missing", nil), "empty appends are a no-op")
}

func TestRecorder_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight.db")

	r, err := Open(path)
	require.NoError(t, err)
	s, err := r.NewSession("file")
	require.NoError(t, err)
	require.NoError(t, r.Append(s.ID, []telemetry.Sample{{Tick: 7, State: "normal", Speed: 3}}))
	require.NoError(t, r.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Samples(s.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(7), got[0].Tick)
	assert.Equal(t, 3.0, got[0].Speed)
}
