package tracking

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jkimani/device_tracking_system/internal/geo"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleCollector struct {
	mu      sync.Mutex
	samples []models.Location
	ch      chan models.Location
}

func newSampleCollector() *sampleCollector {
	return &sampleCollector{ch: make(chan models.Location, 64)}
}

func (c *sampleCollector) submit(_ context.Context, _ string, sample models.Location) {
	c.mu.Lock()
	c.samples = append(c.samples, sample)
	c.mu.Unlock()
	c.ch <- sample
}

func (c *sampleCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

func newTestSimulator(collector *sampleCollector) *Simulator {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewSimulator(20*time.Millisecond, 100, collector.submit, logger)
}

func TestSimulator_ProducesSamplesWithinEnvelope(t *testing.T) {
	collector := newSampleCollector()
	sim := newTestSimulator(collector)
	defer sim.Stop()

	start := models.Coordinate{Latitude: -1.2921, Longitude: 36.8219}
	sim.Enable("E1", start)

	var prev = start
	for i := 0; i < 3; i++ {
		select {
		case sample := <-collector.ch:
			assert.Equal(t, models.SourceGPS, sample.Source)
			assert.False(t, sample.Timestamp.IsZero())

			// Смещение за тик в пределах огибающей (диагональ ~142 м)
			d := geo.DistanceMeters(prev, sample.Coordinate)
			assert.Less(t, d, 150.0)
			prev = sample.Coordinate
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for simulated sample")
		}
	}
}

func TestSimulator_DisableStopsBeforeNextTick(t *testing.T) {
	collector := newSampleCollector()
	sim := newTestSimulator(collector)
	defer sim.Stop()

	sim.Enable("E1", models.Coordinate{Latitude: -1.2921, Longitude: 36.8219})

	select {
	case <-collector.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for simulated sample")
	}

	sim.Disable("E1")

	// Дренируем уже отправленное и убеждаемся, что новых выборок нет
	time.Sleep(100 * time.Millisecond)
	settled := collector.count()
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, settled, collector.count())
}

func TestSimulator_DisableUnknownEntityIsNoop(t *testing.T) {
	collector := newSampleCollector()
	sim := newTestSimulator(collector)
	defer sim.Stop()

	sim.Disable("never-enabled")
}

func TestSimulator_StopTerminatesAllLoops(t *testing.T) {
	collector := newSampleCollector()
	sim := newTestSimulator(collector)

	sim.Enable("E1", models.Coordinate{Latitude: -1.2921, Longitude: 36.8219})
	sim.Enable("E2", models.Coordinate{Latitude: -1.3000, Longitude: 36.8000})

	require.Eventually(t, func() bool { return collector.count() >= 2 }, 2*time.Second, 10*time.Millisecond)

	sim.Stop()

	time.Sleep(100 * time.Millisecond)
	settled := collector.count()
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, settled, collector.count())
}
