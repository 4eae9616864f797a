package services

import (
	"aurora/internal/models"
	"aurora/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alertFixture struct {
	service *AlertService
	log     *testutil.MockAlertLog
	clock   *fakeClock
	metrics *testutil.MockMetrics
	logger  *testutil.MockLogger
}

func newAlertFixture() *alertFixture {
	clock := newFakeClock()
	log := &testutil.MockAlertLog{}
	metrics := testutil.NewMockMetrics()
	logger := &testutil.MockLogger{}
	service := NewAlertService(log, newRateLimiter(5*time.Second, 0, clock.Now), logger, metrics).(*AlertService)
	service.now = clock.Now
	return &alertFixture{service: service, log: log, clock: clock, metrics: metrics, logger: logger}
}

func ptr(v float64) *float64 { return &v }

func TestAlertService_Submit(t *testing.T) {
	f := newAlertFixture()

	alert, err := f.service.Submit(&models.AlertInput{Name: "Ana", Situation: "Perseguição", Message: "Estou no ponto de ônibus"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, alert.Id)
	assert.Equal(t, "Ana", alert.Name)
	assert.Equal(t, f.clock.Now(), alert.Timestamp)
	assert.False(t, alert.ConsentLocation)

	last, err := f.service.Last()
	require.NoError(t, err)
	assert.Equal(t, "Ana", last.Name)
	assert.Equal(t, 1, f.service.LastId())
	assert.Equal(t, 1, f.metrics.Alerts)
	assert.True(t, f.logger.Contains("warn", "ALERT #1"))
}

func TestAlertService_SubmitEmptyBodyUsesDefaults(t *testing.T) {
	f := newAlertFixture()

	alert, err := f.service.Submit(nil, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAlertName, alert.Name)
	assert.Equal(t, models.DefaultAlertSituation, alert.Situation)
	assert.Equal(t, "", alert.Message)
}

func TestAlertService_SubmitWithLocation(t *testing.T) {
	f := newAlertFixture()

	alert, err := f.service.Submit(&models.AlertInput{
		Location: &models.LocationInput{Lat: ptr(-23.5), Lon: ptr(-46.6), AccuracyM: ptr(20)},
	}, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, alert.ConsentLocation)
	require.NotNil(t, alert.Location)
	assert.Equal(t, -23.5, alert.Location.Lat)
}

func TestAlertService_Cooldown(t *testing.T) {
	f := newAlertFixture()

	_, err := f.service.Submit(&models.AlertInput{Name: "Ana"}, "10.0.0.1")
	require.NoError(t, err)

	_, err = f.service.Submit(&models.AlertInput{Name: "Ana"}, "10.0.0.1")
	assert.ErrorIs(t, err, models.ErrRateLimited)
	assert.Equal(t, 1, f.metrics.RateLimited)

	_, err = f.service.Submit(&models.AlertInput{Name: "Bia"}, "10.0.0.2")
	assert.NoError(t, err, "other clients are unaffected")

	f.clock.Advance(5 * time.Second)
	alert, err := f.service.Submit(&models.AlertInput{Name: "Ana"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 3, alert.Id)
	assert.Len(t, f.log.Alerts, 3)
}

func TestAlertService_InvalidLocationDoesNotStartCooldown(t *testing.T) {
	f := newAlertFixture()

	_, err := f.service.Submit(&models.AlertInput{
		Location: &models.LocationInput{Lat: ptr(123), Lon: ptr(0)},
	}, "10.0.0.1")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Empty(t, f.log.Alerts)

	_, err = f.service.Submit(&models.AlertInput{Name: "Ana"}, "10.0.0.1")
	assert.NoError(t, err)
}

func TestAlertService_AppendError(t *testing.T) {
	f := newAlertFixture()
	f.log.Err = testutil.ErrMockIO

	_, err := f.service.Submit(&models.AlertInput{Name: "Ana"}, "10.0.0.1")
	assert.ErrorIs(t, err, testutil.ErrMockIO)
	assert.Zero(t, f.metrics.Alerts)
}

func TestAlertService_RecentIsClamped(t *testing.T) {
	f := newAlertFixture()
	for i := 0; i < MaxRecentAlerts+10; i++ {
		_, err := f.log.Append(&models.Alert{Name: "Ana"})
		require.NoError(t, err)
	}

	recent, err := f.service.Recent(1000)
	require.NoError(t, err)
	assert.Len(t, recent, MaxRecentAlerts)
	assert.Equal(t, MaxRecentAlerts+10, recent[len(recent)-1].Id)

	recent, err = f.service.Recent(3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
