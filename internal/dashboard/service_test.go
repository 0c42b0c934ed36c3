package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/config"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/events"
)

const tabFixture = `<html><body><table>
<tr><td>PATENTE</td><td>VEHICULO</td><td>FECH/PROM</td><td>PA&Ntilde;OS</td><td>PRECIO</td><td>FAC</td></tr>
<tr><td>AB123CD</td><td>Hilux</td><td>15/03/2025</td><td>2</td><td>$ 1.234,56</td><td>SI</td></tr>
<tr><td>AC456EF</td><td>Corolla</td><td></td><td></td><td>$ 100</td><td>FAC</td></tr>
<tr><td></td><td>sin patente</td><td></td><td></td><td></td><td></td></tr>
</table></body></html>`

func testService(t *testing.T, url string) *Service {
	t.Helper()

	var cfg config.Config
	cfg.App.Port = 38561
	cfg.Cache.TTLSeconds = 300
	cfg.Fetch.RequestsPerSec = 100
	cfg.Fetch.Burst = 10
	cfg.Fetch.TimeoutSeconds = 5
	cfg.Sources = []config.Source{{Name: "Chapa", Kind: config.KindGSheet, URL: url}}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	svc := New(&cfgVal, nil, events.NewHub())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestDashboard_EndToEnd(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(tabFixture))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)

	d, err := svc.Dashboard(context.Background(), false)
	require.NoError(t, err)

	// plateless row dropped at ingestion, the other two survive
	require.Len(t, d.Jobs, 2)
	assert.Equal(t, "AB123CD", d.Jobs[0].Plate)
	assert.Equal(t, "Chapa", d.Jobs[0].SourceGroup)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(d.Summary.ThisMonth))
	assert.True(t, decimal.RequireFromString("100").Equal(d.Summary.Billed))

	// only the SI job is pending work
	require.Len(t, d.Timeline.Bars, 1)
	assert.Equal(t, "AB123CD", d.Timeline.Bars[0].Plate)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), d.Timeline.Today)

	st := svc.Status()
	assert.False(t, st.Running)
	assert.Equal(t, 2, st.LastJobs)
	assert.Empty(t, st.LastError)
}

func TestDashboard_CachesWithinTTL(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(tabFixture))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)

	_, err := svc.Dashboard(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second read must come from the cache")
}

func TestDashboard_ForceBypassesCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(tabFixture))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)

	_, err := svc.Dashboard(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestDashboard_FailingSourceDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)

	d, err := svc.Dashboard(context.Background(), false)
	require.NoError(t, err, "a dead tab must not fail the dashboard")

	assert.Empty(t, d.Jobs)
	require.Len(t, d.Groups, 1)
	assert.Contains(t, d.Groups[0].Err, "503")

	st := svc.Status()
	assert.Contains(t, st.LastError, "Chapa")
}
