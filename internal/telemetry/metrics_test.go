package telemetry

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// Registration is checked via Describe() rather than DefaultGatherer.Gather()
// because Gather() only returns series that have been observed at least once;
// *Vec metrics with no label combinations yet used are silently absent from
// Gather output even though they are correctly registered.
func TestMetrics_AllRegistered(t *testing.T) {
	type describer interface {
		Describe(chan<- *prometheus.Desc)
	}

	cases := []struct {
		name string
		c    describer
	}{
		{"http_requests_total", HTTPRequestsTotal},
		{"http_request_duration_seconds", HTTPRequestDuration},
		{"version_uploads_total", VersionUploadsTotal},
		{"model_archive_downloads_total", ModelArchiveDownloadsTotal},
		{"file_downloads_total", FileDownloadsTotal},
		{"visibility_denials_total", VisibilityDenialsTotal},
		{"db_open_connections", DBOpenConnections},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ch := make(chan *prometheus.Desc, 10)
			tc.c.Describe(ch)
			close(ch)
			found := false
			for desc := range ch {
				if strings.Contains(desc.String(), `"`+tc.name+`"`) {
					found = true
				}
			}
			if !found {
				t.Errorf("metric %s not described under its expected name", tc.name)
			}
		})
	}
}

func TestVersionUploadsTotal_Increments(t *testing.T) {
	before := testCounterValue(t, "version_uploads_total")
	VersionUploadsTotal.WithLabelValues("detect").Inc()
	after := testCounterValue(t, "version_uploads_total")
	if after != before+1 {
		t.Errorf("version_uploads_total = %v after increment, want %v", after, before+1)
	}
}

// testCounterValue sums all series of a counter family from the default gatherer.
func testCounterValue(t *testing.T, name string) float64 {
	t.Helper()
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
