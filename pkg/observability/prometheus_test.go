package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusPipeline(t *testing.T) {
	ctx := context.Background()
	h := NewPrometheusHooks()

	h.OnLoadComplete(ctx, "sales.csv", 12, 10*time.Millisecond, nil)
	h.OnLayoutComplete(ctx, "line", 80, time.Millisecond, nil)
	h.OnLayoutComplete(ctx, "line", 0, time.Millisecond, errors.New("boom"))
	h.OnLayoutComplete(ctx, "bar", 40, time.Millisecond, nil)
	h.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"loads ok", testutil.ToFloat64(h.loads.WithLabelValues("ok")), 1},
		{"line ok", testutil.ToFloat64(h.layouts.WithLabelValues("line", "ok")), 1},
		{"line error", testutil.ToFloat64(h.layouts.WithLabelValues("line", "error")), 1},
		{"bar ok", testutil.ToFloat64(h.layouts.WithLabelValues("bar", "ok")), 1},
		{"renders", testutil.ToFloat64(h.renders.WithLabelValues("svg,png", "ok")), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestPrometheusCache(t *testing.T) {
	ctx := context.Background()
	h := NewPrometheusHooks()

	h.OnCacheHit(ctx, "artifact")
	h.OnCacheMiss(ctx, "artifact")
	h.OnCacheMiss(ctx, "artifact")
	h.OnCacheSet(ctx, "artifact", 100)
	h.OnCacheSet(ctx, "dataset", 28)

	if got := testutil.ToFloat64(h.cacheOps.WithLabelValues("artifact", "miss")); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.cacheOps.WithLabelValues("artifact", "hit")); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.cacheBytes); got != 128 {
		t.Errorf("bytes = %v, want 128", got)
	}
}

func TestPrometheusHandler(t *testing.T) {
	ctx := context.Background()
	h := NewPrometheusHooks()
	h.OnResponse(ctx, "POST", "/v1/charts/{kind}", 200, time.Millisecond)
	h.OnError(ctx, "POST", "/v1/charts/{kind}", errors.New("boom"))

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`stackchart_http_requests_total{code="200",method="POST",route="/v1/charts/{kind}"} 1`,
		`stackchart_http_request_errors_total{method="POST",route="/v1/charts/{kind}"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
