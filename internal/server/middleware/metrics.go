package middleware

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
)

// DurationBuckets границы гистограммы длительности запросов, от 1ms до ~3s
var DurationBuckets = metrics.ExponentialBuckets(1e-3, 5, 6)

type requestMetrics struct {
	requests *metrics.Counter
	duration *metrics.PrometheusHistogram
}

// Metrics считает запросы и их длительность по операции и статусу ответа.
// Метрики создаются в set при первом появлении пары операция/статус.
func Metrics(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	var (
		mu   sync.Mutex
		refs sync.Map
	)

	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		status := ctx.Status()
		key := op.OperationID + " " + strconv.Itoa(status)

		val, ok := refs.Load(key)
		if !ok {
			mu.Lock()
			val, ok = refs.Load(key)
			if !ok {
				labels := Labels("method", op.Method, "path", op.Path, "status", strconv.Itoa(status))
				val = requestMetrics{
					requests: set.NewCounter("http_requests_total" + labels),
					duration: set.NewPrometheusHistogramExt("http_request_duration_seconds"+labels, DurationBuckets),
				}
				refs.Store(key, val)
			}
			mu.Unlock()
		}

		m := val.(requestMetrics)
		m.requests.Inc()
		m.duration.UpdateDuration(start)
	}
}

// Labels собирает набор меток Prometheus из пар имя, значение
func Labels(pairs ...string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(pairs[i])
		b.WriteString(`="`)
		b.WriteString(strings.ReplaceAll(pairs[i+1], `"`, `\"`))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}
