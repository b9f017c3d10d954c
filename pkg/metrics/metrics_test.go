package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue suma el valor del contador name cuyas etiquetas incluyen labels.
func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			match := true
			for _, lp := range metric.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					match = false
				}
			}
			if match {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestStockMoved(t *testing.T) {
	m := New("test")
	m.StockMoved("add", "purchase", 5)
	m.StockMoved("add", "purchase", 3)
	m.StockMoved("remove", "sale", 2)
	m.StockRejected("remove")

	assert.Equal(t, 2.0, counterValue(t, m, "test_stock_movements_total", map[string]string{"type": "add", "reason": "purchase"}))
	assert.Equal(t, 8.0, counterValue(t, m, "test_stock_units_total", map[string]string{"type": "add"}))
	assert.Equal(t, 2.0, counterValue(t, m, "test_stock_units_total", map[string]string{"type": "remove"}))
	assert.Equal(t, 1.0, counterValue(t, m, "test_stock_rejections_total", map[string]string{"type": "remove"}))
}

func TestObserveHTTP(t *testing.T) {
	m := New("test")
	m.ObserveHTTP("GET", "/api/stock/history/:productId", 200, 15*time.Millisecond)
	m.ObserveHTTP("GET", "/api/stock/history/:productId", 404, time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, m, "test_http_requests_total", map[string]string{"status": "200"}))
	assert.Equal(t, 2.0, counterValue(t, m, "test_http_requests_total", map[string]string{"route": "/api/stock/history/:productId"}))
}
