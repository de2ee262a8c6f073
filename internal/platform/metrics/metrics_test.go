// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/temple/internal/platform/metrics"
)

/*
TestHandler_ExposesBulkCounters verifies that observed rows appear on /metrics.
*/
func TestHandler_ExposesBulkCounters(t *testing.T) {
	m := metrics.New()
	registry := metrics.NewRegistry(m)

	m.ObserveBulk(9, 1, 250*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/v1/deity/bulk-upload", http.StatusCreated, time.Second)

	recorder := httptest.NewRecorder()
	metrics.Handler(registry).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := recorder.Body.String()
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, body, `temple_bulk_import_rows_total{outcome="success"} 9`)
	assert.Contains(t, body, `temple_bulk_import_rows_total{outcome="failure"} 1`)
	assert.Contains(t, body, `route="/api/v1/deity/bulk-upload"`)
}
