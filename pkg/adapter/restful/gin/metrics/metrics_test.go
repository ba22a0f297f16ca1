// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-management/pkg/adapter/restful/gin/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New("")
	e := gin.New()
	e.Use(m.Middleware())
	e.GET("/cars/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	for _, path := range []string{"/cars/1", "/cars/2", "/nowhere"} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, m)
	assert.Contains(
		t, body,
		`carweb_http_requests_total{method="GET",route="/cars/:id",status="204"} 2`,
	)
	assert.Contains(
		t, body,
		`carweb_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	)
	assert.Contains(t, body, "carweb_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "carweb_http_inflight_requests 0")
	assert.Contains(t, body, "go_goroutines")
}

func TestNamespace(t *testing.T) {
	m := metrics.New("fleet")
	assert.Contains(t, scrape(t, m), "fleet_http_inflight_requests")
}
