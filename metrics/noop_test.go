// Copyright (c) 2026 The Hearth developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	server := httptest.NewServer(HTTPHandler())

	t.Cleanup(func() {
		server.Close()
	})

	count1 := Counter("count1")
	count1.Add(1)

	hist := Histogram("hist1", nil)
	countVec := CounterVec("countVec1", []string{"kind"})
	gaugeVec := GaugeVec("gaugeVec1", []string{"kind"})
	for i := 0; i < 10; i++ {
		hist.Observe(int64(i))
		countVec.AddWithLabel(int64(i), map[string]string{"thisIsNonsense": "butDoesntBreak"})
		gaugeVec.AddWithLabel(int64(i), map[string]string{"thisIsNonsense": "butDoesntBreak"})
	}

	Gauge("gauge1").Set(5)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	// noop backend exposes nothing
	require.Equal(t, 404, resp.StatusCode)
}
