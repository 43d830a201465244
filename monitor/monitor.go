package monitor

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// RegisterMonitorPage serves a small status page plus a JSON endpoint with
// runtime figures. No authentication: it exposes nothing sensitive.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor/stats", func(c *gin.Context) {
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		c.JSON(200, gin.H{
			"uptime_seconds": int(time.Since(startedAt).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"heap_alloc_mb":  float64(mem.HeapAlloc) / (1024 * 1024),
			"num_gc":         mem.NumGC,
			"go_version":     runtime.Version(),
		})
	})

	router.GET("/monitor", func(c *gin.Context) {
		c.Data(200, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>IMS Server Monitor</title>
  <style>
    body { background: #0f0f0f; color: #e0e0e0; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; padding: 20px; }
    .container { max-width: 720px; margin: 0 auto; }
    h1 { font-size: 1.8rem; margin-bottom: 1.5rem; }
    .card { background: #1a1a2e; border-radius: 8px; padding: 16px 20px; margin-bottom: 12px; }
    .label { color: #888; font-size: 0.85rem; }
    .value { font-size: 1.4rem; font-weight: 600; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Department IMS &mdash; Server Monitor</h1>
    <div class="card"><div class="label">Uptime</div><div class="value" id="uptime">-</div></div>
    <div class="card"><div class="label">Goroutines</div><div class="value" id="goroutines">-</div></div>
    <div class="card"><div class="label">Heap (MB)</div><div class="value" id="heap">-</div></div>
  </div>
  <script>
    async function refresh() {
      const res = await fetch('/monitor/stats');
      const data = await res.json();
      document.getElementById('uptime').textContent = data.uptime_seconds + 's';
      document.getElementById('goroutines').textContent = data.goroutines;
      document.getElementById('heap').textContent = data.heap_alloc_mb.toFixed(1);
    }
    refresh();
    setInterval(refresh, 5000);
  </script>
</body>
</html>`))
	})
}
