package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// handleSystemStatus reports process and host statistics.
// GET /api/system/status
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := s.getSystemStats()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":        s.service,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"cpu_percent":    cpuPercent,
		"memory_percent": memPercent,
		"goroutines":     runtime.NumGoroutine(),
	})
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a short interval (100ms) so the API call stays responsive.
func (s *Server) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
