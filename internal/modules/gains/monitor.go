package gains

import (
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// UpstreamMonitor periodically probes each configured stocks service and logs
// reachability transitions. Purely observational: request handling never
// consults it.
type UpstreamMonitor struct {
	upstreams []Upstream
	client    *http.Client
	schedule  string
	cron      *cron.Cron
	log       zerolog.Logger

	mu sync.Mutex
	up map[string]bool
}

// NewUpstreamMonitor creates a new upstream monitor. schedule is a cron spec
// such as "@every 1m".
func NewUpstreamMonitor(upstreams []Upstream, timeout time.Duration, schedule string, log zerolog.Logger) *UpstreamMonitor {
	return &UpstreamMonitor{
		upstreams: upstreams,
		client:    &http.Client{Timeout: timeout},
		schedule:  schedule,
		log:       log.With().Str("component", "upstream-monitor").Logger(),
		up:        make(map[string]bool),
	}
}

// Start begins the periodic probe
func (m *UpstreamMonitor) Start() error {
	m.cron = cron.New()
	if _, err := m.cron.AddFunc(m.schedule, m.probe); err != nil {
		return err
	}
	m.cron.Start()
	m.log.Info().Str("schedule", m.schedule).Int("upstreams", len(m.upstreams)).Msg("Upstream monitor started")
	return nil
}

// Stop halts the periodic probe
func (m *UpstreamMonitor) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
}

// probe checks every upstream once and logs state changes
func (m *UpstreamMonitor) probe() {
	for _, upstream := range m.upstreams {
		reachable := m.check(upstream.BaseURL)

		m.mu.Lock()
		previous, known := m.up[upstream.Tag]
		m.up[upstream.Tag] = reachable
		m.mu.Unlock()

		if known && previous == reachable {
			continue
		}
		event := m.log.Info()
		if !reachable {
			event = m.log.Warn()
		}
		event.Str("tag", upstream.Tag).Str("base_url", upstream.BaseURL).Bool("reachable", reachable).Msg("Upstream reachability changed")
	}
}

func (m *UpstreamMonitor) check(baseURL string) bool {
	resp, err := m.client.Get(baseURL + "/stocks")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
