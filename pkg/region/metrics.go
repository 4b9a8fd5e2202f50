package region

import "github.com/prometheus/client_golang/prometheus"

// Build outcomes recorded by the block builds counter.
const (
	OutcomeRendered      = "rendered"
	OutcomeEmpty         = "empty"
	OutcomeMissingEntity = "missing_entity"
	OutcomeMissingPlugin = "missing_plugin"
	OutcomeError         = "error"
)

// Metrics holds the collectors the region renderer updates.
type Metrics struct {
	BlockBuilds *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg. A nil reg leaves
// them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		BlockBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nodeblock",
			Subsystem: "region",
			Name:      "block_builds_total",
			Help:      "Total number of block builds during region rendering, by plugin and outcome.",
		}, []string{"plugin", "outcome"}),
	}
	if reg != nil {
		if err := reg.Register(m.BlockBuilds); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(pluginID, outcome string) {
	if m == nil || m.BlockBuilds == nil {
		return
	}
	m.BlockBuilds.WithLabelValues(pluginID, outcome).Inc()
}
