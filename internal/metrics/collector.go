package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/grid"
)

// Collector counts engine activity on its own registry. It is an
// anim.Observer and can be hooked to the run-lock and token callbacks.
type Collector struct {
	registry *prometheus.Registry
	commits  *prometheus.CounterVec
	tokens   *prometheus.CounterVec
	scripts  *prometheus.CounterVec
	frames   prometheus.Counter
	busy     prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridperm_commits_total",
			Help: "Swap batches committed to the grid.",
		}, []string{"axis"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridperm_tokens_total",
			Help: "Script tokens started.",
		}, []string{"token"}),
		scripts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridperm_scripts_total",
			Help: "Scripts by outcome.",
		}, []string{"result"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridperm_animation_frames_total",
			Help: "Animation steps taken.",
		}),
		busy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridperm_busy",
			Help: "1 while a script holds the run-lock.",
		}),
	}
	c.registry.MustRegister(c.commits, c.tokens, c.scripts, c.frames, c.busy)
	return c
}

func (c *Collector) OnStep(s anim.Sample) { c.frames.Inc() }

func (c *Collector) OnCommit(axis grid.Axis, pairs []grid.Coord) {
	c.commits.WithLabelValues(axis.String()).Inc()
}

func (c *Collector) TokenStarted(token string) { c.tokens.WithLabelValues(token).Inc() }

// ScriptFinished records an outcome such as ok, invalid, busy or failed.
func (c *Collector) ScriptFinished(result string) { c.scripts.WithLabelValues(result).Inc() }

func (c *Collector) SetBusy(busy bool) {
	if busy {
		c.busy.Set(1)
		return
	}
	c.busy.Set(0)
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
