// Package metrics exposes scene and frame statistics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"maze3d/internal/world"
)

// Metrics groups every collector the game updates.
type Metrics struct {
	VisibleChunks    prometheus.Gauge
	RenderedVertices prometheus.Gauge
	FPS              prometheus.Gauge
	WallBoxes        prometheus.Gauge
	WallCells        prometheus.Gauge
	Collisions       prometheus.Counter
	MazesGenerated   prometheus.Counter
	FrameDuration    prometheus.Histogram
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer to
// serve them from promhttp.Handler.
func New(reg prometheus.Registerer, version string) *Metrics {
	f := promauto.With(reg)

	info := f.NewGauge(prometheus.GaugeOpts{
		Name:        "maze3d_info",
		Help:        "Maze3d information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
	// set the information gauge to 1, useful for SUM query
	info.Set(1)

	return &Metrics{
		VisibleChunks: f.NewGauge(prometheus.GaugeOpts{
			Name: "maze3d_visible_chunks",
			Help: "Number of chunks inside the view frustum.",
		}),
		RenderedVertices: f.NewGauge(prometheus.GaugeOpts{
			Name: "maze3d_rendered_vertices",
			Help: "Number of vertices drawn in the last frame.",
		}),
		FPS: f.NewGauge(prometheus.GaugeOpts{
			Name: "maze3d_fps",
			Help: "Average frames per second.",
		}),
		WallBoxes: f.NewGauge(prometheus.GaugeOpts{
			Name: "maze3d_wall_boxes",
			Help: "Number of merged wall boxes in the current maze.",
		}),
		WallCells: f.NewGauge(prometheus.GaugeOpts{
			Name: "maze3d_wall_cells",
			Help: "Number of wall cells in the current maze.",
		}),
		Collisions: f.NewCounter(prometheus.CounterOpts{
			Name: "maze3d_collisions_total",
			Help: "Number of collision responses.",
		}),
		MazesGenerated: f.NewCounter(prometheus.CounterOpts{
			Name: "maze3d_mazes_generated_total",
			Help: "Number of generated mazes.",
		}),
		FrameDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "maze3d_frame_seconds",
			Help:    "Time spent updating and rendering a frame.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 8),
		}),
	}
}

// ObserveScene records the shape of a freshly generated maze.
func (m *Metrics) ObserveScene(st world.Stats) {
	m.MazesGenerated.Inc()
	m.WallBoxes.Set(float64(st.WallBoxes))
	m.WallCells.Set(float64(st.WallCells))
}

// ObserveFrame records the outcome of one frame.
func (m *Metrics) ObserveFrame(d time.Duration, visibleChunks, vertices, collisions int, fps float64) {
	m.FrameDuration.Observe(d.Seconds())
	m.VisibleChunks.Set(float64(visibleChunks))
	m.RenderedVertices.Set(float64(vertices))
	m.Collisions.Add(float64(collisions))
	m.FPS.Set(fps)
}
