package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"remo-dashboard/internal/model"
)

const namespace = "remo"

// Recorder exports vendor API usage and appliance state to Prometheus. It
// satisfies remo.Observer.
type Recorder struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	rateLimit      prometheus.Gauge
	rateRemaining  prometheus.Gauge
	rateReset      prometheus.Gauge
	temperature    *prometheus.GaugeVec
	humidity       *prometheus.GaugeVec
	illuminance    *prometheus.GaugeVec
	power          *prometheus.GaugeVec
	stateChanges   *prometheus.CounterVec
	lastUpdate     prometheus.Gauge
	pollSuccess    prometheus.Gauge
	droppedCommand prometheus.Counter
}

// NewRecorder creates the metrics and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	applianceLabels := []string{"id", "name", "type"}
	deviceLabels := []string{"device_id", "device_name"}

	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of Nature Remo API requests",
		}, []string{"endpoint", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of Nature Remo API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		rateLimit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "rate_limit_limit",
			Help:      "API rate limit maximum",
		}),
		rateRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "rate_limit_remaining",
			Help:      "API rate limit remaining",
		}),
		rateReset: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "rate_limit_reset_timestamp",
			Help:      "API rate limit reset timestamp",
		}),
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "device",
			Name:      "temperature_celsius",
			Help:      "Room temperature reported by the hub (celsius)",
		}, deviceLabels),
		humidity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "device",
			Name:      "humidity_percent",
			Help:      "Room humidity reported by the hub (%)",
		}, deviceLabels),
		illuminance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "device",
			Name:      "illuminance",
			Help:      "Illuminance reported by the hub",
		}, deviceLabels),
		power: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "appliance",
			Name:      "power_state",
			Help:      "Current power state of the appliance (1 = on, 0 = off)",
		}, applianceLabels),
		stateChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "appliance",
			Name:      "state_changes_total",
			Help:      "Total number of observed power state changes",
		}, applianceLabels),
		lastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_update_timestamp",
			Help:      "Timestamp of the last successful poll",
		}),
		pollSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "poll_success",
			Help:      "Last poll success (1=ok, 0=error)",
		}),
		droppedCommand: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "dropped_total",
			Help:      "Events dropped because the publish queue was full",
		}),
	}

	reg.MustRegister(
		r.requests, r.duration,
		r.rateLimit, r.rateRemaining, r.rateReset,
		r.temperature, r.humidity, r.illuminance,
		r.power, r.stateChanges,
		r.lastUpdate, r.pollSuccess, r.droppedCommand,
	)
	return r
}

// ObserveRequest records one vendor request. A zero status means the request
// never got a response.
func (r *Recorder) ObserveRequest(endpoint string, statusCode int, elapsed time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	r.requests.WithLabelValues(endpoint, status).Inc()
	r.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveRateLimit records the vendor's rate limit headers.
func (r *Recorder) ObserveRateLimit(limit, remaining int, reset time.Time) {
	r.rateLimit.Set(float64(limit))
	r.rateRemaining.Set(float64(remaining))
	r.rateReset.Set(float64(reset.Unix()))
}

// ObserveDevices records the newest sensor readings of every hub.
func (r *Recorder) ObserveDevices(devices []model.Device) {
	for _, d := range devices {
		ev := d.NewestEvents
		if ev.Temperature != nil {
			r.temperature.WithLabelValues(d.ID, d.Name).Set(ev.Temperature.Value)
		}
		if ev.Humidity != nil {
			r.humidity.WithLabelValues(d.ID, d.Name).Set(ev.Humidity.Value)
		}
		if ev.Illuminance != nil {
			r.illuminance.WithLabelValues(d.ID, d.Name).Set(ev.Illuminance.Value)
		}
	}
}

// ObservePower records an appliance's power state. changed counts a
// transition from the previously observed state.
func (r *Recorder) ObservePower(a model.Appliance, on, changed bool) {
	labels := []string{a.ID, a.Nickname, string(a.Type)}
	value := 0.0
	if on {
		value = 1
	}
	r.power.WithLabelValues(labels...).Set(value)
	if changed {
		r.stateChanges.WithLabelValues(labels...).Inc()
	}
}

// ObservePoll records the outcome of one poll.
func (r *Recorder) ObservePoll(ok bool, at time.Time) {
	if !ok {
		r.pollSuccess.Set(0)
		return
	}
	r.pollSuccess.Set(1)
	r.lastUpdate.Set(float64(at.Unix()))
}

// DroppedEvent counts an event that could not be queued.
func (r *Recorder) DroppedEvent() {
	r.droppedCommand.Inc()
}
