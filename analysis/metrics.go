package analysis

import "math"

// Metric names one scalar feature of a method
type Metric int

const (
	Duration Metric = iota
	LowFreq
	HighFreq
	Bandwidth
	Centroid
	RMS
	NoiseFloor
	SampleRate
)

var metricNames = [...]string{
	Duration:   "duration_sec",
	LowFreq:    "low_freq_hz",
	HighFreq:   "high_freq_hz",
	Bandwidth:  "bandwidth_hz",
	Centroid:   "centroid_mean_hz",
	RMS:        "rms_mean",
	NoiseFloor: "noise_floor_db",
	SampleRate: "sample_rate",
}

// ComparisonMetrics is the fixed tuple a method must carry in full before it
// can appear in a cross-method comparison
var ComparisonMetrics = []Metric{LowFreq, HighFreq, Bandwidth, Centroid}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return "unknown"
	}
	return metricNames[m]
}

// Metric returns the value of m; ok is false when it is missing or not finite
func (f *Features) Metric(m Metric) (float64, bool) {
	if f == nil {
		return 0, false
	}

	var p *float64
	switch m {
	case Duration:
		p = f.DurationSec
	case LowFreq:
		p = f.LowFreqHz
	case HighFreq:
		p = f.HighFreqHz
	case Bandwidth:
		p = f.BandwidthHz
	case Centroid:
		p = f.CentroidMeanHz
	case RMS:
		p = f.RMSMean
	case NoiseFloor:
		p = f.NoiseFloorDB
	case SampleRate:
		if f.SampleRate == nil {
			return 0, false
		}
		return float64(*f.SampleRate), true
	default:
		return 0, false
	}

	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

// Complete reports whether f carries every metric in required
func (f *Features) Complete(required []Metric) bool {
	for _, m := range required {
		if _, ok := f.Metric(m); !ok {
			return false
		}
	}
	return true
}

// Complete is the all-or-nothing check: every listed method must be present
// and carry every required metric
func Complete(r *Result, methods []Method, required []Metric) bool {
	if len(methods) == 0 {
		return false
	}
	for _, m := range methods {
		f, ok := r.Features(m)
		if !ok || !f.Complete(required) {
			return false
		}
	}
	return true
}

// Series returns metric for each method in order, or ok=false when any method
// is absent or lacks the value so no partial comparison is ever built
func (r *Result) Series(metric Metric, methods []Method) ([]float64, bool) {
	if !Complete(r, methods, []Metric{metric}) {
		return nil, false
	}

	out := make([]float64, len(methods))
	for i, m := range methods {
		f, _ := r.Features(m)
		out[i], _ = f.Metric(metric)
	}
	return out, true
}
