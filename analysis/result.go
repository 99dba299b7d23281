package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"

	"github.com/zammelRocks/whale-spectrogram/logging"
	"github.com/zammelRocks/whale-spectrogram/render"
)

// Level is one dB cell. JSON null decodes to NaN so a missing cell is drawn
// at the floor instead of being read as 0 dB.
type Level float64

func (l *Level) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = Level(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode dB level: %w", err)
	}
	*l = Level(v)
	return nil
}

// Spectrogram is the wire shape of one precomputed spectrogram
type Spectrogram struct {
	DB    [][]Level `json:"db"`    // [freq][time] in dB
	Freqs []float64 `json:"freqs"` // Hz per row, ascending
	Times []float64 `json:"times"` // seconds per column, ascending
}

// Input converts the payload into a reconciled render.Input
func (s *Spectrogram) Input() render.Input {
	if s == nil {
		return render.Input{}
	}
	var db [][]float64
	if s.DB != nil {
		db = make([][]float64, len(s.DB))
		for f, row := range s.DB {
			db[f] = make([]float64, len(row))
			for t, v := range row {
				db[f][t] = float64(v)
			}
		}
	}
	return render.NewInput(db, s.Freqs, s.Times)
}

// Features are the scalar measurements and spectrogram returned for one method
type Features struct {
	DurationSec    *float64     `json:"duration_sec,omitempty"`
	LowFreqHz      *float64     `json:"low_freq_hz,omitempty"`
	HighFreqHz     *float64     `json:"high_freq_hz,omitempty"`
	BandwidthHz    *float64     `json:"bandwidth_hz,omitempty"`
	CentroidMeanHz *float64     `json:"centroid_mean_hz,omitempty"`
	RMSMean        *float64     `json:"rms_mean,omitempty"` // linear amplitude
	NoiseFloorDB   *float64     `json:"noise_floor_db,omitempty"`
	SampleRate     *int         `json:"sample_rate,omitempty"`
	AudioURL       string       `json:"audio_url,omitempty"`
	CleanedFile    string       `json:"cleaned_file,omitempty"` // server-side path of the processed audio
	Spectrogram    *Spectrogram `json:"spectrogram,omitempty"`
}

// HasSpectrogram reports whether the method carries renderable data
func (f *Features) HasSpectrogram() bool {
	return f != nil && f.Spectrogram.Input().HasData()
}

// Result is one analysis response, indexed by method
type Result struct {
	methods map[Method]*Features
	skipped []string
}

// NewResult builds a Result from already decoded features
func NewResult(features map[Method]*Features) *Result {
	r := &Result{methods: make(map[Method]*Features, len(features))}
	for m, f := range features {
		if m.Valid() && f != nil {
			r.methods[m] = f
		}
	}
	return r
}

// Features returns the features of m; ok is false when the method is absent
func (r *Result) Features(m Method) (*Features, bool) {
	if r == nil {
		return nil, false
	}
	f, ok := r.methods[m]
	return f, ok
}

// Present returns the methods the result contains, in display order
func (r *Result) Present() []Method {
	var out []Method
	for _, m := range Methods() {
		if _, ok := r.Features(m); ok {
			out = append(out, m)
		}
	}
	return out
}

// Skipped lists top-level keys that did not name a known method
func (r *Result) Skipped() []string {
	return slices.Clone(r.skipped)
}

// Decode reads an analysis response. The usual shape is an object keyed by
// method name; a flat single-method object is accepted as the original.
func Decode(r io.Reader) (*Result, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "analysis_decoder",
	})

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode analysis result: %w", err)
	}

	keyed := false
	for key := range raw {
		if _, err := ParseMethod(key); err == nil {
			keyed = true
			break
		}
	}

	result := &Result{methods: make(map[Method]*Features)}

	if !keyed {
		if len(raw) == 0 {
			return result, nil
		}
		var f Features
		if err := remarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode %s features: %w", Original, err)
		}
		result.methods[Original] = &f
		logger.Debug("decoded flat analysis result")
		return result, nil
	}

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		m, err := ParseMethod(key)
		if err != nil {
			result.skipped = append(result.skipped, key)
			logger.Warn("skipping unknown method", logging.Fields{"key": key})
			continue
		}

		if bytes.Equal(bytes.TrimSpace(raw[key]), []byte("null")) {
			continue
		}

		var f Features
		if err := json.Unmarshal(raw[key], &f); err != nil {
			return nil, fmt.Errorf("decode %s features: %w", m, err)
		}
		result.methods[m] = &f
	}

	logger.Debug("decoded analysis result", logging.Fields{
		"methods": len(result.methods),
		"skipped": len(result.skipped),
	})

	return result, nil
}

func remarshal(raw map[string]json.RawMessage, v any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
