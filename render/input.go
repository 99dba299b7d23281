package render

// Input is a reconciled, read-only view of one spectrogram: a rows x cols dB
// matrix (row 0 is the lowest frequency) and its physical axes.
// Build it with NewInput or NewInputFrom; the zero value is an empty input.
type Input struct {
	db        [][]float64
	freqs     []float64
	times     []float64
	rows      int
	cols      int
	truncated bool
}

// NewInput reconciles a possibly ragged matrix: the column count is the length
// of the shortest row and longer rows are truncated to it. The slices are
// referenced, not copied; the caller must not mutate them during a render.
func NewInput(db [][]float64, freqs, times []float64) Input {
	in := Input{
		db:    db,
		freqs: freqs,
		times: times,
		rows:  len(db),
	}

	if in.rows == 0 {
		return in
	}

	in.cols = len(db[0])
	for _, row := range db[1:] {
		if len(row) != in.cols {
			in.truncated = true
		}
		if len(row) < in.cols {
			in.cols = len(row)
		}
	}

	return in
}

// NewInputFrom converts float32 or float64 data into an Input
func NewInputFrom[T ~float32 | ~float64](db [][]T, freqs, times []T) Input {
	return NewInput(toFloat64Matrix(db), toFloat64(freqs), toFloat64(times))
}

func toFloat64[T ~float32 | ~float64](in []T) []float64 {
	if in == nil {
		return nil
	}
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func toFloat64Matrix[T ~float32 | ~float64](in [][]T) [][]float64 {
	if in == nil {
		return nil
	}
	out := make([][]float64, len(in))
	for i, row := range in {
		out[i] = toFloat64(row)
	}
	return out
}

// Rows returns the number of frequency bins (F)
func (in Input) Rows() int { return in.rows }

// Cols returns the number of time frames (T) after reconciliation
func (in Input) Cols() int { return in.cols }

// HasData reports whether there is anything to rasterize
func (in Input) HasData() bool { return in.rows > 0 && in.cols > 0 }

// Truncated reports whether ragged rows were cut to the shortest length
func (in Input) Truncated() bool { return in.truncated }

// At returns the dB value of frequency row f at time column t
func (in Input) At(f, t int) float64 { return in.db[f][t] }

// Row returns frequency row f limited to Cols values
func (in Input) Row(f int) []float64 { return in.db[f][:in.cols] }

// MaxFreq is the top of the frequency axis: the last axis value, or the row
// count when no axis was supplied
func (in Input) MaxFreq() float64 {
	if len(in.freqs) > 0 {
		return in.freqs[len(in.freqs)-1]
	}
	return float64(in.rows)
}

// MaxTime is the end of the time axis: the last axis value, or the column
// count when no axis was supplied
func (in Input) MaxTime() float64 {
	if len(in.times) > 0 {
		return in.times[len(in.times)-1]
	}
	return float64(in.cols)
}
