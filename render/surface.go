package render

import (
	"sync"
	"sync/atomic"

	"github.com/zammelRocks/whale-spectrogram/logging"
)

// Surface is one display target fed by successive inputs. Every Update
// replaces the previous output entirely; when updates overlap, the newest one
// wins and older in-flight renders are abandoned.
type Surface struct {
	cfg        *Config
	generation atomic.Uint64
	logger     logging.Logger

	mu        sync.Mutex
	current   *Spectrogram
	committed uint64
}

// NewSurface creates a surface rendering with cfg (DefaultConfig when nil)
func NewSurface(cfg *Config, logger logging.Logger) *Surface {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}

	return &Surface{
		cfg: cfg,
		logger: logger.WithFields(logging.Fields{
			"component": "render_surface",
		}),
	}
}

// Update renders in and commits it as the surface's current output. It
// returns false when a newer Update superseded this one before it finished.
func (s *Surface) Update(in Input) (*Spectrogram, bool, error) {
	gen := s.generation.Add(1)
	superseded := func() bool { return s.generation.Load() != gen }

	out, err := render(in, s.cfg, superseded)
	if err != nil {
		return nil, false, err
	}

	if out == nil || superseded() {
		s.logger.Debug("render abandoned", logging.Fields{"generation": gen})
		return nil, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer render may have committed while this one was finishing
	if gen < s.committed {
		return nil, false, nil
	}

	s.current = out
	s.committed = gen
	s.logger.Debug("render committed", logging.Fields{
		"generation": gen,
		"has_data":   out.HasData,
		"width":      out.Width(),
		"height":     out.Height(),
	})

	return out, true, nil
}

// Current returns the last committed output, or nil before the first commit
func (s *Surface) Current() *Spectrogram {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Generation returns the number of updates started so far
func (s *Surface) Generation() uint64 {
	return s.generation.Load()
}
