// Package settings holds the runtime settings of the series engine: thread
// count, cache line size, tracing, term output limit and per-thread work
// threshold. All methods are safe for concurrent use.
package settings

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"
)

const (
	// DefaultMaxTermOutput is the number of terms printed before a series
	// representation is elided.
	DefaultMaxTermOutput uint64 = 20
	// DefaultMinWorkPerThread is the minimum amount of work assigned to a
	// thread before parallelism kicks in.
	DefaultMinWorkPerThread uint64 = 500000
)

// ErrInvalidValue is returned when a setting is given an out-of-range value.
var ErrInvalidValue = errors.New("invalid settings value")

// Settings stores the engine's runtime settings.
type Settings struct {
	mu               sync.Mutex
	nThreads         uint
	cacheLineSize    uint
	tracing          bool
	maxTermOutput    uint64
	minWorkPerThread atomic.Uint64
}

// Values is a point-in-time copy of all settings.
type Values struct {
	NThreads         uint   `json:"n_threads" yaml:"n_threads"`
	CacheLineSize    uint   `json:"cache_line_size" yaml:"cache_line_size"`
	Tracing          bool   `json:"tracing" yaml:"tracing"`
	MaxTermOutput    uint64 `json:"max_term_output" yaml:"max_term_output"`
	MinWorkPerThread uint64 `json:"min_work_per_thread" yaml:"min_work_per_thread"`
}

// Overrides carries optional values, typically from a manifest settings block.
// Nil fields are left untouched.
type Overrides struct {
	NThreads         *uint
	CacheLineSize    *uint
	Tracing          *bool
	MaxTermOutput    *uint64
	MinWorkPerThread *uint64
}

// New returns settings initialised to their defaults.
func New() *Settings {
	s := &Settings{
		nThreads:      defaultThreads(),
		cacheLineSize: DetectCacheLineSize(),
		maxTermOutput: DefaultMaxTermOutput,
	}
	s.minWorkPerThread.Store(DefaultMinWorkPerThread)
	return s
}

// DetectCacheLineSize returns the data cache line size of the host, in bytes.
func DetectCacheLineSize() uint {
	return uint(unsafe.Sizeof(cpu.CacheLinePad{}))
}

func defaultThreads() uint {
	if n := runtime.NumCPU(); n > 0 {
		return uint(n)
	}
	return 1
}

// NThreads returns the number of threads available to the engine.
func (s *Settings) NThreads() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nThreads
}

// SetNThreads sets the number of threads available to the engine. Zero is rejected.
func (s *Settings) SetNThreads(n uint) error {
	if n == 0 {
		return fmt.Errorf("%w: number of threads must be positive", ErrInvalidValue)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nThreads = n
	return nil
}

// ResetNThreads restores the thread count to max(1, number of CPUs).
func (s *Settings) ResetNThreads() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nThreads = defaultThreads()
}

// CacheLineSize returns the data cache line size in bytes.
func (s *Settings) CacheLineSize() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacheLineSize
}

// SetCacheLineSize overrides the detected cache line size. Only needed when
// detection reports something wrong for the host.
func (s *Settings) SetCacheLineSize(n uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheLineSize = n
}

// ResetCacheLineSize restores the detected cache line size.
func (s *Settings) ResetCacheLineSize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheLineSize = DetectCacheLineSize()
}

// Tracing is disabled by default.
func (s *Settings) Tracing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracing
}

// SetTracing enables or disables tracing.
func (s *Settings) SetTracing(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracing = flag
}

// MaxTermOutput returns how many terms are printed before output is truncated.
func (s *Settings) MaxTermOutput() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxTermOutput
}

// SetMaxTermOutput sets the printed term limit.
func (s *Settings) SetMaxTermOutput(n uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxTermOutput = n
}

// ResetMaxTermOutput restores the default limit of 20 terms.
func (s *Settings) ResetMaxTermOutput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxTermOutput = DefaultMaxTermOutput
}

// MinWorkPerThread returns the minimum work assigned to each thread.
func (s *Settings) MinWorkPerThread() uint64 {
	return s.minWorkPerThread.Load()
}

// SetMinWorkPerThread sets the per-thread work threshold. Zero is rejected.
func (s *Settings) SetMinWorkPerThread(n uint64) error {
	if n == 0 {
		return fmt.Errorf("%w: minimum work per thread must be positive", ErrInvalidValue)
	}
	s.minWorkPerThread.Store(n)
	return nil
}

// ResetMinWorkPerThread restores the default of 500000.
func (s *Settings) ResetMinWorkPerThread() {
	s.minWorkPerThread.Store(DefaultMinWorkPerThread)
}

// Snapshot returns a copy of the current values.
func (s *Settings) Snapshot() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Values{
		NThreads:         s.nThreads,
		CacheLineSize:    s.cacheLineSize,
		Tracing:          s.tracing,
		MaxTermOutput:    s.maxTermOutput,
		MinWorkPerThread: s.minWorkPerThread.Load(),
	}
}

// Apply sets every non-nil override. Values are validated before any of them
// is applied, so a rejected override leaves the settings unchanged.
func (s *Settings) Apply(o *Overrides) error {
	if o == nil {
		return nil
	}
	if o.NThreads != nil && *o.NThreads == 0 {
		return fmt.Errorf("%w: n_threads must be positive", ErrInvalidValue)
	}
	if o.MinWorkPerThread != nil && *o.MinWorkPerThread == 0 {
		return fmt.Errorf("%w: min_work_per_thread must be positive", ErrInvalidValue)
	}

	s.mu.Lock()
	if o.NThreads != nil {
		s.nThreads = *o.NThreads
	}
	if o.CacheLineSize != nil {
		s.cacheLineSize = *o.CacheLineSize
	}
	if o.Tracing != nil {
		s.tracing = *o.Tracing
	}
	if o.MaxTermOutput != nil {
		s.maxTermOutput = *o.MaxTermOutput
	}
	if o.MinWorkPerThread != nil {
		s.minWorkPerThread.Store(*o.MinWorkPerThread)
	}
	s.mu.Unlock()
	return nil
}
