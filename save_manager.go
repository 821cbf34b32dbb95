package kanby

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultPollInterval is how often an idle worker wakes to check for stop
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultJoinTimeout bounds how long Shutdown waits for the worker to exit
	DefaultJoinTimeout = 2 * time.Second

	// SavedMessage is reported to the success callback after a save that asked for feedback
	SavedMessage = "💾 Saved"
)

// Persister writes a workspace to durable storage
type Persister interface {
	Save(ws *Workspace) error
}

// SaveStatus is a point-in-time view of the save pipeline
type SaveStatus struct {
	Running        bool      `json:"running"`
	SaveInProgress bool      `json:"save_in_progress"`
	QueueDepth     int       `json:"queue_depth"`
	LastSaveTime   time.Time `json:"last_save_time"`
	SuccessCount   uint64    `json:"success_count"`
	FailureCount   uint64    `json:"failure_count"`
}

type saveRequest struct {
	snapshot   *Workspace
	feedback   bool
	onComplete func(ok bool)
	queuedAt   time.Time
}

// SaveOption configures a single queued save
type SaveOption func(*saveRequest)

// WithFeedback reports a successful save to the success callback
func WithFeedback() SaveOption {
	return func(r *saveRequest) {
		r.feedback = true
	}
}

// WithCompletion registers a function called once the save finishes
func WithCompletion(fn func(ok bool)) SaveOption {
	return func(r *saveRequest) {
		r.onComplete = fn
	}
}

// ManagerOption configures a SaveManager
type ManagerOption func(*SaveManager)

// WithLogger sets the manager's logger
func WithLogger(logger *log.Logger) ManagerOption {
	return func(m *SaveManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPollInterval sets how often the idle worker wakes up
func WithPollInterval(d time.Duration) ManagerOption {
	return func(m *SaveManager) {
		if d > 0 {
			m.pollInterval = d
		}
	}
}

// WithJoinTimeout sets how long Shutdown waits for the worker
func WithJoinTimeout(d time.Duration) ManagerOption {
	return func(m *SaveManager) {
		if d > 0 {
			m.joinTimeout = d
		}
	}
}

// SaveManager serializes workspace saves onto a background worker.
// Requests are written one at a time in the order they were enqueued.
type SaveManager struct {
	store        Persister
	logger       *log.Logger
	pollInterval time.Duration
	joinTimeout  time.Duration

	mu        sync.Mutex
	queue     []*saveRequest
	closed    bool
	running   bool
	stopCh    chan struct{}
	done      chan struct{}
	onSuccess func(string)
	onError   func(string)

	wake chan struct{}

	// writeMu is held across pop+write so only one writer touches the file at a time
	writeMu sync.Mutex

	inProgress atomic.Bool
	successes  atomic.Uint64
	failures   atomic.Uint64
	lastSave   atomic.Int64
}

// NewSaveManager creates a manager for store and starts its worker
func NewSaveManager(store Persister, opts ...ManagerOption) *SaveManager {
	m := &SaveManager{
		store:        store,
		logger:       log.StandardLogger(),
		pollInterval: DefaultPollInterval,
		joinTimeout:  DefaultJoinTimeout,
		wake:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.mu.Lock()
	m.startLocked()
	m.mu.Unlock()
	return m
}

// SetCallbacks installs the functions told about save results.
// They run on the goroutine that performed the write.
func (m *SaveManager) SetCallbacks(onSuccess, onError func(message string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSuccess = onSuccess
	m.onError = onError
}

// Enqueue snapshots ws and queues it for writing. It never waits on I/O.
func (m *SaveManager) Enqueue(ws *Workspace, opts ...SaveOption) error {
	req := &saveRequest{
		snapshot: ws.Clone(),
		queuedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(req)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	m.queue = append(m.queue, req)
	if !m.running {
		m.logger.Warn("save worker not running, restarting")
		m.startLocked()
	}
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
	return nil
}

// SaveNow writes ws immediately, bypassing the queue.
// If the write takes longer than timeout, ErrSaveTimeout is returned while
// the write runs to completion in the background. A zero timeout waits forever.
func (m *SaveManager) SaveNow(ws *Workspace, timeout time.Duration) error {
	snapshot := ws.Clone()
	result := make(chan error, 1)
	go func() {
		m.writeMu.Lock()
		defer m.writeMu.Unlock()
		result <- m.write(snapshot)
	}()

	if timeout <= 0 {
		return <-result
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-result:
		return err
	case <-timer.C:
		m.logger.WithField("timeout", timeout).Warn("immediate save timed out")
		return ErrSaveTimeout
	}
}

// Shutdown stops accepting saves, writes everything still queued, and waits
// a bounded time for the worker to exit. Calling it again is a no-op.
func (m *SaveManager) Shutdown() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	running := m.running
	done := m.done
	if running {
		close(m.stopCh)
	}
	m.mu.Unlock()

	drained := 0
	for m.processNext() {
		drained++
	}
	if drained > 0 {
		m.logger.WithField("count", drained).Debug("drained pending saves")
	}

	if !running {
		return
	}
	select {
	case <-done:
	case <-time.After(m.joinTimeout):
		m.logger.WithField("timeout", m.joinTimeout).Warn("save worker did not stop in time")
	}
}

// Status reports the pipeline's current state
func (m *SaveManager) Status() SaveStatus {
	m.mu.Lock()
	running := m.running
	depth := len(m.queue)
	m.mu.Unlock()

	var last time.Time
	if ns := m.lastSave.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return SaveStatus{
		Running:        running,
		SaveInProgress: m.inProgress.Load(),
		QueueDepth:     depth,
		LastSaveTime:   last,
		SuccessCount:   m.successes.Load(),
		FailureCount:   m.failures.Load(),
	}
}

// Busy reports whether saves are queued or being written
func (m *SaveManager) Busy() bool {
	s := m.Status()
	return s.SaveInProgress || s.QueueDepth > 0
}

func (m *SaveManager) startLocked() {
	m.stopCh = make(chan struct{})
	m.done = make(chan struct{})
	m.running = true
	go m.worker(m.stopCh, m.done)
}

func (m *SaveManager) worker(stop <-chan struct{}, done chan<- struct{}) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithField("panic", r).Error("save worker crashed")
		}
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-m.wake:
		case <-ticker.C:
		}
		for m.processNext() {
			select {
			case <-stop:
				return
			default:
			}
		}
	}
}

// processNext writes the oldest queued request, reporting false when the queue is empty
func (m *SaveManager) processNext() bool {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return false
	}
	req := m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	m.mu.Unlock()

	err := m.write(req.snapshot)
	if err == nil {
		m.logger.WithField("waited", time.Since(req.queuedAt)).Debug("queued save written")
		if req.feedback {
			m.report(true, SavedMessage)
		}
	}
	m.complete(req.onComplete, err == nil)
	return true
}

// write performs one save and records its outcome. Callers hold writeMu.
func (m *SaveManager) write(ws *Workspace) (err error) {
	m.inProgress.Store(true)
	defer m.inProgress.Store(false)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("save panicked: %v", r)
		}
		if err != nil {
			m.failures.Add(1)
			m.logger.WithError(err).Error("save failed")
			m.report(false, fmt.Sprintf("Save error: %v", err))
			return
		}
		m.successes.Add(1)
		m.lastSave.Store(time.Now().UnixNano())
	}()

	return m.store.Save(ws)
}

func (m *SaveManager) complete(fn func(ok bool), ok bool) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithField("panic", r).Error("save completion callback panicked")
		}
	}()
	fn(ok)
}

func (m *SaveManager) report(success bool, message string) {
	m.mu.Lock()
	fn := m.onError
	if success {
		fn = m.onSuccess
	}
	m.mu.Unlock()
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithField("panic", r).Error("save callback panicked")
		}
	}()
	fn(message)
}
