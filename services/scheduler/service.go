// Package scheduler runs periodic background tasks such as cache warming.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

// Task is a unit of periodic work.
type Task struct {
	ID       string
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// TaskStatus is the in-memory record of a task's last run. NextRunAt is
// empty until the first run; such a task is due at the next check.
type TaskStatus struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Interval     string     `json:"interval"`
	Running      bool       `json:"running"`
	LastRunAt    *time.Time `json:"lastRunAt,omitempty"`
	NextRunAt    *time.Time `json:"nextRunAt,omitempty"`
	LastDuration string     `json:"lastDuration,omitempty"`
	LastError    string     `json:"lastError,omitempty"`
	Runs         int        `json:"runs"`
}

type taskState struct {
	task    Task
	running bool
	lastRun *time.Time
	lastDur time.Duration
	lastErr error
	runs    int
}

// Service manages scheduled task execution.
type Service struct {
	checkInterval time.Duration
	now           func() time.Time

	mu      sync.RWMutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	taskMu sync.RWMutex
	tasks  map[string]*taskState
}

var (
	ErrUnknownTask = errors.New("scheduler: unknown task")
	ErrTaskRunning = errors.New("scheduler: task already running")

	errInvalidTask = errors.New("scheduler: task needs an id, a positive interval and a run func")
)

// NewService creates a scheduler that looks for due tasks every
// checkInterval (one minute when zero).
func NewService(checkInterval time.Duration) *Service {
	if checkInterval <= 0 {
		checkInterval = time.Minute
	}
	return &Service{
		checkInterval: checkInterval,
		now:           time.Now,
		tasks:         make(map[string]*taskState),
	}
}

// Register adds or replaces a task.
func (s *Service) Register(t Task) error {
	if t.ID == "" || t.Interval <= 0 || t.Run == nil {
		return errInvalidTask
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	s.taskMu.Lock()
	s.tasks[t.ID] = &taskState{task: t}
	s.taskMu.Unlock()
	return nil
}

// Start begins the background loop. Due tasks run immediately.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go s.schedulerLoop()

	log.Println("[scheduler] Scheduler service started")
	return nil
}

// Stop cancels running tasks and waits for them until ctx expires.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[scheduler] Scheduler service stopped gracefully")
	case <-ctx.Done():
		log.Println("[scheduler] Scheduler service stopped (timeout)")
	}

	s.running = false
	return nil
}

func (s *Service) schedulerLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	s.checkAndRunTasks(s.ctx)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRunTasks(s.ctx)
		}
	}
}

// checkAndRunTasks starts every due task that is not already running.
func (s *Service) checkAndRunTasks(ctx context.Context) {
	now := s.now()

	s.taskMu.Lock()
	var due []*taskState
	for _, st := range s.tasks {
		if st.running {
			continue
		}
		if st.lastRun == nil || now.Sub(*st.lastRun) >= st.task.Interval {
			st.running = true
			due = append(due, st)
		}
	}
	s.taskMu.Unlock()

	for _, st := range due {
		s.wg.Add(1)
		go func(st *taskState) {
			defer s.wg.Done()
			s.executeTask(ctx, st)
		}(st)
	}
}

// RunNow executes a task synchronously regardless of its schedule.
func (s *Service) RunNow(ctx context.Context, id string) error {
	s.taskMu.Lock()
	st, ok := s.tasks[id]
	if !ok {
		s.taskMu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	if st.running {
		s.taskMu.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskRunning, id)
	}
	st.running = true
	s.taskMu.Unlock()

	return s.executeTask(ctx, st)
}

func (s *Service) executeTask(ctx context.Context, st *taskState) error {
	start := s.now()
	log.Printf("[scheduler] Executing task: %s", st.task.Name)

	err := st.task.Run(ctx)
	elapsed := time.Since(start)

	s.taskMu.Lock()
	st.running = false
	st.lastRun = &start
	st.lastDur = elapsed
	st.lastErr = err
	st.runs++
	s.taskMu.Unlock()

	if err != nil {
		log.Printf("[scheduler] Task %s failed after %s: %v", st.task.Name, elapsed.Round(time.Millisecond), err)
	} else {
		log.Printf("[scheduler] Task %s completed in %s", st.task.Name, elapsed.Round(time.Millisecond))
	}
	return err
}

// Status lists tasks sorted by id.
func (s *Service) Status() []TaskStatus {
	s.taskMu.RLock()
	defer s.taskMu.RUnlock()

	out := make([]TaskStatus, 0, len(s.tasks))
	for _, st := range s.tasks {
		ts := TaskStatus{
			ID:       st.task.ID,
			Name:     st.task.Name,
			Interval: st.task.Interval.String(),
			Running:  st.running,
			Runs:     st.runs,
		}
		if st.lastRun != nil {
			at := *st.lastRun
			next := at.Add(st.task.Interval)
			ts.LastRunAt = &at
			ts.NextRunAt = &next
			ts.LastDuration = st.lastDur.Round(time.Millisecond).String()
		}
		if st.lastErr != nil {
			ts.LastError = st.lastErr.Error()
		}
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
