package app

import (
	"hash/fnv"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

const lockShards = 64

type job struct {
	version uint64
	fireAt  time.Time
	timer   Timer
}

type JobSnapshot struct {
	ReminderID domain.ReminderID
	FireAt     time.Time
}

// JobTable holds at most one pending job per reminder. Callers serialize work
// on a reminder with lock; the map itself is guarded separately so different
// reminders never wait on each other.
type JobTable struct {
	shards  [lockShards]sync.Mutex
	mu      sync.RWMutex
	jobs    map[domain.ReminderID]*job
	version atomic.Uint64
}

func NewJobTable() *JobTable {
	return &JobTable{
		jobs: make(map[domain.ReminderID]*job),
	}
}

// lock acquires the critical section of id and returns its release.
func (t *JobTable) lock(id domain.ReminderID) func() {
	m := &t.shards[shardOf(id)]
	m.Lock()

	return m.Unlock
}

func shardOf(id domain.ReminderID) uint32 {
	raw := id.UUID()

	h := fnv.New32a()
	_, _ = h.Write(raw[:])

	return h.Sum32() % lockShards
}

func (t *JobTable) nextVersion() uint64 {
	return t.version.Add(1)
}

// put registers j for id, stopping a job it replaces.
func (t *JobTable) put(id domain.ReminderID, j *job) {
	t.mu.Lock()
	prev := t.jobs[id]
	t.jobs[id] = j
	t.mu.Unlock()

	if prev != nil {
		prev.timer.Stop()
	}
}

func (t *JobTable) remove(id domain.ReminderID) bool {
	t.mu.Lock()
	prev, ok := t.jobs[id]
	delete(t.jobs, id)
	t.mu.Unlock()

	if ok {
		prev.timer.Stop()
	}

	return ok
}

// claim removes the job of id if it still carries version. A false result
// means the firing timer was replaced or cancelled after it was armed.
func (t *JobTable) claim(id domain.ReminderID, version uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[id]
	if !ok || j.version != version {
		return false
	}

	delete(t.jobs, id)

	return true
}

// reset stops and drops every job, returning how many were pending.
func (t *JobTable) reset() int {
	t.mu.Lock()
	jobs := t.jobs
	t.jobs = make(map[domain.ReminderID]*job)
	t.mu.Unlock()

	for _, j := range jobs {
		j.timer.Stop()
	}

	return len(jobs)
}

func (t *JobTable) Get(id domain.ReminderID) (JobSnapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	j, ok := t.jobs[id]
	if !ok {
		return JobSnapshot{}, false
	}

	return JobSnapshot{ReminderID: id, FireAt: j.fireAt}, true
}

func (t *JobTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.jobs)
}

// Snapshot lists pending jobs ordered by fire instant.
func (t *JobTable) Snapshot() []JobSnapshot {
	t.mu.RLock()
	snapshot := make([]JobSnapshot, 0, len(t.jobs))
	for id, j := range t.jobs {
		snapshot = append(snapshot, JobSnapshot{ReminderID: id, FireAt: j.fireAt})
	}
	t.mu.RUnlock()

	sort.Slice(snapshot, func(i, k int) bool {
		if snapshot[i].FireAt.Equal(snapshot[k].FireAt) {
			return snapshot[i].ReminderID.String() < snapshot[k].ReminderID.String()
		}

		return snapshot[i].FireAt.Before(snapshot[k].FireAt)
	})

	return snapshot
}
