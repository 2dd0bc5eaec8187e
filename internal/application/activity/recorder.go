// Package activity implements the audit trail as a one-way message emission:
// service operations publish events, a single consumer goroutine persists
// them. A failed or slow log write never blocks and never fails the operation
// that triggered it, so audit completeness is best-effort by design.
package activity

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/entity"
	"github.com/Blawness/project-tanah-garapan-sub000/internal/domain/repository"
	"github.com/Blawness/project-tanah-garapan-sub000/pkg/logger"
)

// Action tags recorded by the services.
const (
	ActionCreateTanahGarapan = "CREATE_TANAH_GARAPAN"
	ActionUpdateTanahGarapan = "UPDATE_TANAH_GARAPAN"
	ActionDeleteTanahGarapan = "DELETE_TANAH_GARAPAN"
	ActionExportTanahGarapan = "EXPORT_TANAH_GARAPAN"
	ActionCreateProyek       = "CREATE_PROYEK"
	ActionUpdateProyek       = "UPDATE_PROYEK"
	ActionDeleteProyek       = "DELETE_PROYEK"
	ActionExportProyek       = "EXPORT_PROYEK"
	ActionCreatePembelian    = "CREATE_PEMBELIAN"
	ActionUpdatePembelian    = "UPDATE_PEMBELIAN"
	ActionDeletePembelian    = "DELETE_PEMBELIAN"
	ActionExportPembelian    = "EXPORT_PEMBELIAN"
	ActionCreatePembayaran   = "CREATE_PEMBAYARAN"
	ActionUpdatePembayaran   = "UPDATE_PEMBAYARAN"
	ActionDeletePembayaran   = "DELETE_PEMBAYARAN"
	ActionCreateUser         = "CREATE_USER"
	ActionUpdateUser         = "UPDATE_USER"
	ActionDeleteUser         = "DELETE_USER"
	ActionLogin              = "LOGIN"
)

// Recorder queues audit events and persists them on a background goroutine.
type Recorder struct {
	repo    repository.ActivityLogRepository
	log     *logger.Logger
	ch      chan *entity.ActivityLog
	dropped atomic.Uint64
	wg      sync.WaitGroup
	once    sync.Once
}

// NewRecorder starts the consumer. bufferSize bounds the queue; once it is
// full new events are dropped rather than blocking the caller.
func NewRecorder(repo repository.ActivityLogRepository, log *logger.Logger, bufferSize int) *Recorder {
	if bufferSize < 1 {
		bufferSize = 1
	}
	r := &Recorder{
		repo: repo,
		log:  log,
		ch:   make(chan *entity.ActivityLog, bufferSize),
	}
	r.wg.Add(1)
	go r.consume()
	return r
}

// Record publishes an audit event. The payload snapshot is marshalled here,
// before the caller can mutate the referenced record. Never blocks, never
// returns an error.
func (r *Recorder) Record(user, action, details string, payload any) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			r.log.Warn().Err(err).Str("action", action).Msg("activity payload not serializable, recording without it")
		} else {
			raw = b
		}
	}
	e := &entity.ActivityLog{
		ID:        uuid.New().String(),
		User:      user,
		Action:    action,
		Details:   details,
		Payload:   raw,
		CreatedAt: time.Now(),
	}
	select {
	case r.ch <- e:
	default:
		r.dropped.Add(1)
		r.log.Warn().Str("action", action).Str("user", user).Msg("activity queue full, event dropped")
	}
}

// Dropped reports how many events were discarded because the queue was full.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Close stops accepting events, drains the queue and waits for the consumer.
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.ch)
	})
	r.wg.Wait()
}

func (r *Recorder) consume() {
	defer r.wg.Done()
	for e := range r.ch {
		if err := r.repo.Create(e); err != nil {
			// Swallowed on purpose: audit durability never outranks the
			// triggering operation.
			r.log.Error().Err(err).Str("action", e.Action).Msg("activity log write failed")
		}
	}
}
