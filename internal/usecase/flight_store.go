package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pilotbase-logbook/internal/domain/entity"
	"pilotbase-logbook/internal/domain/repository"
	"pilotbase-logbook/internal/infrastructure/codec"
	"pilotbase-logbook/pkg/logger"
	"pilotbase-logbook/pkg/metrics"
	"pilotbase-logbook/pkg/utils"

	"github.com/google/uuid"
)

// DefaultKey is the backing-store key holding the whole collection
const DefaultKey = "savedFlights"

type storeState int

const (
	stateUninitialized storeState = iota
	stateInitializing
	stateReady
	stateClosed
)

// FlightStore owns the in-memory flight collection and writes every change
// through to a KeyValueStore. Safe for concurrent use.
type FlightStore struct {
	kv             repository.KeyValueStore
	codec          codec.Codec
	key            string
	logger         logger.Logger
	metrics        *metrics.Metrics
	newID          func() string
	seed           func() []entity.FlightRecord
	persistTimeout time.Duration
	onPersistError func(error)

	mu      sync.RWMutex
	state   storeState
	records []entity.FlightRecord
	version uint64
	queue   *writeQueue

	errMu          sync.Mutex
	lastPersistErr error
}

// Option configures a FlightStore
type Option func(*FlightStore)

// WithCodec sets the blob format. Defaults to JSON.
func WithCodec(c codec.Codec) Option {
	return func(s *FlightStore) { s.codec = c }
}

// WithKey sets the backing-store key. Defaults to DefaultKey.
func WithKey(key string) Option {
	return func(s *FlightStore) { s.key = key }
}

// WithMetrics records store activity on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *FlightStore) { s.metrics = m }
}

// WithPersistTimeout bounds each backing-store write
func WithPersistTimeout(d time.Duration) Option {
	return func(s *FlightStore) { s.persistTimeout = d }
}

// WithOnPersistError registers a hook called from the writer goroutine
// whenever a write-through fails
func WithOnPersistError(fn func(error)) Option {
	return func(s *FlightStore) { s.onPersistError = fn }
}

// WithIDGenerator replaces the uuid generator
func WithIDGenerator(fn func() string) Option {
	return func(s *FlightStore) { s.newID = fn }
}

// WithSeed replaces the demonstration dataset
func WithSeed(fn func() []entity.FlightRecord) Option {
	return func(s *FlightStore) { s.seed = fn }
}

// NewFlightStore creates an uninitialized store and starts its writer
func NewFlightStore(kv repository.KeyValueStore, log logger.Logger, opts ...Option) *FlightStore {
	s := &FlightStore{
		kv:             kv,
		codec:          codec.JSON{},
		key:            DefaultKey,
		logger:         log,
		newID:          uuid.NewString,
		seed:           DemoFlights,
		persistTimeout: 5 * time.Second,
		records:        []entity.FlightRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "flight_store", "key", s.key, "codec", s.codec.Name())
	s.queue = newWriteQueue(64, s.persist)
	return s
}

// Initialize loads the persisted collection, or seeds the demonstration
// dataset when nothing usable is stored. Backing-store errors are logged and
// treated as "no data"; only context cancellation is returned. Calling it
// again once ready is a no-op.
func (s *FlightStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case stateReady:
		s.mu.Unlock()
		return nil
	case stateClosed:
		s.mu.Unlock()
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = stateInitializing

	records, repaired, err := s.load(ctx)
	if err != nil && ctx.Err() != nil {
		s.state = stateUninitialized
		s.mu.Unlock()
		return ctx.Err()
	}

	var done <-chan error
	switch {
	case err != nil || len(records) == 0:
		if err != nil {
			s.logger.Warn("Falling back to demo flights", "error", err)
		} else {
			s.logger.Info("No saved flights found, seeding demo flights")
		}
		s.records = s.seed()
		s.countInit("seed")
		done = s.enqueueLocked(wipeNone)
	case repaired:
		s.records = records
		s.countInit("persisted")
		s.logger.Warn("Assigned new ids to saved flights with missing or duplicate ids")
		done = s.enqueueLocked(wipeNone)
	default:
		s.records = records
		s.countInit("persisted")
	}
	s.state = stateReady
	count := len(s.records)
	if s.metrics != nil {
		s.metrics.Records.Set(float64(count))
	}
	s.mu.Unlock()

	s.logger.Info("Flight store ready", "records", count)
	if done != nil {
		// Failures are already logged and recorded by the writer.
		s.await(ctx, done)
	}
	return nil
}

// load reads and decodes the persisted collection. repaired is true when
// missing or duplicate ids had to be replaced.
func (s *FlightStore) load(ctx context.Context) ([]entity.FlightRecord, bool, error) {
	blob, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read saved flights: %w", err)
	}

	var records []entity.FlightRecord
	if err := s.codec.Unmarshal(blob, &records); err != nil {
		return nil, false, fmt.Errorf("saved flights are malformed: %w", err)
	}

	repaired := false
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		if _, dup := seen[records[i].ID]; records[i].ID == "" || dup {
			records[i].ID = s.uniqueID(seen)
			repaired = true
		}
		seen[records[i].ID] = struct{}{}
	}
	return records, repaired, nil
}

// GetAll returns a copy of every record in insertion order
func (s *FlightStore) GetAll() []entity.FlightRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.CloneRecords(s.records)
}

// GetByRole returns copies of the records added by role
func (s *FlightStore) GetByRole(role entity.Role) []entity.FlightRecord {
	if role == "" {
		return []entity.FlightRecord{}
	}
	return s.filter(func(r *entity.FlightRecord) bool {
		return r.AddedByRole == role
	})
}

// GetByReservation returns copies of the records linked to reservationID.
// An empty reservationID matches nothing.
func (s *FlightStore) GetByReservation(reservationID string) []entity.FlightRecord {
	if reservationID == "" {
		return []entity.FlightRecord{}
	}
	return s.filter(func(r *entity.FlightRecord) bool {
		return r.ReservationID == reservationID
	})
}

// Search finds records by flight or tail number. Tail numbers match the
// registration or identifier exactly, flight numbers match the identifier,
// anything else is a substring match on both.
func (s *FlightStore) Search(query string) []entity.FlightRecord {
	q := utils.NormalizeIdentifier(query)
	if q == "" {
		return []entity.FlightRecord{}
	}

	switch utils.ClassifyIdentifier(q) {
	case utils.TailNumber:
		return s.filter(func(r *entity.FlightRecord) bool {
			return utils.NormalizeIdentifier(r.Registration) == q || utils.NormalizeIdentifier(r.Identifier) == q
		})
	case utils.FlightNumber:
		return s.filter(func(r *entity.FlightRecord) bool {
			return utils.NormalizeIdentifier(r.Identifier) == q
		})
	default:
		return s.filter(func(r *entity.FlightRecord) bool {
			return strings.Contains(utils.NormalizeIdentifier(r.Identifier), q) ||
				strings.Contains(utils.NormalizeIdentifier(r.Registration), q)
		})
	}
}

func (s *FlightStore) filter(match func(r *entity.FlightRecord) bool) []entity.FlightRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []entity.FlightRecord{}
	for i := range s.records {
		if match(&s.records[i]) {
			out = append(out, s.records[i].Clone())
		}
	}
	return out
}

// Add appends record, generating an id when it has none. A non-empty role
// overrides the record's AddedByRole. The returned record is the stored one.
// A *PersistError means the record was added in memory but not persisted.
func (s *FlightStore) Add(ctx context.Context, record entity.FlightRecord, role entity.Role) (entity.FlightRecord, error) {
	if role != "" && !role.Valid() {
		return entity.FlightRecord{}, fmt.Errorf("%w: unknown role %q", ErrInvalidRecord, role)
	}
	record = record.Clone()
	if role != "" {
		record.AddedByRole = role
	}
	if err := validate(record); err != nil {
		return entity.FlightRecord{}, err
	}

	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return entity.FlightRecord{}, err
	}
	if record.ID == "" {
		record.ID = s.uniqueID(s.idSetLocked())
	} else if s.indexLocked(record.ID) >= 0 {
		s.mu.Unlock()
		return entity.FlightRecord{}, fmt.Errorf("%w: %s", ErrDuplicateID, record.ID)
	}
	s.records = append(s.records, record)
	done := s.mutatedLocked("add")
	s.mu.Unlock()

	s.logger.Debug("Flight added", "id", record.ID, "role", record.AddedByRole)
	return record.Clone(), s.await(ctx, done)
}

// Update replaces the record with the given id in place. The replacement
// keeps id. Returns false without writing when no record has that id.
func (s *FlightStore) Update(ctx context.Context, id string, updated entity.FlightRecord) (bool, error) {
	updated = updated.Clone()
	updated.ID = id
	if err := validate(updated); err != nil {
		return false, err
	}

	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.records[idx] = updated
	done := s.mutatedLocked("update")
	s.mu.Unlock()

	s.logger.Debug("Flight updated", "id", id)
	return true, s.await(ctx, done)
}

// Remove deletes the first record with the given id. Returns false without
// writing when no record has that id.
func (s *FlightStore) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.records = append(s.records[:idx:idx], s.records[idx+1:]...)
	done := s.mutatedLocked("remove")
	s.mu.Unlock()

	s.logger.Debug("Flight removed", "id", id)
	return true, s.await(ctx, done)
}

// ClearAll empties the collection and persists the empty collection
func (s *FlightStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.records = []entity.FlightRecord{}
	done := s.mutatedLocked("clear")
	s.mu.Unlock()

	s.logger.Info("All flights cleared")
	return s.await(ctx, done)
}

// Reset deletes this store's key from the backing store, then reseeds the
// demonstration dataset and writes it through.
func (s *FlightStore) Reset(ctx context.Context) error {
	return s.reseed(ctx, wipeKey, "reset")
}

// ForceReset clears the whole backing-store namespace, not just this
// store's key, then reseeds the demonstration dataset and writes it through.
// Meant for debugging and tests.
func (s *FlightStore) ForceReset(ctx context.Context) error {
	return s.reseed(ctx, wipeNamespace, "force_reset")
}

func (s *FlightStore) reseed(ctx context.Context, wipe wipeScope, op string) error {
	s.mu.Lock()
	if s.state == stateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.records = s.seed()
	s.state = stateReady
	s.countMutation(op)
	done := s.enqueueLocked(wipe)
	s.mu.Unlock()

	s.logger.Warn("Flight store reseeded", "operation", op)
	return s.await(ctx, done)
}

// LastPersistError returns the error of the most recent write-through, or
// nil when it succeeded
func (s *FlightStore) LastPersistError() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastPersistErr
}

// Close waits for queued write-throughs and stops the writer. It does not
// close the backing store.
func (s *FlightStore) Close() error {
	s.mu.Lock()
	if s.state == stateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = stateClosed
	s.mu.Unlock()

	s.queue.close()
	s.logger.Info("Flight store closed")
	return nil
}

func (s *FlightStore) readyLocked() error {
	switch s.state {
	case stateReady:
		return nil
	case stateClosed:
		return ErrClosed
	default:
		return ErrNotInitialized
	}
}

func (s *FlightStore) indexLocked(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *FlightStore) idSetLocked() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.records))
	for i := range s.records {
		ids[s.records[i].ID] = struct{}{}
	}
	return ids
}

// uniqueID draws ids until one is not in taken
func (s *FlightStore) uniqueID(taken map[string]struct{}) string {
	for {
		id := s.newID()
		if _, ok := taken[id]; id != "" && !ok {
			return id
		}
	}
}

func (s *FlightStore) mutatedLocked(op string) <-chan error {
	s.countMutation(op)
	return s.enqueueLocked(wipeNone)
}

// enqueueLocked snapshots the collection and hands it to the writer. Must be
// called with mu held so snapshots reach the writer in version order.
func (s *FlightStore) enqueueLocked(wipe wipeScope) <-chan error {
	s.version++
	if s.metrics != nil {
		s.metrics.Records.Set(float64(len(s.records)))
	}

	blob, err := s.codec.Marshal(s.records)
	if err != nil {
		err = fmt.Errorf("failed to encode flights: %w", err)
		s.logger.Error("Failed to encode flights", "version", s.version, "error", err)
		done := make(chan error, 1)
		done <- err
		return done
	}
	return s.queue.enqueue(s.version, blob, wipe)
}

// persist runs on the writer goroutine
func (s *FlightStore) persist(version uint64, blob []byte, wipe wipeScope) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()

	start := time.Now()
	err := s.writeBlob(ctx, blob, wipe)
	if s.metrics != nil {
		s.metrics.WriteDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		s.logger.Error("Failed to persist flights", "version", version, "error", err)
	} else {
		s.logger.Debug("Flights persisted", "version", version, "bytes", len(blob))
	}
	s.recordPersistResult(err)
	return err
}

func (s *FlightStore) writeBlob(ctx context.Context, blob []byte, wipe wipeScope) error {
	switch wipe {
	case wipeKey:
		if err := s.kv.Delete(ctx, s.key); err != nil {
			return err
		}
	case wipeNamespace:
		if err := s.kv.Clear(ctx); err != nil {
			return err
		}
	}
	return s.kv.Set(ctx, s.key, blob)
}

func (s *FlightStore) recordPersistResult(err error) {
	s.errMu.Lock()
	s.lastPersistErr = err
	s.errMu.Unlock()

	if s.metrics != nil {
		result := "success"
		if err != nil {
			result = "failure"
		}
		s.metrics.WriteThroughs.WithLabelValues(result).Inc()
	}
	if err != nil && s.onPersistError != nil {
		s.onPersistError(err)
	}
}

// await waits for the write covering a mutation
func (s *FlightStore) await(ctx context.Context, done <-chan error) error {
	select {
	case err := <-done:
		if err != nil {
			return &PersistError{Err: err}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *FlightStore) countMutation(op string) {
	if s.metrics != nil {
		s.metrics.Mutations.WithLabelValues(op).Inc()
	}
}

func (s *FlightStore) countInit(source string) {
	if s.metrics != nil {
		s.metrics.Initializations.WithLabelValues(source).Inc()
	}
}

func validate(r entity.FlightRecord) error {
	if r.AddedByRole != "" && !r.AddedByRole.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidRecord, r.AddedByRole)
	}
	if r.Status != "" && !r.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, r.Status)
	}
	return nil
}
