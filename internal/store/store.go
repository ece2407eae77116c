// Package store is the Application State Store: colleges, their tracker rows,
// the tracker column schema and the user profile. Every mutation writes the
// slices it touched before returning.
package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"college-tracker/internal/common/database"
	"college-tracker/internal/common/errors"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/metrics"
	"college-tracker/internal/common/validation"
	"college-tracker/internal/models"

	"github.com/google/uuid"
)

// Persisted keys.
const (
	KeyColleges = "colleges"
	KeyTasks    = "applicationTasks"
	KeyColumns  = "taskColumns"
	KeyProfile  = "userProfile"
)

const dateLayout = "2006-01-02"

var collegeSchema = validation.MustCompile(validation.CollegeSchema)

type Store struct {
	kv    database.KV
	log   logger.Logger
	now   func() time.Time
	newID func() string

	mu       sync.RWMutex
	colleges []models.College
	tasks    []models.ApplicationTask
	columns  []models.TaskColumn
	profile  *models.UserProfile
}

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator for new colleges and columns.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(kv database.KV, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		log:   log.WithFields(map[string]interface{}{"component": "store"}),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every slice independently. A missing or undecodable slice falls
// back to its sample. Backend failures are returned.
func (s *Store) Load(ctx context.Context) error {
	colleges, err := loadKey(ctx, s, KeyColleges, sampleColleges)
	if err != nil {
		return err
	}
	tasks, err := loadKey(ctx, s, KeyTasks, sampleTasks)
	if err != nil {
		return err
	}
	columns, err := loadKey(ctx, s, KeyColumns, defaultTaskColumns)
	if err != nil {
		return err
	}
	profile, err := loadKey(ctx, s, KeyProfile, func() *models.UserProfile { return nil })
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.colleges = colleges
	s.tasks = tasks
	s.columns = columns
	s.profile = profile

	s.log.Debug("state loaded", map[string]interface{}{
		"colleges":   len(colleges),
		"tasks":      len(tasks),
		"columns":    len(columns),
		"hasProfile": profile != nil,
	})
	return nil
}

func loadKey[T any](ctx context.Context, s *Store, key string, fallback func() T) (T, error) {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, database.ErrKeyNotFound) {
		return fallback(), nil
	}
	if err != nil {
		var zero T
		return zero, errors.NewStorageError("read", key, err)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		s.log.Warn("stored value is not valid JSON, using defaults", map[string]interface{}{
			"key":   key,
			"error": err,
		})
		return fallback(), nil
	}
	return out, nil
}

func (s *Store) persist(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewStorageError("encode", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return errors.NewStorageError("write", key, err)
	}
	return nil
}

// persistBoth writes two slices. When the second write fails the first key is
// put back to prev so storage keeps matching memory.
func (s *Store) persistBoth(ctx context.Context, firstKey string, first, prev interface{}, secondKey string, second interface{}) error {
	if err := s.persist(ctx, firstKey, first); err != nil {
		return err
	}
	if err := s.persist(ctx, secondKey, second); err != nil {
		if restoreErr := s.persist(ctx, firstKey, prev); restoreErr != nil {
			s.log.Error("failed to restore after partial write", map[string]interface{}{
				"key":   firstKey,
				"error": restoreErr,
			})
		}
		return err
	}
	return nil
}

func record(op string, err error) {
	metrics.StoreMutations.WithLabelValues(op, metrics.Outcome(err)).Inc()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ==========================
// Snapshots
// ==========================

// Colleges returns a copy of every tracked college in insertion order.
func (s *Store) Colleges() []models.College {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneColleges(s.colleges)
}

func (s *Store) College(id string) (models.College, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.collegeIndex(id); i >= 0 {
		return s.colleges[i].Clone(), true
	}
	return models.College{}, false
}

// FindByName matches names case-insensitively, ignoring surrounding spaces.
func (s *Store) FindByName(name string) (models.College, bool) {
	want := strings.TrimSpace(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.colleges {
		if strings.EqualFold(strings.TrimSpace(c.Name), want) {
			return c.Clone(), true
		}
	}
	return models.College{}, false
}

func (s *Store) Tasks() []models.ApplicationTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// TasksByStatus returns the rows whose college currently has status.
func (s *Store) TasksByStatus(status models.CollegeStatus) []models.ApplicationTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ApplicationTask
	for _, t := range s.tasks {
		if i := s.collegeIndex(t.CollegeID); i >= 0 && s.colleges[i].Status == status {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (s *Store) Columns() []models.TaskColumn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneColumns(s.columns)
}

// Profile returns nil until a profile has been saved.
func (s *Store) Profile() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

func (s *Store) collegeIndex(id string) int {
	for i, c := range s.colleges {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) taskIndex(collegeID string) int {
	for i, t := range s.tasks {
		if t.CollegeID == collegeID {
			return i
		}
	}
	return -1
}

func (s *Store) columnIndex(id string) int {
	for i, c := range s.columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneColleges(in []models.College) []models.College {
	out := make([]models.College, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func cloneTasks(in []models.ApplicationTask) []models.ApplicationTask {
	out := make([]models.ApplicationTask, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func cloneColumns(in []models.TaskColumn) []models.TaskColumn {
	out := make([]models.TaskColumn, len(in))
	for i, c := range in {
		out[i] = c
		if c.Options != nil {
			out[i].Options = append([]string(nil), c.Options...)
		}
	}
	return out
}
