package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
)

type (
	DB struct {
		student    *table[analytics.Student]
		skill      *table[analytics.Skill]
		assessment *table[analytics.Assessment]
		mastery    *masteryTable
		gap        *table[analytics.SkillGap]
		curriculum *table[analytics.CurriculumPlan]
		progress   *table[analytics.ProgressTracking]
		alert      *table[analytics.Alert]
	}

	// table keeps rows by id and remembers their insertion order.
	table[T any] struct {
		sync.RWMutex
		rows  map[string]*T
		order []string
	}

	masteryKey struct {
		studentID string
		skillID   string
	}

	// masteryTable additionally indexes skill mastery by (student, skill).
	// The index points at the first record stored for a pair.
	masteryTable struct {
		table[analytics.SkillMastery]
		byPair map[masteryKey]string
	}
)

var newID = uuid.NewString // mockable

func Open() (*DB, error) {
	db := &DB{
		student:    newTable[analytics.Student](),
		skill:      newTable[analytics.Skill](),
		assessment: newTable[analytics.Assessment](),
		mastery: &masteryTable{
			table:  table[analytics.SkillMastery]{rows: make(map[string]*analytics.SkillMastery)},
			byPair: make(map[masteryKey]string),
		},
		gap:        newTable[analytics.SkillGap](),
		curriculum: newTable[analytics.CurriculumPlan](),
		progress:   newTable[analytics.ProgressTracking](),
		alert:      newTable[analytics.Alert](),
	}
	return db, nil
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*T)}
}

// insert stores row under id. Callers must hold the write lock.
func (t *table[T]) insert(id string, row T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = &row
}

// query returns copies of the rows matching keep (all rows when keep is nil), in insertion order.
// Callers must hold the read lock.
func (t *table[T]) query(keep func(*T) bool) []T {
	rows := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if keep == nil || keep(row) {
			rows = append(rows, *row)
		}
	}
	return rows
}

func (t *table[T]) get(id string) (T, error) {
	t.RLock()
	defer t.RUnlock()

	if row, ok := t.rows[id]; ok {
		return *row, nil
	}
	var zero T
	return zero, analytics.ErrNotFound
}

func (t *table[T]) find(match func(*T) bool) (T, error) {
	t.RLock()
	defer t.RUnlock()

	for _, id := range t.order {
		if row := t.rows[id]; match(row) {
			return *row, nil
		}
	}
	var zero T
	return zero, analytics.ErrNotFound
}

func (t *table[T]) all(keep func(*T) bool) []T {
	t.RLock()
	defer t.RUnlock()
	return t.query(keep)
}

func (t *table[T]) count() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.rows)
}

// update applies fn to a copy of the row, then stores it.
func (t *table[T]) update(id string, fn func(*T)) (T, error) {
	t.Lock()
	defer t.Unlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, analytics.ErrNotFound
	}
	updated := *row
	fn(&updated)
	t.rows[id] = &updated
	return updated, nil
}
