package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identified is anything that carries a stable UUID.
type Identified interface {
	ID() uuid.UUID
}

// BaseEntity is the identity and audit stamps a planner record embeds by
// value. New stamps are UTC.
type BaseEntity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntityAt assigns a fresh UUID and sets both stamps to at.
func NewBaseEntityAt(at time.Time) BaseEntity {
	at = at.UTC()
	return BaseEntity{id: uuid.New(), createdAt: at, updatedAt: at}
}

// RehydrateBaseEntity restores identity and stamps read back from storage.
func RehydrateBaseEntity(id uuid.UUID, createdAt, updatedAt time.Time) BaseEntity {
	return BaseEntity{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

func (e BaseEntity) ID() uuid.UUID        { return e.id }
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// Touch moves the update stamp to now. It never moves it backwards.
func (e *BaseEntity) Touch() {
	if now := time.Now().UTC(); now.After(e.updatedAt) {
		e.updatedAt = now
	}
}

// SameAs reports whether other is the same record. Stamps are ignored.
func (e BaseEntity) SameAs(other Identified) bool {
	return other != nil && e.id == other.ID()
}
