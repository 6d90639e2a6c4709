package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrConfirmationRequired is returned when a destructive change would drop
// content and the caller has not confirmed it.
var ErrConfirmationRequired = errors.New("confirmation required")

// EstimateStore owns the single in-memory estimate. Every mutation replaces
// the snapshot with a transformed copy and persists it before returning.
type EstimateStore struct {
	mu       sync.Mutex
	persist  *Persistence
	newID    func() string
	current  Estimate
	restored bool
}

// NewEstimateStore loads the persisted estimate, falling back to a fresh
// default. Restored() reports true when the loaded estimate has content.
func NewEstimateStore(persist *Persistence) *EstimateStore {
	s := &EstimateStore{persist: persist, newID: uuid.NewString}

	if saved := persist.LoadEstimate(); saved != nil {
		s.current = *saved
		s.restored = len(saved.Floors) > 0 && saved.HasContent()
	} else {
		s.current = NewDefaultEstimate(s.newID())
	}
	return s
}

// Snapshot returns a deep copy of the current estimate.
func (s *EstimateStore) Snapshot() Estimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Restored reports whether the estimate came from a previous session and
// the notice has not been dismissed yet.
func (s *EstimateStore) Restored() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restored
}

func (s *EstimateStore) DismissRestored() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restored = false
}

func (s *EstimateStore) apply(fn func(Estimate) Estimate) Estimate {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = fn(s.current)
	s.persist.SaveEstimate(s.current)
	return s.current.Clone()
}

func (s *EstimateStore) UpdateProject(u ProjectUpdate) Estimate {
	return s.apply(func(e Estimate) Estimate { return applyProjectUpdate(e, u) })
}

func (s *EstimateStore) AddFloor() Estimate {
	id := s.newID()
	return s.apply(func(e Estimate) Estimate { return addFloor(e, id) })
}

// RemoveFloor deletes a floor. A floor that still has items is only removed
// when confirmed; otherwise ErrConfirmationRequired is returned and nothing
// changes. The returned floor is the one targeted, or nil for an unknown id.
func (s *EstimateStore) RemoveFloor(floorID string, confirmed bool) (Estimate, *Floor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	floor, ok := s.current.Floor(floorID)
	if ok && len(floor.Items) > 0 && !confirmed {
		return s.current.Clone(), &floor, ErrConfirmationRequired
	}

	s.current = removeFloor(s.current, floorID)
	s.persist.SaveEstimate(s.current)
	if !ok {
		return s.current.Clone(), nil, nil
	}
	return s.current.Clone(), &floor, nil
}

func (s *EstimateStore) UpdateFloorLabel(floorID, label string) Estimate {
	return s.apply(func(e Estimate) Estimate { return setFloorLabel(e, floorID, label) })
}

// AddItem adds one unit of itemType to the floor. customName and customPrice
// are only used for Custom items.
func (s *EstimateStore) AddItem(floorID string, itemType ItemType, customName string, customPrice float64) Estimate {
	id := s.newID()
	return s.apply(func(e Estimate) Estimate {
		return addItem(e, floorID, itemType, customName, customPrice, id)
	})
}

func (s *EstimateStore) IncrementItem(floorID, itemID string) Estimate {
	return s.apply(func(e Estimate) Estimate { return changeItemQty(e, floorID, itemID, 1) })
}

// DecrementItem lowers qty by one and drops the item when it reaches zero.
func (s *EstimateStore) DecrementItem(floorID, itemID string) Estimate {
	return s.apply(func(e Estimate) Estimate { return changeItemQty(e, floorID, itemID, -1) })
}

func (s *EstimateStore) RemoveItem(floorID, itemID string) Estimate {
	return s.apply(func(e Estimate) Estimate { return removeItem(e, floorID, itemID) })
}

func (s *EstimateStore) AddAttachments(files []Attachment) Estimate {
	return s.apply(func(e Estimate) Estimate { return addAttachments(e, files) })
}

func (s *EstimateStore) RemoveAttachment(index int) Estimate {
	return s.apply(func(e Estimate) Estimate { return removeAttachment(e, index) })
}

// NewEstimate discards the current estimate and clears the restored notice.
// An estimate with content is only discarded when confirmed; otherwise
// ErrConfirmationRequired is returned and nothing changes.
func (s *EstimateStore) NewEstimate(confirmed bool) (Estimate, error) {
	id := s.newID()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.HasContent() && !confirmed {
		return s.current.Clone(), ErrConfirmationRequired
	}
	s.current = NewDefaultEstimate(id)
	s.restored = false
	s.persist.SaveEstimate(s.current)
	return s.current.Clone(), nil
}
