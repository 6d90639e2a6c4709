package services

import (
	"errors"
	"sync"
	"testing"

	"lvestimate/storage"
)

func firstFloorID(t *testing.T, s *EstimateStore) string {
	t.Helper()
	snap := s.Snapshot()
	if len(snap.Floors) == 0 {
		t.Fatal("estimate has no floors")
	}
	return snap.Floors[0].ID
}

func TestEstimateStore_Defaults(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	snap := s.Snapshot()

	if len(snap.Floors) != 1 || snap.Floors[0].Label != "Floor 1" {
		t.Fatalf("default floors = %+v, want one Floor 1", snap.Floors)
	}
	if snap.Project.ConstructionType != ConstructionGroundUp {
		t.Errorf("default construction = %q, want ground-up", snap.Project.ConstructionType)
	}
	if s.Restored() {
		t.Error("fresh store reports Restored()")
	}
}

func TestEstimateStore_AddStandardItemMerges(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	floorID := firstFloorID(t, s)

	for i := 0; i < 4; i++ {
		s.AddItem(floorID, ItemCamera, "", 0)
	}

	items := s.Snapshot().Floors[0].Items
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Qty != 4 {
		t.Errorf("qty = %d, want 4", items[0].Qty)
	}
	if items[0].CustomName != "" || items[0].CustomPrice != 0 {
		t.Errorf("standard item carries custom fields: %+v", items[0])
	}
}

func TestEstimateStore_AddCustomItemKeepsFirstPrice(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	floorID := firstFloorID(t, s)

	s.AddItem(floorID, ItemCustom, "Patch Panel", 75)
	s.AddItem(floorID, ItemCustom, "Patch Panel", 99)
	s.AddItem(floorID, ItemCustom, "Patch Panel", 120)
	s.AddItem(floorID, ItemCustom, "Rack", 300)

	items := s.Snapshot().Floors[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].CustomName != "Patch Panel" || items[0].Qty != 3 || items[0].CustomPrice != 75 {
		t.Errorf("patch panel = %+v, want qty 3 at 75", items[0])
	}
	if items[1].CustomName != "Rack" || items[1].Qty != 1 {
		t.Errorf("rack = %+v", items[1])
	}
}

func TestEstimateStore_DecrementRemovesAtZero(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	floorID := firstFloorID(t, s)

	s.AddItem(floorID, ItemData, "", 0)
	s.AddItem(floorID, ItemData, "", 0)
	itemID := s.Snapshot().Floors[0].Items[0].ID

	s.DecrementItem(floorID, itemID)
	if got := s.Snapshot().Floors[0].Items[0].Qty; got != 1 {
		t.Fatalf("qty after one decrement = %d, want 1", got)
	}

	s.DecrementItem(floorID, itemID)
	if items := s.Snapshot().Floors[0].Items; len(items) != 0 {
		t.Fatalf("item not removed at zero: %+v", items)
	}

	before := s.Snapshot()
	after := s.DecrementItem(floorID, itemID)
	if len(after.Floors[0].Items) != 0 || len(after.Floors) != len(before.Floors) {
		t.Errorf("decrement of a removed item changed the estimate: %+v", after)
	}
}

func TestEstimateStore_IncrementAndRemove(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	floorID := firstFloorID(t, s)

	s.AddItem(floorID, ItemSpeaker, "", 0)
	itemID := s.Snapshot().Floors[0].Items[0].ID

	s.IncrementItem(floorID, itemID)
	s.IncrementItem(floorID, itemID)
	if got := s.Snapshot().Floors[0].Items[0].Qty; got != 3 {
		t.Errorf("qty = %d, want 3", got)
	}

	s.RemoveItem(floorID, itemID)
	if items := s.Snapshot().Floors[0].Items; len(items) != 0 {
		t.Errorf("RemoveItem left %+v", items)
	}
}

func TestEstimateStore_UnknownIDsAreNoOps(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	floorID := firstFloorID(t, s)
	s.AddItem(floorID, ItemCamera, "", 0)
	before := s.Snapshot()

	s.AddItem("missing", ItemCamera, "", 0)
	s.IncrementItem(floorID, "missing")
	s.DecrementItem("missing", "missing")
	s.RemoveItem(floorID, "missing")
	s.RemoveFloor("missing", true)
	s.UpdateFloorLabel("missing", "Roof")
	s.RemoveAttachment(5)
	s.RemoveAttachment(-1)

	after := s.Snapshot()
	if len(after.Floors) != 1 || len(after.Floors[0].Items) != 1 || after.Floors[0].Items[0].Qty != before.Floors[0].Items[0].Qty {
		t.Errorf("unknown ids changed the estimate: before %+v after %+v", before, after)
	}
}

func TestEstimateStore_Floors(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())

	s.AddFloor()
	est := s.AddFloor()
	if len(est.Floors) != 3 {
		t.Fatalf("expected 3 floors, got %d", len(est.Floors))
	}
	if est.Floors[1].Label != "Floor 2" || est.Floors[2].Label != "Floor 3" {
		t.Errorf("labels = %q, %q", est.Floors[1].Label, est.Floors[2].Label)
	}
	if est.Floors[1].ID == est.Floors[2].ID {
		t.Error("new floors share an id")
	}

	est = s.UpdateFloorLabel(est.Floors[1].ID, "Mezzanine")
	if est.Floors[1].Label != "Mezzanine" {
		t.Errorf("label = %q, want Mezzanine", est.Floors[1].Label)
	}

	est, removed, err := s.RemoveFloor(est.Floors[0].ID, false)
	if err != nil || removed == nil || removed.Label != "Floor 1" {
		t.Fatalf("RemoveFloor() = %+v, %v", removed, err)
	}
	if len(est.Floors) != 2 || est.Floors[0].Label != "Mezzanine" {
		t.Errorf("after remove floors = %+v", est.Floors)
	}

	// Labels count existing floors, not a running sequence.
	est = s.AddFloor()
	if est.Floors[2].Label != "Floor 3" {
		t.Errorf("label after remove = %q, want Floor 3", est.Floors[2].Label)
	}
}

func TestEstimateStore_UpdateProject(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())

	addr := "9 Elm St"
	s.UpdateProject(ProjectUpdate{Address: &addr})
	existing := ConstructionExisting
	est := s.UpdateProject(ProjectUpdate{ConstructionType: &existing})

	if est.Project.Address != "9 Elm St" {
		t.Errorf("address = %q, partial update lost it", est.Project.Address)
	}
	if est.Project.ConstructionType != ConstructionExisting {
		t.Errorf("construction = %q", est.Project.ConstructionType)
	}
}

func TestEstimateStore_Attachments(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())

	s.AddAttachments([]Attachment{{Name: "a.pdf", Size: 10}, {Name: "b.png", Size: 20}})
	est := s.AddAttachments([]Attachment{{Name: "c.dwg", Size: 30}})
	if len(est.Attachments) != 3 {
		t.Fatalf("expected 3 attachments, got %d", len(est.Attachments))
	}

	est = s.RemoveAttachment(1)
	if len(est.Attachments) != 2 || est.Attachments[0].Name != "a.pdf" || est.Attachments[1].Name != "c.dwg" {
		t.Errorf("after remove = %+v", est.Attachments)
	}
}

func TestEstimateStore_SnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	floorID := firstFloorID(t, s)
	s.AddItem(floorID, ItemCamera, "", 0)

	snap := s.Snapshot()
	snap.Floors[0].Items[0].Qty = 99
	snap.Floors[0].Label = "changed"

	again := s.Snapshot()
	if again.Floors[0].Items[0].Qty != 1 || again.Floors[0].Label != "Floor 1" {
		t.Errorf("mutating a snapshot leaked into the store: %+v", again.Floors[0])
	}
}

func TestEstimateStore_PersistsEveryChange(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := newTestStore(t, kv)
	floorID := firstFloorID(t, s)

	s.AddItem(floorID, ItemIntercom, "", 0)

	reloaded := newTestPersistence(t, kv).LoadEstimate()
	if reloaded == nil {
		t.Fatal("nothing persisted")
	}
	if len(reloaded.Floors[0].Items) != 1 || reloaded.Floors[0].Items[0].Type != ItemIntercom {
		t.Errorf("persisted estimate = %+v", reloaded)
	}
}

func TestEstimateStore_RestoredFlag(t *testing.T) {
	kv := storage.NewMemoryKV()
	first := newTestStore(t, kv)
	first.AddItem(firstFloorID(t, first), ItemCamera, "", 0)

	second := newTestStore(t, kv)
	if !second.Restored() {
		t.Fatal("store over a saved estimate with items should report Restored()")
	}
	second.DismissRestored()
	if second.Restored() {
		t.Error("DismissRestored did not clear the flag")
	}

	third := newTestStore(t, kv)
	if _, err := third.NewEstimate(false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("NewEstimate(false) over content error = %v, want ErrConfirmationRequired", err)
	}
	if !third.Restored() {
		t.Error("refused NewEstimate cleared the flag")
	}
	est, err := third.NewEstimate(true)
	if err != nil {
		t.Fatalf("NewEstimate(true) error = %v", err)
	}
	if third.Restored() {
		t.Error("NewEstimate did not clear the flag")
	}
	if len(est.Floors) != 1 || len(est.Floors[0].Items) != 0 || est.Project.Address != "" {
		t.Errorf("NewEstimate = %+v, want blank default", est)
	}
}

func TestEstimateStore_RemoveFloorWithItemsNeedsConfirmation(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	floorID := firstFloorID(t, s)
	s.AddItem(floorID, ItemCamera, "", 0)

	est, floor, err := s.RemoveFloor(floorID, false)
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("RemoveFloor(false) error = %v, want ErrConfirmationRequired", err)
	}
	if floor == nil || floor.ID != floorID || len(est.Floors) != 1 {
		t.Errorf("refused remove returned floor %+v, estimate %+v", floor, est)
	}

	est, floor, err = s.RemoveFloor(floorID, true)
	if err != nil || floor == nil || len(est.Floors) != 0 {
		t.Errorf("RemoveFloor(true) = %+v, %+v, %v", est, floor, err)
	}

	if _, floor, err := s.RemoveFloor("missing", false); err != nil || floor != nil {
		t.Errorf("RemoveFloor(missing) = %+v, %v, want nil, nil", floor, err)
	}
}

func TestEstimateStore_NewEstimateWithoutContentNeedsNoConfirmation(t *testing.T) {
	s := newTestStore(t, storage.NewMemoryKV())
	if _, err := s.NewEstimate(false); err != nil {
		t.Errorf("NewEstimate(false) on a blank estimate error = %v", err)
	}
}

// An unconfirmed remove racing item adds must never drop a floor that had
// items when it was removed.
func TestEstimateStore_RemoveFloorChecksItemsUnderLock(t *testing.T) {
	for round := 0; round < 50; round++ {
		s := newTestStore(t, storage.NewMemoryKV())
		floorID := firstFloorID(t, s)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AddItem(floorID, ItemCamera, "", 0)
		}()
		var removed *Floor
		var err error
		go func() {
			defer wg.Done()
			_, removed, err = s.RemoveFloor(floorID, false)
		}()
		wg.Wait()

		after := s.Snapshot()
		switch {
		case errors.Is(err, ErrConfirmationRequired):
			if len(after.Floors) != 1 || len(after.Floors[0].Items) != 1 {
				t.Fatalf("refused remove changed the estimate: %+v", after)
			}
		case err == nil:
			if removed == nil || len(removed.Items) != 0 || len(after.Floors) != 0 {
				t.Fatalf("removed floor %+v, estimate after %+v", removed, after)
			}
		default:
			t.Fatalf("RemoveFloor() error = %v", err)
		}
	}
}

func TestEstimateStore_EmptySavedEstimateIsNotRestored(t *testing.T) {
	kv := storage.NewMemoryKV()
	first := newTestStore(t, kv)
	first.AddFloor()

	if newTestStore(t, kv).Restored() {
		t.Error("estimate without address or items should not count as restored")
	}
}

func TestEstimateStore_SaveFailureKeepsMemoryState(t *testing.T) {
	kv := storage.NewMemoryKV().WithQuota(64)
	s := newTestStore(t, kv)
	floorID := firstFloorID(t, s)

	est := s.AddItem(floorID, ItemCustom, "A very long custom item name that will not fit in the quota", 10)
	if len(est.Floors[0].Items) != 1 {
		t.Fatalf("in-memory change lost after failed save: %+v", est)
	}
	if _, err := kv.Get(KeyEstimate); err == nil {
		t.Error("expected nothing stored under a 64 byte quota")
	}
}
