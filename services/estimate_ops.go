package services

import "fmt"

// The functions below are the estimate's transformations. Each takes a
// snapshot and returns a new one; the input is never modified. Ids that do
// not match anything leave the estimate unchanged.

func applyProjectUpdate(est Estimate, u ProjectUpdate) Estimate {
	out := est.Clone()
	if u.Address != nil {
		out.Project.Address = *u.Address
	}
	if u.ContactName != nil {
		out.Project.ContactName = *u.ContactName
	}
	if u.ContactPhone != nil {
		out.Project.ContactPhone = *u.ContactPhone
	}
	if u.ConstructionType != nil {
		out.Project.ConstructionType = *u.ConstructionType
	}
	return out
}

func addFloor(est Estimate, floorID string) Estimate {
	out := est.Clone()
	out.Floors = append(out.Floors, Floor{
		ID:    floorID,
		Label: fmt.Sprintf("Floor %d", len(est.Floors)+1),
		Items: []Item{},
	})
	return out
}

func removeFloor(est Estimate, floorID string) Estimate {
	out := est.Clone()
	floors := out.Floors[:0]
	for _, f := range out.Floors {
		if f.ID != floorID {
			floors = append(floors, f)
		}
	}
	out.Floors = floors
	return out
}

func setFloorLabel(est Estimate, floorID, label string) Estimate {
	out := est.Clone()
	if i := out.floorIndex(floorID); i >= 0 {
		out.Floors[i].Label = label
	}
	return out
}

// addItem merges by type for standard items and by (Custom, name) for custom
// items; a merge only bumps qty and never re-prices.
func addItem(est Estimate, floorID string, itemType ItemType, customName string, customPrice float64, itemID string) Estimate {
	out := est.Clone()
	fi := out.floorIndex(floorID)
	if fi < 0 {
		return out
	}
	floor := &out.Floors[fi]

	for i := range floor.Items {
		existing := &floor.Items[i]
		if existing.Type != itemType {
			continue
		}
		if itemType != ItemCustom || existing.CustomName == customName {
			existing.Qty++
			return out
		}
	}

	item := Item{ID: itemID, Type: itemType, Qty: 1}
	if itemType == ItemCustom {
		item.CustomName = customName
		item.CustomPrice = customPrice
	}
	floor.Items = append(floor.Items, item)
	return out
}

func changeItemQty(est Estimate, floorID, itemID string, delta int) Estimate {
	out := est.Clone()
	fi := out.floorIndex(floorID)
	if fi < 0 {
		return out
	}

	items := out.Floors[fi].Items[:0]
	for _, it := range out.Floors[fi].Items {
		if it.ID == itemID {
			it.Qty += delta
		}
		if it.Qty > 0 {
			items = append(items, it)
		}
	}
	out.Floors[fi].Items = items
	return out
}

func removeItem(est Estimate, floorID, itemID string) Estimate {
	out := est.Clone()
	fi := out.floorIndex(floorID)
	if fi < 0 {
		return out
	}

	items := out.Floors[fi].Items[:0]
	for _, it := range out.Floors[fi].Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	out.Floors[fi].Items = items
	return out
}

func addAttachments(est Estimate, files []Attachment) Estimate {
	out := est.Clone()
	out.Attachments = append(out.Attachments, files...)
	return out
}

func removeAttachment(est Estimate, index int) Estimate {
	out := est.Clone()
	if index < 0 || index >= len(out.Attachments) {
		return out
	}
	out.Attachments = append(out.Attachments[:index], out.Attachments[index+1:]...)
	return out
}
