package services

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// ItemType names a line-item kind. Standard types are priced from the
// catalog; Custom items carry their own name and price.
type ItemType string

const (
	ItemIntercom    ItemType = "Intercom"
	ItemAccessPoint ItemType = "Access Point"
	ItemData        ItemType = "Data"
	ItemCamera      ItemType = "Camera"
	ItemSpeaker     ItemType = "Speaker"
	ItemCustom      ItemType = "Custom"
)

// StandardItemTypes lists the catalog-priced types in display order.
var StandardItemTypes = []ItemType{ItemIntercom, ItemAccessPoint, ItemData, ItemCamera, ItemSpeaker}

// ConstructionType describes the site condition of the project.
type ConstructionType string

const (
	ConstructionGroundUp ConstructionType = "ground-up"
	ConstructionExisting ConstructionType = "existing"
)

// Label returns the wording used on exported documents.
func (c ConstructionType) Label() string {
	if c == ConstructionGroundUp {
		return "Ground-Up / Open Walls"
	}
	return "Existing Construction"
}

type Project struct {
	Address          string           `json:"address"`
	ContactName      string           `json:"contactName"`
	ContactPhone     string           `json:"contactPhone"`
	ConstructionType ConstructionType `json:"constructionType"`
}

// ProjectUpdate is a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Address          *string
	ContactName      *string
	ContactPhone     *string
	ConstructionType *ConstructionType
}

type Item struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	CustomName  string   `json:"customName"`
	CustomPrice float64  `json:"customPrice"`
	Qty         int      `json:"qty"`
}

// UnmarshalJSON accepts customPrice as a number or a numeric string; anything
// else decodes to 0.
func (i *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	var raw struct {
		plain
		CustomPrice any `json:"customPrice"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode item: %w", err)
	}
	*i = Item(raw.plain)
	i.CustomPrice = cast.ToFloat64(raw.CustomPrice)
	return nil
}

// Name is the display name of the item.
func (i Item) Name() string {
	if i.Type == ItemCustom {
		if i.CustomName == "" {
			return "Custom Item"
		}
		return i.CustomName
	}
	return string(i.Type)
}

type Floor struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// DisplayLabel falls back to "Unnamed Floor" for a blank label.
func (f Floor) DisplayLabel() string {
	if f.Label == "" {
		return "Unnamed Floor"
	}
	return f.Label
}

// Attachment records a reference document by name and size only.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Estimate is the root document: project info, floors and attachments.
type Estimate struct {
	Project     Project      `json:"project"`
	Floors      []Floor      `json:"floors"`
	Attachments []Attachment `json:"attachments"`
}

// NewDefaultEstimate returns a blank estimate with a single "Floor 1".
func NewDefaultEstimate(floorID string) Estimate {
	return Estimate{
		Project: Project{ConstructionType: ConstructionGroundUp},
		Floors: []Floor{
			{ID: floorID, Label: "Floor 1", Items: []Item{}},
		},
		Attachments: []Attachment{},
	}
}

// Clone returns a deep copy sharing no slices with e.
func (e Estimate) Clone() Estimate {
	out := Estimate{
		Project:     e.Project,
		Floors:      make([]Floor, len(e.Floors)),
		Attachments: make([]Attachment, len(e.Attachments)),
	}
	for i, f := range e.Floors {
		items := make([]Item, len(f.Items))
		copy(items, f.Items)
		out.Floors[i] = Floor{ID: f.ID, Label: f.Label, Items: items}
	}
	copy(out.Attachments, e.Attachments)
	return out
}

// HasContent reports whether the estimate holds anything worth restoring:
// a project address or at least one item on any floor.
func (e Estimate) HasContent() bool {
	if e.Project.Address != "" {
		return true
	}
	for _, f := range e.Floors {
		if len(f.Items) > 0 {
			return true
		}
	}
	return false
}

func (e Estimate) floorIndex(floorID string) int {
	for i, f := range e.Floors {
		if f.ID == floorID {
			return i
		}
	}
	return -1
}

// Floor returns the floor with the given id.
func (e Estimate) Floor(floorID string) (Floor, bool) {
	i := e.floorIndex(floorID)
	if i < 0 {
		return Floor{}, false
	}
	return e.Floors[i], true
}
