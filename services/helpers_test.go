package services

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"lvestimate/storage"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPersistence(t *testing.T, kv storage.KV) *Persistence {
	t.Helper()
	return NewPersistence(kv, discardLogger())
}

// newTestStore returns a store over kv whose generated ids are id-1, id-2, ...
func newTestStore(t *testing.T, kv storage.KV) *EstimateStore {
	t.Helper()
	s := NewEstimateStore(newTestPersistence(t, kv))
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

// sampleEstimate has two floors: Camera x2 plus a custom Patch Panel at 75 on
// the first, Intercom x1 and Speaker x3 on the second.
func sampleEstimate() Estimate {
	return Estimate{
		Project: Project{
			Address:          "123 Main St",
			ContactName:      "Dana Client",
			ContactPhone:     "555-0100",
			ConstructionType: ConstructionGroundUp,
		},
		Floors: []Floor{
			{ID: "f1", Label: "Ground", Items: []Item{
				{ID: "i1", Type: ItemCamera, Qty: 2},
				{ID: "i2", Type: ItemCustom, CustomName: "Patch Panel", CustomPrice: 75, Qty: 1},
			}},
			{ID: "f2", Label: "Second", Items: []Item{
				{ID: "i3", Type: ItemIntercom, Qty: 1},
				{ID: "i4", Type: ItemSpeaker, Qty: 3},
			}},
		},
		Attachments: []Attachment{{Name: "plan.pdf", Size: 2048}},
	}
}
