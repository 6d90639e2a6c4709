package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/storage"
)

// MaxPayloadBytes caps a single persisted record. A header image larger than
// this is rejected by the save and the write is dropped.
const MaxPayloadBytes = 4 << 20

// Setup programmatically creates/ensures the kv_records collection that backs
// the estimator's persisted state exists.
func Setup(app core.App) {
	ensureCollection(app, storage.CollectionName, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "record_key", Required: true, Max: 64})
		c.Fields.Add(&core.TextField{Name: "payload", Max: MaxPayloadBytes})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_kv_records_record_key", true, "record_key", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
