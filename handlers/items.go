package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/services"
)

// HandleAddItem adds one unit of the submitted item type to a floor,
// merging with a matching item already there.
func HandleAddItem(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		floorID := e.Request.PathValue("floorId")
		itemType, _ := formValue(e, "type")
		customName, _ := formValue(e, "customName")
		customPrice, _ := formValue(e, "customPrice")
		input := services.ItemInput{
			Type:        services.ItemType(itemType),
			CustomName:  customName,
			CustomPrice: customPrice,
		}

		name, price, err := input.Parse()
		if err != nil {
			log.Printf("add_item: invalid input: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		return respondEstimate(e, ws, ws.Estimates.AddItem(floorID, input.Type, name, price))
	}
}

func HandleIncrementItem(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est := ws.Estimates.IncrementItem(e.Request.PathValue("floorId"), e.Request.PathValue("itemId"))
		return respondEstimate(e, ws, est)
	}
}

// HandleDecrementItem lowers qty by one; the item is dropped at zero.
func HandleDecrementItem(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est := ws.Estimates.DecrementItem(e.Request.PathValue("floorId"), e.Request.PathValue("itemId"))
		return respondEstimate(e, ws, est)
	}
}

func HandleRemoveItem(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		est := ws.Estimates.RemoveItem(e.Request.PathValue("floorId"), e.Request.PathValue("itemId"))
		return respondEstimate(e, ws, est)
	}
}
