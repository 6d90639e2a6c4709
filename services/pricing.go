// Package services provides pricing, persistence and export functions for
// low-voltage estimates.
package services

// UnitPrice returns the price of one unit of item: its own price for Custom
// items, the catalog price otherwise (0 when the type is not in the catalog).
func UnitPrice(item Item, prices PriceList) float64 {
	if item.Type == ItemCustom {
		return item.CustomPrice
	}
	return prices[item.Type]
}

func CalcLineTotal(item Item, prices PriceList) float64 {
	return UnitPrice(item, prices) * float64(item.Qty)
}

func CalcFloorTotal(floor Floor, prices PriceList) float64 {
	var sum float64
	for _, item := range floor.Items {
		sum += CalcLineTotal(item, prices)
	}
	return sum
}

func CalcGrandTotal(est Estimate, prices PriceList) float64 {
	var sum float64
	for _, floor := range est.Floors {
		sum += CalcFloorTotal(floor, prices)
	}
	return sum
}

type FloorTotal struct {
	FloorID string  `json:"floorId"`
	Label   string  `json:"label"`
	Total   float64 `json:"total"`
}

type EstimateTotals struct {
	Floors     []FloorTotal `json:"floors"`
	GrandTotal float64      `json:"grandTotal"`
}

func CalcEstimateTotals(est Estimate, prices PriceList) EstimateTotals {
	totals := EstimateTotals{Floors: make([]FloorTotal, 0, len(est.Floors))}
	for _, floor := range est.Floors {
		ft := CalcFloorTotal(floor, prices)
		totals.Floors = append(totals.Floors, FloorTotal{FloorID: floor.ID, Label: floor.Label, Total: ft})
		totals.GrandTotal += ft
	}
	return totals
}

// PaymentMilestone is one installment of the proposal's payment schedule.
type PaymentMilestone struct {
	Label   string
	Percent float64
	Amount  float64
	Note    string
}

var paymentSchedule = []PaymentMilestone{
	{Label: "Deposit (50%)", Percent: 50, Note: "Due upon signing - hardware procurement & project mobilization."},
	{Label: "Progress Payment: Rough-In (30%)", Percent: 30, Note: "Due upon completion of all physical cabling & infrastructure."},
	{Label: "Progress Payment: Equipment & Programming (15%)", Percent: 15, Note: "Due upon hardware installation & system configuration."},
	{Label: "Final Retainage (5%)", Percent: 5, Note: "Due upon final system testing, client training, and handover of all documentation."},
}

// CalcPaymentSchedule splits grandTotal into the four proposal milestones.
func CalcPaymentSchedule(grandTotal float64) []PaymentMilestone {
	out := make([]PaymentMilestone, len(paymentSchedule))
	for i, ms := range paymentSchedule {
		ms.Amount = grandTotal * ms.Percent / 100
		out[i] = ms
	}
	return out
}
