package checkout

import "time"

type ItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type InitiateRequest struct {
	// Reference is optional; the server derives one when it is empty.
	Reference string        `json:"reference" binding:"omitempty,max=64"`
	Customer  Customer      `json:"customer"`
	Items     []ItemRequest `json:"items" binding:"dive"`
}

type ConfirmRequest struct {
	Reference string        `json:"reference" binding:"required,max=64"`
	Customer  Customer      `json:"customer"`
	Items     []ItemRequest `json:"items" binding:"dive"`
}

type ConfirmResult struct {
	Reference string `json:"reference"`
	Summary   string `json:"summary"`
	DeepLink  string `json:"deepLink"`
}

// ConfirmedEvent is the CHECKOUT_CONFIRMED outbox payload.
type ConfirmedEvent struct {
	Reference      string    `json:"reference"`
	Customer       Customer  `json:"customer"`
	Items          []Item    `json:"items"`
	Total          float64   `json:"total"`
	TotalFormatted string    `json:"totalFormatted"`
	Summary        string    `json:"summary"`
	DeepLink       string    `json:"deepLink"`
	ConfirmedAt    time.Time `json:"confirmedAt"`
}

// RequestItems turns priced items back into the wire shape.
func RequestItems(items []Item) []ItemRequest {
	out := make([]ItemRequest, 0, len(items))
	for _, it := range items {
		out = append(out, ItemRequest{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
		})
	}
	return out
}
