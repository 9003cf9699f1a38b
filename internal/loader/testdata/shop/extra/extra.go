package extra

// Note is free text attached to an order.
type Note struct {
	Text string `json:"text"`
}
