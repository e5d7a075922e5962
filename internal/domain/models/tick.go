package models

// Tick is one live trade print from the streaming price feed.
type Tick struct {
	Symbol    string
	Timestamp int64 // unix seconds
	Price     float64
	Volume    float64
}
