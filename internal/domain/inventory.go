package domain

// InventoryItem is a single stock record. Items are loaded once at startup
// and never mutated or persisted back.
type InventoryItem struct {
	ItemID      string `json:"item_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	LastUpdated string `json:"last_updated"`
}
