package models

// Store is a location orders are placed against.
type Store struct {
	ID          int    `db:"storeID" json:"store_id"`
	Address     string `db:"address" json:"address"`
	City        string `db:"city" json:"city"`
	State       string `db:"state" json:"state"`
	IsOpen      string `db:"isOpen" json:"is_open"`
	ReviewScore string `db:"reviewScore" json:"review_score"`
}
