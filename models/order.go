package models

// OrderStatus is free text; new orders start as incomplete.
type OrderStatus string

const OrderStatusIncomplete OrderStatus = "incomplete"

// MaxStatusLen bounds a status string.
const MaxStatusLen = 50

// Order is the header row of one checkout.
type Order struct {
	ID         int64       `db:"orderID" json:"order_id"`
	Login      string      `db:"login" json:"login"`
	StoreID    int         `db:"storeID" json:"store_id"`
	TotalPrice string      `db:"totalPrice" json:"total_price"`
	PlacedAt   string      `db:"orderTimestamp" json:"order_timestamp"`
	Status     OrderStatus `db:"orderStatus" json:"order_status"`
}

// LineItem links an order to a purchased item. Quantity is at least 1.
type LineItem struct {
	OrderID  int64  `db:"orderID" json:"order_id"`
	ItemName string `db:"itemName" json:"item_name"`
	Quantity int    `db:"quantity" json:"quantity"`
}
