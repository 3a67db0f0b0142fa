package models

// ItemType is the menu section an item belongs to.
type ItemType string

const (
	ItemEntree ItemType = "entree"
	ItemSides  ItemType = "sides"
	ItemDrinks ItemType = "drinks"
)
