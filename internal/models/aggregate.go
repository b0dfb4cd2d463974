package models

// OrderDetailItem is one priced line of an OrderDetails view.
type OrderDetailItem struct {
	MealName  string  `json:"mealName"`
	Quantity  int     `json:"quantity"`
	MealPrice float64 `json:"mealPrice"`
	Remark    string  `json:"remark,omitempty"`
}

// OrderDetails is the denormalized view of one order. It is rebuilt on every
// request and never stored.
type OrderDetails struct {
	OrderID    string            `json:"orderId"`
	UserID     string            `json:"userId"`
	Status     OrderStatus       `json:"status"`
	Date       string            `json:"date"`
	ShopID     string            `json:"shopId"`
	ShopName   string            `json:"shopName"`
	Items      []OrderDetailItem `json:"items"`
	TotalPrice float64           `json:"totalPrice"`
}

// BalanceScope selects whether a balance is computed for a buyer or a shop.
type BalanceScope string

const (
	ScopeUser BalanceScope = "USER"
	ScopeShop BalanceScope = "SHOP"
)

// MealRevenue aggregates one meal across every order of a balance window.
type MealRevenue struct {
	MealID    string  `json:"mealId"`
	MealName  string  `json:"mealName"`
	MealPrice float64 `json:"mealPrice"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type BalanceResult struct {
	SubjectID string        `json:"subjectId"`
	Scope     BalanceScope  `json:"scope"`
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	Total     float64       `json:"total"`
	Breakdown []MealRevenue `json:"breakdown,omitempty"`
}
