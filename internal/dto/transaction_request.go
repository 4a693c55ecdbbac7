package dto

type CustomerDetailsRequest struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type ItemDetailRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity *int    `json:"quantity"`
}

type CreateTransactionRequest struct {
	OrderID         string                  `json:"order_id"`
	GrossAmount     float64                 `json:"gross_amount"`
	CustomerDetails *CustomerDetailsRequest `json:"customer_details"`
	ItemDetails     []ItemDetailRequest     `json:"item_details"`
}

type TransactionStatusRequest struct {
	OrderID string `json:"order_id"`
}
