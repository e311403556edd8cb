package postgres

import "time"

// OrderModel - Database representation
type OrderModel struct {
	ID               string
	OwnerEmail       string
	Items            []byte
	AmountCents      int64
	Currency         string
	Status           string
	PaymentReference *string
	CreatedAt        time.Time
	PaidAt           *time.Time
}

type UserModel struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type ProductModel struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	CreatedAt   time.Time
}
