package domain

// Provider supplies products.
type Provider struct {
	Record
	Name  string
	Email string
	Phone string
}
