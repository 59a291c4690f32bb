package domain

type Product struct {
	Record
	SKU         string
	Name        string
	Description string
	BrandID     string
	ProviderID  string
	PriceCents  int64
}
