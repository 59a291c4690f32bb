package domain

type Warehouse struct {
	Record
	Code    string
	Name    string
	Address string
}
