package domain

type Brand struct {
	Record
	Name        string
	Description string
}
