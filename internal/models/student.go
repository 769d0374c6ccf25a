package models

// Declared student fields.
const (
	StudentFirstName = "firstName"
	StudentLastName  = "lastName"
	StudentYear      = "year"
)
