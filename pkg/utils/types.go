package utils

// IdentifierKind tells what a free-form flight identifier looks like
type IdentifierKind string

const (
	TailNumber   IdentifierKind = "tail_number"
	FlightNumber IdentifierKind = "flight_number"
	Unknown      IdentifierKind = "unknown"
)
