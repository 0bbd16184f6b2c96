package utils

import (
	"regexp"
	"strings"
)

var (
	// US registrations: N, a non-zero digit, up to four more digits, up to two letters (no I or O)
	usTailRegex = regexp.MustCompile(`^N[1-9][0-9]{0,4}[A-HJ-NP-Z]{0,2}$`)
	// ICAO style registrations with a nationality prefix, e.g. G-ABCD, VH-ZXA, C-FGKT
	icaoTailRegex = regexp.MustCompile(`^[A-Z0-9]{1,2}-[A-Z0-9]{3,5}$`)
	// IATA designator + number, e.g. UA123, B61234, 9W404
	iataFlightRegex = regexp.MustCompile(`^([A-Z][A-Z0-9]|[0-9][A-Z])[0-9]{1,4}[A-Z]?$`)
	// ICAO designator + number, e.g. SWA1234
	icaoFlightRegex = regexp.MustCompile(`^[A-Z]{3}[0-9]{1,4}[A-Z]?$`)
)

// NormalizeIdentifier upper-cases s and drops whitespace
func NormalizeIdentifier(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// ClassifyIdentifier distinguishes an aircraft tail number from an airline
// flight number. Tail numbers are checked first since N12345 also looks
// like a flight number.
func ClassifyIdentifier(s string) IdentifierKind {
	id := NormalizeIdentifier(s)
	if id == "" {
		return Unknown
	}

	// US N-numbers are at most six characters long
	if usTailRegex.MatchString(id) && len(id) <= 6 {
		return TailNumber
	}
	if icaoTailRegex.MatchString(id) {
		return TailNumber
	}
	if iataFlightRegex.MatchString(id) || icaoFlightRegex.MatchString(id) {
		return FlightNumber
	}
	return Unknown
}
