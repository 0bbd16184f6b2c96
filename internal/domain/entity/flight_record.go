// internal/domain/entity/flight_record.go
package entity

import (
	"time"
)

// Airport is a route endpoint
type Airport struct {
	Code string `json:"code"`
	City string `json:"city,omitempty"`
}

// FlightTimes holds the logbook time columns as entered, e.g. "1.3".
// The store does not do arithmetic on them.
type FlightTimes struct {
	TotalTime           string `json:"totalTime,omitempty"`
	DualReceived        string `json:"dualReceived,omitempty"`
	PIC                 string `json:"pic,omitempty"`
	CrossCountry        string `json:"crossCountry,omitempty"`
	Night               string `json:"night,omitempty"`
	SimulatedInstrument string `json:"simulatedInstrument,omitempty"`
	Solo                string `json:"solo,omitempty"`
	ActualInstrument    string `json:"actualInstrument,omitempty"`
	Ground              string `json:"ground,omitempty"`

	DayDualReceived   string `json:"dayDualReceived,omitempty"`
	NightDualReceived string `json:"nightDualReceived,omitempty"`
	DaySolo           string `json:"daySolo,omitempty"`
	NightSolo         string `json:"nightSolo,omitempty"`
	DualCrossCountry  string `json:"dualCrossCountry,omitempty"`
	SoloCrossCountry  string `json:"soloCrossCountry,omitempty"`
	NightCrossCountry string `json:"nightCrossCountry,omitempty"`
}

// Landings holds landing counts as entered
type Landings struct {
	DayLandings       string `json:"dayLandings,omitempty"`
	NightLandings     string `json:"nightLandings,omitempty"`
	DayDualLandings   string `json:"dayDualLandings,omitempty"`
	NightDualLandings string `json:"nightDualLandings,omitempty"`
	DaySoloLandings   string `json:"daySoloLandings,omitempty"`
	NightSoloLandings string `json:"nightSoloLandings,omitempty"`
}

// LessonGrade is the instructor's grading of a lesson flight
type LessonGrade struct {
	Objectives []string          `json:"objectives,omitempty"`
	Grades     map[string]string `json:"grades,omitempty"` // task -> grade
	Notes      string            `json:"notes,omitempty"`
}

// FlightRecord is one logged or planned flight
type FlightRecord struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"` // flight or tail number

	Registration         string `json:"registration,omitempty"`
	AircraftType         string `json:"aircraftType,omitempty"`
	AircraftManufacturer string `json:"aircraftManufacturer,omitempty"`
	AircraftModel        string `json:"aircraftModel,omitempty"`

	Origin          *Airport   `json:"origin,omitempty"`
	Destination     *Airport   `json:"destination,omitempty"`
	ScheduledOut    *time.Time `json:"scheduledOut,omitempty"`
	ScheduledIn     *time.Time `json:"scheduledIn,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty"`

	FlightTimes
	Landings

	Instructor string   `json:"instructor,omitempty"`
	Student    string   `json:"student,omitempty"`
	Remarks    string   `json:"remarks,omitempty"`
	Photos     []string `json:"photos,omitempty"`
	Signature  string   `json:"signature,omitempty"`

	Status        Status       `json:"status,omitempty"`
	AddedByRole   Role         `json:"addedByRole,omitempty"`
	ReservationID string       `json:"reservationId,omitempty"`
	Lesson        *LessonGrade `json:"lesson,omitempty"`
}

// Clone returns a deep copy so callers can never share slices, maps or
// pointers with the store's collection.
func (r FlightRecord) Clone() FlightRecord {
	c := r
	if r.Origin != nil {
		o := *r.Origin
		c.Origin = &o
	}
	if r.Destination != nil {
		d := *r.Destination
		c.Destination = &d
	}
	if r.ScheduledOut != nil {
		t := *r.ScheduledOut
		c.ScheduledOut = &t
	}
	if r.ScheduledIn != nil {
		t := *r.ScheduledIn
		c.ScheduledIn = &t
	}
	if r.DurationMinutes != nil {
		m := *r.DurationMinutes
		c.DurationMinutes = &m
	}
	if r.Photos != nil {
		c.Photos = append([]string(nil), r.Photos...)
	}
	if r.Lesson != nil {
		l := *r.Lesson
		if r.Lesson.Objectives != nil {
			l.Objectives = append([]string(nil), r.Lesson.Objectives...)
		}
		if r.Lesson.Grades != nil {
			l.Grades = make(map[string]string, len(r.Lesson.Grades))
			for k, v := range r.Lesson.Grades {
				l.Grades[k] = v
			}
		}
		c.Lesson = &l
	}
	return c
}

// CloneRecords deep copies a slice of records
func CloneRecords(records []FlightRecord) []FlightRecord {
	out := make([]FlightRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
