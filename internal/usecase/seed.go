package usecase

import (
	"time"

	"pilotbase-logbook/internal/domain/entity"
)

// DemoFlights returns the demonstration logbook used when nothing has been
// persisted yet. Each call returns fresh values.
func DemoFlights() []entity.FlightRecord {
	at := func(s string) *time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return &t
	}
	minutes := func(m int) *int { return &m }

	return []entity.FlightRecord{
		{
			ID:                   "demo-1",
			Identifier:           "N738SP",
			Registration:         "N738SP",
			AircraftType:         "C172",
			AircraftManufacturer: "Cessna",
			AircraftModel:        "172S Skyhawk",
			Origin:               &entity.Airport{Code: "KPAO", City: "Palo Alto"},
			Destination:          &entity.Airport{Code: "KPAO", City: "Palo Alto"},
			ScheduledOut:         at("2025-03-04T16:00:00Z"),
			ScheduledIn:          at("2025-03-04T17:18:00Z"),
			DurationMinutes:      minutes(78),
			FlightTimes: entity.FlightTimes{
				TotalTime:       "1.3",
				DualReceived:    "1.3",
				DayDualReceived: "1.3",
				Ground:          "0.5",
			},
			Landings:    entity.Landings{DayLandings: "5", DayDualLandings: "5"},
			Instructor:  "Maria Lopez",
			Student:     "Sam Patel",
			Remarks:     "Pattern work, crosswind landings runway 31.",
			Status:      entity.StatusCompleted,
			AddedByRole: entity.RoleInstructor,
			Lesson: &entity.LessonGrade{
				Objectives: []string{"Crosswind landings", "Go-around"},
				Grades:     map[string]string{"Crosswind landings": "3", "Go-around": "4"},
				Notes:      "Ready for first solo after one more pattern lesson.",
			},
		},
		{
			ID:                   "demo-2",
			Identifier:           "N52481",
			Registration:         "N52481",
			AircraftType:         "P28A",
			AircraftManufacturer: "Piper",
			AircraftModel:        "PA-28-161 Warrior II",
			Origin:               &entity.Airport{Code: "KPAO", City: "Palo Alto"},
			Destination:          &entity.Airport{Code: "KHAF", City: "Half Moon Bay"},
			ScheduledOut:         at("2025-03-11T15:30:00Z"),
			ScheduledIn:          at("2025-03-11T17:00:00Z"),
			DurationMinutes:      minutes(90),
			Instructor:           "Maria Lopez",
			Student:              "Sam Patel",
			Status:               entity.StatusScheduled,
			AddedByRole:          entity.RoleStudent,
			ReservationID:        "res-1001",
		},
		{
			ID:                   "demo-3",
			Identifier:           "N738SP",
			Registration:         "N738SP",
			AircraftType:         "C172",
			AircraftManufacturer: "Cessna",
			AircraftModel:        "172S Skyhawk",
			Origin:               &entity.Airport{Code: "KPAO", City: "Palo Alto"},
			Destination:          &entity.Airport{Code: "KMRY", City: "Monterey"},
			ScheduledOut:         at("2025-02-20T18:00:00Z"),
			ScheduledIn:          at("2025-02-20T19:06:00Z"),
			DurationMinutes:      minutes(66),
			FlightTimes: entity.FlightTimes{
				TotalTime:        "1.1",
				PIC:              "1.1",
				Solo:             "1.1",
				CrossCountry:     "1.1",
				DaySolo:          "1.1",
				SoloCrossCountry: "1.1",
			},
			Landings:    entity.Landings{DayLandings: "2", DaySoloLandings: "2"},
			Student:     "Sam Patel",
			Remarks:     "Solo cross-country, full stop at KMRY.",
			Status:      entity.StatusCompleted,
			AddedByRole: entity.RoleStudent,
		},
		{
			ID:                   "demo-4",
			Identifier:           "N9124R",
			Registration:         "N9124R",
			AircraftType:         "SR20",
			AircraftManufacturer: "Cirrus",
			AircraftModel:        "SR20 G6",
			Origin:               &entity.Airport{Code: "KSQL", City: "San Carlos"},
			Destination:          &entity.Airport{Code: "KSQL", City: "San Carlos"},
			ScheduledOut:         at("2025-03-15T17:00:00Z"),
			DurationMinutes:      minutes(45),
			Instructor:           "Dev Okafor",
			Remarks:              "Discovery flight.",
			Status:               entity.StatusScheduled,
			AddedByRole:          entity.RoleProspective,
			ReservationID:        "res-1002",
		},
	}
}
