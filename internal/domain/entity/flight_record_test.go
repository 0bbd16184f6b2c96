package entity

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCloneIsDeep(t *testing.T) {
	out := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	mins := 90
	orig := FlightRecord{
		ID:              "a",
		Identifier:      "N12345",
		Origin:          &Airport{Code: "KPAO", City: "Palo Alto"},
		ScheduledOut:    &out,
		DurationMinutes: &mins,
		Photos:          []string{"p1"},
		Lesson: &LessonGrade{
			Objectives: []string{"steep turns"},
			Grades:     map[string]string{"steep turns": "3"},
		},
	}

	c := orig.Clone()
	c.Origin.Code = "KSQL"
	*c.ScheduledOut = out.Add(time.Hour)
	*c.DurationMinutes = 10
	c.Photos[0] = "changed"
	c.Lesson.Objectives[0] = "changed"
	c.Lesson.Grades["steep turns"] = "1"

	if orig.Origin.Code != "KPAO" {
		t.Errorf("origin shared: %q", orig.Origin.Code)
	}
	if !orig.ScheduledOut.Equal(out) {
		t.Errorf("scheduledOut shared: %v", orig.ScheduledOut)
	}
	if *orig.DurationMinutes != 90 {
		t.Errorf("durationMinutes shared: %d", *orig.DurationMinutes)
	}
	if orig.Photos[0] != "p1" {
		t.Errorf("photos shared: %v", orig.Photos)
	}
	if orig.Lesson.Objectives[0] != "steep turns" || orig.Lesson.Grades["steep turns"] != "3" {
		t.Errorf("lesson shared: %+v", orig.Lesson)
	}
}

func TestFlightRecordJSONShape(t *testing.T) {
	r := FlightRecord{
		ID:          "id-1",
		Identifier:  "N999XY",
		FlightTimes: FlightTimes{TotalTime: "1.2", PIC: "1.2"},
		Landings:    Landings{DayLandings: "3"},
		AddedByRole: RoleStudent,
		Status:      StatusDraft,
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"totalTime":"1.2"`, `"dayLandings":"3"`, `"addedByRole":"student"`, `"status":"draft"`} {
		if !strings.Contains(s, want) {
			t.Errorf("json %s missing %s", s, want)
		}
	}
	if strings.Contains(s, "reservationId") {
		t.Errorf("empty reservationId should be omitted: %s", s)
	}

	var back FlightRecord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.TotalTime != "1.2" || back.AddedByRole != RoleStudent || back.Status != StatusDraft {
		t.Errorf("round trip = %+v", back)
	}
}

func TestUnknownEnumsRejected(t *testing.T) {
	var r FlightRecord
	if err := json.Unmarshal([]byte(`{"id":"x","addedByRole":"captain"}`), &r); err == nil {
		t.Error("expected error for unknown role")
	}
	if err := json.Unmarshal([]byte(`{"id":"x","status":"sheduled"}`), &r); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := json.Unmarshal([]byte(`{"id":"x","addedByRole":"Instructor","status":"COMPLETED"}`), &r); err != nil {
		t.Fatalf("case-insensitive values should parse: %v", err)
	}
	if r.AddedByRole != RoleInstructor || r.Status != StatusCompleted {
		t.Errorf("parsed = %q/%q", r.AddedByRole, r.Status)
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range Roles {
		got, err := ParseRole(string(role))
		if err != nil || got != role {
			t.Errorf("ParseRole(%q) = %q, %v", role, got, err)
		}
	}
	if _, err := ParseRole(""); err == nil {
		t.Error("empty role should not parse")
	}
}
