package codec

import (
	"testing"
	"time"

	"pilotbase-logbook/internal/domain/entity"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "json", false},
		{"json", "json", false},
		{"msgpack", "msgpack", false},
		{"yaml", "", true},
	}
	for _, tc := range tests {
		c, err := ByName(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ByName(%q): expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ByName(%q): %v", tc.name, err)
		}
		if c.Name() != tc.want {
			t.Errorf("ByName(%q).Name() = %q, want %q", tc.name, c.Name(), tc.want)
		}
	}
}

func TestCodecsPreserveRecords(t *testing.T) {
	out := time.Date(2025, 5, 2, 15, 30, 0, 0, time.UTC)
	mins := 72
	records := []entity.FlightRecord{
		{
			ID:              "r1",
			Identifier:      "N738SP",
			Origin:          &entity.Airport{Code: "KPAO", City: "Palo Alto"},
			ScheduledOut:    &out,
			DurationMinutes: &mins,
			FlightTimes:     entity.FlightTimes{TotalTime: "1.2", DualReceived: "1.2"},
			Landings:        entity.Landings{DayLandings: "4"},
			AddedByRole:     entity.RoleStudent,
			Status:          entity.StatusCompleted,
			Lesson:          &entity.LessonGrade{Grades: map[string]string{"slow flight": "3"}},
		},
		{ID: "r2", Identifier: "UA123"},
	}

	for _, c := range []Codec{JSON{}, Msgpack{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(records)
			if err != nil {
				t.Fatal(err)
			}
			var got []entity.FlightRecord
			if err := c.Unmarshal(data, &got); err != nil {
				t.Fatal(err)
			}
			if len(got) != 2 {
				t.Fatalf("got %d records, want 2", len(got))
			}
			r := got[0]
			if r.ID != "r1" || r.Origin == nil || r.Origin.City != "Palo Alto" {
				t.Errorf("record = %+v", r)
			}
			if r.ScheduledOut == nil || !r.ScheduledOut.Equal(out) {
				t.Errorf("scheduledOut = %v, want %v", r.ScheduledOut, out)
			}
			if r.TotalTime != "1.2" || r.DayLandings != "4" {
				t.Errorf("embedded columns lost: %+v", r)
			}
			if r.AddedByRole != entity.RoleStudent || r.Status != entity.StatusCompleted {
				t.Errorf("enums = %q/%q", r.AddedByRole, r.Status)
			}
			if r.Lesson == nil || r.Lesson.Grades["slow flight"] != "3" {
				t.Errorf("lesson = %+v", r.Lesson)
			}
		})
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	var got []entity.FlightRecord
	if err := (JSON{}).Unmarshal([]byte("{not json"), &got); err == nil {
		t.Error("json: expected error")
	}
	if err := (Msgpack{}).Unmarshal([]byte{0xc1}, &got); err == nil {
		t.Error("msgpack: expected error")
	}
}
