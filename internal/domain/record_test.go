package domain

import (
	"encoding/json"
	"testing"
)

func TestParseStatus(t *testing.T) {
	if got := ParseStatus("medium"); got != StatusMedium {
		t.Fatalf("ParseStatus(medium) = %q", got)
	}
	if got := ParseStatus("high"); got != StatusHigh {
		t.Fatalf("ParseStatus(high) = %q", got)
	}
	if got := ParseStatus(""); got != StatusLow {
		t.Fatalf("ParseStatus(empty) = %q, want low", got)
	}
	if got := ParseStatus("urgent"); got != StatusLow {
		t.Fatalf("ParseStatus(unknown) = %q, want low", got)
	}
}

func TestStatusUnmarshalNormalizes(t *testing.T) {
	var rec DeliveryRecord
	raw := `{"id":"r1","sourceFilename":"a.pdf","status":"critical"}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != StatusLow {
		t.Fatalf("status = %q, want low", rec.Status)
	}
}

func TestOptionalFieldsDecodeToNil(t *testing.T) {
	// Explicit null and omitted key must both come back as nil.
	explicit := `{"id":"r1","zrd":null,"contact":null,"address":null,"lat":null,"lon":null}`
	omitted := `{"id":"r2"}`

	for _, raw := range []string{explicit, omitted} {
		var rec DeliveryRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.ZRD != nil || rec.Contact != nil || rec.Address != nil {
			t.Fatalf("expected nil fields, got %+v", rec)
		}
		if rec.Placed() {
			t.Fatalf("record %s should not be placed", rec.ID)
		}
	}
}

func TestSetCoordinatesFirstWriteWins(t *testing.T) {
	rec := DeliveryRecord{ID: "r1"}

	if ok := rec.SetCoordinates(48.137, 11.575); !ok {
		t.Fatal("first write rejected")
	}
	if !rec.Placed() {
		t.Fatal("record not placed after first write")
	}

	if ok := rec.SetCoordinates(52.52, 13.405); ok {
		t.Fatal("second write accepted")
	}
	if *rec.Lat != 48.137 || *rec.Lon != 11.575 {
		t.Fatalf("coordinates overwritten: lat=%v lon=%v", *rec.Lat, *rec.Lon)
	}
}
