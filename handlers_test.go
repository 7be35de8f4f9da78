package railbook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/railbook/itinerary-engine/catalog"
	"github.com/railbook/itinerary-engine/inventory"
	"github.com/railbook/itinerary-engine/itinerary"
	"github.com/railbook/itinerary-engine/timetable"
)

// setupTestEngine wires the handlers to an in-memory catalog with one
// overnight schedule between three stations.
func setupTestEngine(t *testing.T) {
	t.Helper()
	snap := catalog.NewSnapshot()
	for i, name := range []string{"Alpha", "Bravo", "Charlie"} {
		snap.AddStation(catalog.Station{ID: int64(i + 1), Name: name, LinePosition: i})
	}
	snap.AddTrack(catalog.Track{StationA: 1, StationB: 2, DistanceKm: 30})
	snap.AddTrack(catalog.Track{StationA: 2, StationB: 3, DistanceKm: 15})

	snap.AddSchedule(catalog.Schedule{ID: 1, TrainID: 7, TrainName: "SE7", Status: "Active"})
	snap.AddWaypoint(1, catalog.Waypoint{JourneyID: 1, StationID: 1, Arrival: "20:50:00", Departure: "20:55:00"})
	snap.AddWaypoint(1, catalog.Waypoint{JourneyID: 2, StationID: 2, Arrival: "23:10:00", Departure: "23:20:00"})
	snap.AddWaypoint(1, catalog.Waypoint{JourneyID: 3, StationID: 3, Arrival: "01:30:00"})

	snap.AddCoachType(catalog.CoachType{ID: 1, Label: "Soft seat", Price: 35000, Capacity: 56})
	snap.AddCoach(catalog.Coach{ID: 100, TrainID: 7, CoachTypeID: 1})

	arena := inventory.NewHoldArena(time.Minute)
	Setup(itinerary.NewService(snap, arena, timetable.Options{}), arena)
}

func get(t *testing.T, handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, handleHealth, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body healthResponse
	decodeBody(t, rec, &body)
	if body.Status != "ok" || body.Time == "" {
		t.Errorf("unexpected health body: %+v", body)
	}
}

func TestHandleItineraries(t *testing.T) {
	setupTestEngine(t)

	rec := get(t, handleItineraries, "/api/itineraries?from=1&to=3&date=2024-06-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Itineraries []itinerary.Option `json:"itineraries"`
	}
	decodeBody(t, rec, &body)
	if len(body.Itineraries) != 1 {
		t.Fatalf("expected 1 itinerary, got %d", len(body.Itineraries))
	}
	opt := body.Itineraries[0]
	if opt.TrainName != "SE7" {
		t.Errorf("TrainName = %s, want SE7", opt.TrainName)
	}
	if opt.ArrivalDate != "2024-06-02" {
		t.Errorf("ArrivalDate = %s, want 2024-06-02", opt.ArrivalDate)
	}
}

func TestHandleItineraries_BadRequests(t *testing.T) {
	setupTestEngine(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "missing from", target: "/api/itineraries?to=3&date=2024-06-01", status: http.StatusBadRequest},
		{name: "non-numeric from", target: "/api/itineraries?from=x&to=3&date=2024-06-01", status: http.StatusBadRequest},
		{name: "missing date", target: "/api/itineraries?from=1&to=3", status: http.StatusBadRequest},
		{name: "malformed date", target: "/api/itineraries?from=1&to=3&date=01-06-2024", status: http.StatusBadRequest},
		{name: "malformed notBefore", target: "/api/itineraries?from=1&to=3&date=2024-06-01&notBefore=9am", status: http.StatusBadRequest},
		{name: "same endpoints", target: "/api/itineraries?from=1&to=1&date=2024-06-01", status: http.StatusBadRequest},
		{name: "unknown station", target: "/api/itineraries?from=1&to=99&date=2024-06-01", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, handleItineraries, tt.target)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestHandleCoachLayout(t *testing.T) {
	setupTestEngine(t)

	rec := get(t, handleCoachLayout, "/api/coach-layout?type=Soft+seat&capacity=56")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	}
	decodeBody(t, rec, &body)
	if body.Rows != 4 || body.Cols != 14 {
		t.Errorf("layout = %dx%d, want 4x14", body.Rows, body.Cols)
	}

	if rec := get(t, handleCoachLayout, "/api/coach-layout?type=Soft+seat&capacity=0"); rec.Code != http.StatusBadRequest {
		t.Errorf("zero capacity: status = %d, want 400", rec.Code)
	}
	if rec := get(t, handleCoachLayout, "/api/coach-layout?type=Soft+seat"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing capacity: status = %d, want 400", rec.Code)
	}
}

func TestHandleAvailability(t *testing.T) {
	setupTestEngine(t)

	rec := get(t, handleAvailability, "/api/availability?coach=100&train=7&date=2024-06-01")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var body inventory.SeatMap
	decodeBody(t, rec, &body)
	if body.CoachID != 100 || len(body.Grid) != 4 {
		t.Errorf("unexpected seat map: coach %d, %d rows", body.CoachID, len(body.Grid))
	}

	if rec := get(t, handleAvailability, "/api/availability?train=7"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing coach: status = %d, want 400", rec.Code)
	}
	if rec := get(t, handleAvailability, "/api/availability?coach=999&train=7"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown coach: status = %d, want 404", rec.Code)
	}
	if rec := get(t, handleAvailability, "/api/availability?coach=100&train=7&date=bad"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad date: status = %d, want 400", rec.Code)
	}
}

func TestHandleFare(t *testing.T) {
	rec := get(t, handleFare, "/api/fare?distance=110&basePrice=35000")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Price int `json:"price"`
	}
	decodeBody(t, rec, &body)
	if body.Price != 107625 {
		t.Errorf("price = %d, want 107625", body.Price)
	}

	if rec := get(t, handleFare, "/api/fare?distance=110"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing basePrice: status = %d, want 400", rec.Code)
	}
	if rec := get(t, handleFare, "/api/fare?distance=far&basePrice=35000"); rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric distance: status = %d, want 400", rec.Code)
	}
}

func TestHandleHolds(t *testing.T) {
	setupTestEngine(t)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handleHolds(rec, httptest.NewRequest(http.MethodPost, "/api/holds", strings.NewReader(body)))
		return rec
	}

	rec := post(`{"coachId":100,"trainId":7,"seatNumber":12,"date":"2024-06-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var hold inventory.Hold
	decodeBody(t, rec, &hold)
	if hold.ID == "" || hold.SeatNumber != 12 {
		t.Errorf("unexpected hold: %+v", hold)
	}

	if rec := post(`{"coachId":100,"trainId":7,"seatNumber":12,"date":"2024-06-01"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate hold: status = %d, want 409", rec.Code)
	}
	if rec := post(`{"coachId":100,"trainId":7,"seatNumber":12}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing date: status = %d, want 400", rec.Code)
	}
	if rec := post(`not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}

	del := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handleHolds(rec, httptest.NewRequest(http.MethodDelete, target, nil))
		return rec
	}

	if rec := del("/api/holds?id=" + hold.ID); rec.Code != http.StatusNoContent {
		t.Errorf("release: status = %d, want 204", rec.Code)
	}
	if rec := del("/api/holds?id=" + hold.ID); rec.Code != http.StatusNotFound {
		t.Errorf("double release: status = %d, want 404", rec.Code)
	}
	if rec := del("/api/holds"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing id: status = %d, want 400", rec.Code)
	}

	if rec := get(t, handleHolds, "/api/holds"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status = %d, want 405", rec.Code)
	}
}
