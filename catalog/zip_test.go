package catalog_test

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/railbook/itinerary-engine/catalog"
	"github.com/railbook/itinerary-engine/internal"
)

// buildSnapshotZip assembles an in-memory snapshot archive from file
// name -> CSV content pairs.
func buildSnapshotZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s in zip: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func minimalSnapshotZip(t *testing.T) []byte {
	t.Helper()
	return buildSnapshotZip(t, map[string]string{
		"stations.txt": "station_id,station_name,line_position\n" +
			"1,Alpha,0\n2,Bravo,1\n3,Charlie,2\n",
		"tracks.txt": "station1_id,station2_id,distance_km\n" +
			"1,2,30\n2,3,15.5\n",
		"schedules.txt": "schedule_id,train_id,train_name,status\n" +
			"1,7,SE7,Active\n2,8,SE8,Inactive\n",
		"journeys.txt": "journey_id,schedule_id,station_id,arrival_time,departure_time\n" +
			"1,1,1,08:00:00,08:05:00\n" +
			"2,1,2,09:00:00,09:05:00\n" +
			"3,1,3,10:00:00,\n" +
			"4,2,1,12:00:00,12:05:00\n" +
			"5,2,3,14:00:00,\n",
		"coach_types.txt": "coach_type_id,type,price,capacity\n" +
			"1,Soft seat,35000,56\n",
		"coaches.txt": "coach_id,train_id,coach_type_id\n" +
			"100,7,1\n",
		"tickets.txt": "coach_id,train_id,seat_number,departure_station_id,arrival_station_id,departure_time,departure_date,price\n" +
			"100,7,1,1,3,08:05:00,2024-06-01,35000\n",
	})
}

func TestNewSnapshotFromZipBytes(t *testing.T) {
	snap, err := catalog.NewSnapshotFromZipBytes(minimalSnapshotZip(t))
	if err != nil {
		t.Fatalf("NewSnapshotFromZipBytes failed: %v", err)
	}
	ctx := context.Background()

	stations, err := snap.Stations(ctx)
	if err != nil {
		t.Fatalf("Stations failed: %v", err)
	}
	if len(stations) != 3 {
		t.Fatalf("expected 3 stations, got %d", len(stations))
	}
	if stations[1].ID != 2 || stations[1].Name != "Bravo" {
		t.Errorf("unexpected station at position 1: %+v", stations[1])
	}

	tracks, err := snap.Tracks(ctx)
	if err != nil {
		t.Fatalf("Tracks failed: %v", err)
	}
	if len(tracks) != 2 || tracks[1].DistanceKm != 15.5 {
		t.Errorf("unexpected tracks: %+v", tracks)
	}

	waypoints, err := snap.Waypoints(ctx, 1)
	if err != nil {
		t.Fatalf("Waypoints failed: %v", err)
	}
	if len(waypoints) != 3 {
		t.Fatalf("expected 3 waypoints for schedule 1, got %d", len(waypoints))
	}
	if waypoints[2].Arrival != "10:00:00" || waypoints[2].Departure != "" {
		t.Errorf("unexpected terminal waypoint: %+v", waypoints[2])
	}

	ct, err := snap.CoachType(ctx, 1)
	if err != nil {
		t.Fatalf("CoachType failed: %v", err)
	}
	if ct.Label != "Soft seat" || ct.Price != 35000 || ct.Capacity != 56 {
		t.Errorf("unexpected coach type: %+v", ct)
	}

	tickets, err := snap.TicketsForTrain(ctx, 7)
	if err != nil {
		t.Fatalf("TicketsForTrain failed: %v", err)
	}
	if len(tickets) != 1 || tickets[0].DepartureDate != "2024-06-01" {
		t.Errorf("unexpected tickets: %+v", tickets)
	}
}

func TestSchedulesServing(t *testing.T) {
	snap, err := catalog.NewSnapshotFromZipBytes(minimalSnapshotZip(t))
	if err != nil {
		t.Fatalf("NewSnapshotFromZipBytes failed: %v", err)
	}
	ctx := context.Background()

	// Schedule 2 also links 1 and 3 but is not Active.
	schedules, err := snap.SchedulesServing(ctx, 1, 3, "")
	if err != nil {
		t.Fatalf("SchedulesServing failed: %v", err)
	}
	if len(schedules) != 1 || schedules[0].ID != 1 {
		t.Errorf("expected only the active schedule, got %+v", schedules)
	}

	// Departure 08:05 is before the cutoff.
	schedules, err = snap.SchedulesServing(ctx, 1, 3, "09:00:00")
	if err != nil {
		t.Fatalf("SchedulesServing failed: %v", err)
	}
	if len(schedules) != 0 {
		t.Errorf("expected no schedules past the cutoff, got %+v", schedules)
	}

	// Station 2 is not on schedule 2's journey.
	schedules, err = snap.SchedulesServing(ctx, 2, 3, "")
	if err != nil {
		t.Fatalf("SchedulesServing failed: %v", err)
	}
	if len(schedules) != 1 || schedules[0].ID != 1 {
		t.Errorf("expected only schedule 1 to serve 2->3, got %+v", schedules)
	}
}

func TestWaypoints_UnknownSchedule(t *testing.T) {
	snap := catalog.NewSnapshot()
	if _, err := snap.Waypoints(context.Background(), 42); !internal.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestSnapshotGobRoundTrip(t *testing.T) {
	snap, err := catalog.NewSnapshotFromZipBytes(minimalSnapshotZip(t))
	if err != nil {
		t.Fatalf("NewSnapshotFromZipBytes failed: %v", err)
	}

	data, err := catalog.SerializeSnapshot(snap)
	if err != nil {
		t.Fatalf("SerializeSnapshot failed: %v", err)
	}
	restored, err := catalog.DeserializeSnapshot(data)
	if err != nil {
		t.Fatalf("DeserializeSnapshot failed: %v", err)
	}

	ctx := context.Background()
	stations, _ := snap.Stations(ctx)
	restoredStations, _ := restored.Stations(ctx)
	if len(stations) != len(restoredStations) {
		t.Fatalf("station count changed: %d vs %d", len(stations), len(restoredStations))
	}
	for i := range stations {
		if stations[i] != restoredStations[i] {
			t.Errorf("station %d changed: %+v vs %+v", i, stations[i], restoredStations[i])
		}
	}

	waypoints, _ := restored.Waypoints(ctx, 1)
	if len(waypoints) != 3 {
		t.Errorf("expected 3 waypoints after round trip, got %d", len(waypoints))
	}
	if _, err := restored.CoachType(ctx, 1); err != nil {
		t.Errorf("coach type lost in round trip: %v", err)
	}
}

func TestSnapshotCacheFile(t *testing.T) {
	snap, err := catalog.NewSnapshotFromZipBytes(minimalSnapshotZip(t))
	if err != nil {
		t.Fatalf("NewSnapshotFromZipBytes failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.gob")
	if err := catalog.SerializeSnapshotToFile(snap, path); err != nil {
		t.Fatalf("SerializeSnapshotToFile failed: %v", err)
	}
	restored, err := catalog.DeserializeSnapshotFromFile(path)
	if err != nil {
		t.Fatalf("DeserializeSnapshotFromFile failed: %v", err)
	}
	tickets, _ := restored.TicketsForTrain(context.Background(), 7)
	if len(tickets) != 1 {
		t.Errorf("expected 1 ticket after cache round trip, got %d", len(tickets))
	}
}

func TestDeserializeSnapshotFromFile_Missing(t *testing.T) {
	if _, err := catalog.DeserializeSnapshotFromFile(filepath.Join(t.TempDir(), "absent.gob")); err == nil {
		t.Error("expected error for missing cache file")
	}
}
