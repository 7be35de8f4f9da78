package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"github.com/railbook/itinerary-engine/internal"
)

// DB is the MySQL-backed Catalog over the booking platform's tables.
type DB struct {
	db *sql.DB
}

// Open connects to MariaDB/MySQL. Host, port and database name come from
// the arguments; credentials come from DB_USER/DB_PASS env vars.
func Open(host, port, name string) (*DB, error) {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3306"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4,utf8", user, pass, host, port, name)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

// Ping verifies the connection.
func (d *DB) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }

// Close releases the connection pool.
func (d *DB) Close() error { return d.db.Close() }

// Stations returns all stations ordered by their stored line rank.
func (d *DB) Stations(ctx context.Context) ([]Station, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT station_id, station_name
		FROM stations
		ORDER BY station_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []Station
	pos := 0
	for rows.Next() {
		var st Station
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		// Line position is the station's rank in stored order; the whole
		// network models one linear route.
		st.LinePosition = pos
		pos++
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

func (d *DB) Tracks(ctx context.Context) ([]Track, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT station1_id, station2_id, distance_km
		FROM tracks
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.StationA, &t.StationB, &t.DistanceKm); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func (d *DB) SchedulesServing(ctx context.Context, fromStationID, toStationID int64, notBefore string) ([]Schedule, error) {
	if notBefore == "" {
		notBefore = "00:00:00"
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT DISTINCT s.schedule_id, s.train_id, t.train_name, s.status
		FROM schedules s
		JOIN trains t ON t.train_id = s.train_id
		JOIN journeys jf ON jf.schedule_id = s.schedule_id AND jf.station_id = ?
		JOIN journeys jt ON jt.schedule_id = s.schedule_id AND jt.station_id = ?
		WHERE s.status = 'Active'
		  AND COALESCE(NULLIF(jf.departure_time, ''), jf.arrival_time) >= ?
		ORDER BY COALESCE(NULLIF(jf.departure_time, ''), jf.arrival_time)
	`, fromStationID, toStationID, notBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		var sch Schedule
		if err := rows.Scan(&sch.ID, &sch.TrainID, &sch.TrainName, &sch.Status); err != nil {
			return nil, err
		}
		schedules = append(schedules, sch)
	}
	return schedules, rows.Err()
}

func (d *DB) Waypoints(ctx context.Context, scheduleID int64) ([]Waypoint, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT journey_id, station_id, arrival_time, departure_time
		FROM journeys
		WHERE schedule_id = ?
		ORDER BY journey_id
	`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waypoints []Waypoint
	for rows.Next() {
		var w Waypoint
		var departure sql.NullString
		if err := rows.Scan(&w.JourneyID, &w.StationID, &w.Arrival, &departure); err != nil {
			return nil, err
		}
		w.Departure = departure.String
		waypoints = append(waypoints, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(waypoints) == 0 {
		return nil, internal.NotFound("schedule", "%d", scheduleID)
	}
	return waypoints, nil
}

func (d *DB) CoachesByTrain(ctx context.Context, trainID int64) ([]Coach, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT coach_id, train_id, coach_type_id
		FROM coaches
		WHERE train_id = ?
		ORDER BY coach_id
	`, trainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coaches []Coach
	for rows.Next() {
		var c Coach
		if err := rows.Scan(&c.ID, &c.TrainID, &c.CoachTypeID); err != nil {
			return nil, err
		}
		coaches = append(coaches, c)
	}
	return coaches, rows.Err()
}

func (d *DB) CoachType(ctx context.Context, coachTypeID int64) (CoachType, error) {
	var ct CoachType
	err := d.db.QueryRowContext(ctx, `
		SELECT coach_type_id, type, price, capacity
		FROM coach_types
		WHERE coach_type_id = ?
	`, coachTypeID).Scan(&ct.ID, &ct.Label, &ct.Price, &ct.Capacity)
	if err == sql.ErrNoRows {
		return CoachType{}, internal.NotFound("coach type", "%d", coachTypeID)
	}
	if err != nil {
		return CoachType{}, err
	}
	return ct, nil
}

func (d *DB) TicketsForTrain(ctx context.Context, trainID int64) ([]Ticket, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT coach_id, train_id, seat_number,
		       departure_station_id, arrival_station_id,
		       departure_time, DATE_FORMAT(departure_date, '%Y-%m-%d'), price
		FROM tickets
		WHERE train_id = ?
	`, trainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.CoachID, &t.TrainID, &t.SeatNumber,
			&t.DepartureStationID, &t.ArrivalStationID,
			&t.DepartureTime, &t.DepartureDate, &t.Price); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
