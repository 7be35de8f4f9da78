package catalog

import "context"

// Station is one stop on the line. LinePosition is the station's rank
// along the single linear route; it is explicit here rather than inferred
// from incidental slice ordering.
type Station struct {
	ID           int64  `json:"stationId"`
	Name         string `json:"name"`
	LinePosition int    `json:"linePosition"`
}

// Track connects an unordered station pair. At most one track exists per
// pair and DistanceKm is always positive.
type Track struct {
	StationA   int64   `json:"station1Id"`
	StationB   int64   `json:"station2Id"`
	DistanceKm float64 `json:"distanceKm"`
}

// Schedule is one train's run between its declared terminal stations.
type Schedule struct {
	ID        int64  `json:"scheduleId"`
	TrainID   int64  `json:"trainId"`
	TrainName string `json:"trainName"`
	Status    string `json:"status"`
}

// Waypoint is a schedule's stop at one station, clock times only. JourneyID
// is monotonically increasing within a schedule and encodes stop order.
type Waypoint struct {
	JourneyID int64  `json:"journeyId"`
	StationID int64  `json:"stationId"`
	Arrival   string `json:"arrivalTime"`
	Departure string `json:"departureTime"`
}

// CoachType is a fare/capacity class shared by many coach instances.
type CoachType struct {
	ID       int64  `json:"coachTypeId"`
	Label    string `json:"type"`
	Price    int    `json:"price"`
	Capacity int    `json:"capacity"`
}

// Coach is one physical coach of a train.
type Coach struct {
	ID          int64 `json:"coachId"`
	TrainID     int64 `json:"trainId"`
	CoachTypeID int64 `json:"coachTypeId"`
}

// Ticket is a sold seat for one dated leg.
type Ticket struct {
	CoachID            int64  `json:"coachId"`
	TrainID            int64  `json:"trainId"`
	SeatNumber         int    `json:"seatNumber"`
	DepartureStationID int64  `json:"departureStationId"`
	ArrivalStationID   int64  `json:"arrivalStationId"`
	DepartureTime      string `json:"departureTime"`
	DepartureDate      string `json:"departureDate"`
	Price              int    `json:"price"`
}

// Catalog is the read-only snapshot contract to the external CRUD store.
// Implementations must not mutate returned data between calls within one
// search; each search operates on its own fetched snapshot.
type Catalog interface {
	// Stations returns all stations in line order.
	Stations(ctx context.Context) ([]Station, error)
	// Tracks returns every track segment of the line.
	Tracks(ctx context.Context) ([]Track, error)
	// SchedulesServing returns active schedules whose waypoints include
	// both stations, departing the origin no earlier than notBefore
	// ("HH:MM:SS", empty for no lower bound).
	SchedulesServing(ctx context.Context, fromStationID, toStationID int64, notBefore string) ([]Schedule, error)
	// Waypoints returns a schedule's stops ordered by journey ID.
	Waypoints(ctx context.Context, scheduleID int64) ([]Waypoint, error)
	// CoachesByTrain returns the coaches of a train.
	CoachesByTrain(ctx context.Context, trainID int64) ([]Coach, error)
	// CoachType resolves a coach type by ID.
	CoachType(ctx context.Context, coachTypeID int64) (CoachType, error)
	// TicketsForTrain returns sold tickets for a train across all coaches.
	TicketsForTrain(ctx context.Context, trainID int64) ([]Ticket, error)
}
