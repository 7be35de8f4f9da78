package railbook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/railbook/itinerary-engine/fare"
	"github.com/railbook/itinerary-engine/internal"
	"github.com/railbook/itinerary-engine/inventory"
	"github.com/railbook/itinerary-engine/seating"
)

var validate = validator.New()

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var qe *QueryError
	switch {
	case errors.As(err, &qe):
		writeError(w, http.StatusBadRequest, qe.Msg)
	case internal.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case internal.IsNotFound(err):
		writeError(w, http.StatusNotFound, "no itinerary found: "+err.Error())
	case internal.IsInconsistentData(err):
		writeError(w, http.StatusInternalServerError, "inconsistent schedule data: "+err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func handleItineraries(w http.ResponseWriter, r *http.Request) {
	q, err := parseAndValidateSearch(queryParams(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	options, err := service.Search(r.Context(), q)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"itineraries": options})
}

func handleCoachLayout(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	capacity, err := parseIntParam(params, "capacity", true)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	layout, err := seating.LayoutFor(params["type"], capacity)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func handleAvailability(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	coachID, err := parseInt64Param(params, "coach", true)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	trainID, err := parseInt64Param(params, "train", true)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	date := params["date"]
	if date != "" {
		if _, err := internal.ParseDate(date); err != nil {
			writeEngineError(w, &QueryError{Msg: "parameter date must be YYYY-MM-DD"})
			return
		}
	}
	seatMap, err := service.Reconciler().Availability(r.Context(), coachID, trainID, date)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seatMap)
}

func handleFare(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	distance, err := parseFloatParam(params, "distance", true)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	basePrice, err := parseIntParam(params, "basePrice", true)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"distanceKm": distance,
		"basePrice":  basePrice,
		"price":      fare.PriceFor(distance, basePrice),
	})
}

type holdRequest struct {
	CoachID    int64  `json:"coachId" validate:"gt=0"`
	TrainID    int64  `json:"trainId" validate:"gt=0"`
	SeatNumber int    `json:"seatNumber" validate:"gt=0"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

func handleHolds(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req holdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed hold request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		hold, err := holds.Place(req.CoachID, req.TrainID, req.SeatNumber, req.Date)
		if errors.Is(err, inventory.ErrSeatHeld) {
			writeError(w, http.StatusConflict, "seat already held")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, hold)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing parameter: id")
			return
		}
		if !holds.Release(id) {
			writeError(w, http.StatusNotFound, "hold not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
