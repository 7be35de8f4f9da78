package railbook

import (
	"net/http"
	"strconv"

	"github.com/railbook/itinerary-engine/internal"
	"github.com/railbook/itinerary-engine/itinerary"
)

// QueryError reports a malformed query string; distinct from the engine's
// InvalidInputError so transport problems never reach the core.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func queryParams(r *http.Request) map[string]string {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

func parseInt64Param(params map[string]string, key string, required bool) (int64, error) {
	s, ok := params[key]
	if !ok || s == "" {
		if required {
			return 0, &QueryError{Msg: "missing parameter: " + key}
		}
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &QueryError{Msg: "parameter " + key + " must be an integer"}
	}
	return n, nil
}

func parseIntParam(params map[string]string, key string, required bool) (int, error) {
	n, err := parseInt64Param(params, key, required)
	return int(n), err
}

func parseFloatParam(params map[string]string, key string, required bool) (float64, error) {
	s, ok := params[key]
	if !ok || s == "" {
		if required {
			return 0, &QueryError{Msg: "missing parameter: " + key}
		}
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &QueryError{Msg: "parameter " + key + " must be a number"}
	}
	return f, nil
}

// parseAndValidateSearch turns query params into an itinerary query,
// rejecting malformed input before it reaches the core.
func parseAndValidateSearch(params map[string]string) (itinerary.Query, error) {
	var q itinerary.Query
	var err error
	if q.FromStationID, err = parseInt64Param(params, "from", true); err != nil {
		return q, err
	}
	if q.ToStationID, err = parseInt64Param(params, "to", true); err != nil {
		return q, err
	}
	q.Date = params["date"]
	if q.Date == "" {
		return q, &QueryError{Msg: "missing parameter: date"}
	}
	if _, err := internal.ParseDate(q.Date); err != nil {
		return q, &QueryError{Msg: "parameter date must be YYYY-MM-DD"}
	}
	q.NotBefore = params["notBefore"]
	if q.NotBefore != "" {
		if _, err := internal.ParseClockMinutes(q.NotBefore); err != nil {
			return q, &QueryError{Msg: "parameter notBefore must be HH:MM:SS"}
		}
	}
	return q, nil
}
