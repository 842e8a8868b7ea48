package feed

import (
	"strconv"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/gtfsrt"
)

// StopTimeUpdate is one per-stop prediction nested within a trip update.
// Arrival and departure stay numeric strings so feed values wider than the
// consumer runtime's integer width survive the trip through JSON.
type StopTimeUpdate struct {
	StopSequence  int    `json:"stopSequence"`
	StopID        string `json:"stopId"`
	ArrivalTime   string `json:"arrivalTime"`
	DepartureTime string `json:"departureTime"`
}

// TripUpdate is the normalized form of a trip-update feed entity.
type TripUpdate struct {
	ID              string           `json:"id"`
	TripID          string           `json:"tripId"`
	RouteID         string           `json:"routeId"`
	DirectionID     *int             `json:"directionId,omitempty"`
	Direction       string           `json:"direction"`
	VehicleID       string           `json:"vehicleId"`
	Delay           int              `json:"delay"`
	Timestamp       string           `json:"timestamp"`
	StopTimeUpdates []StopTimeUpdate `json:"stopTimeUpdates"`
}

// VehiclePosition is the normalized form of a vehicle-position feed entity.
// Position fields stay nil when the feed omits them; a vehicle without a
// position is still part of the snapshot.
type VehiclePosition struct {
	ID        string   `json:"id"`
	RouteID   *string  `json:"routeId"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Snapshot is the complete normalized result of one refresh cycle. Both
// sequences preserve feed-wire order. A zero FetchedAt means no cycle has
// succeeded yet; consumers treat that as "no data", not as an error.
type Snapshot struct {
	TripUpdates      []TripUpdate
	VehiclePositions []VehiclePosition
	FetchedAt        time.Time
}

// defaults is the single table of "field absent -> sentinel" rules. Every
// fallback the normalizer injects comes from here so the policy cannot
// drift between fields.
var defaults = struct {
	TripID    string
	RouteID   string
	VehicleID string
	Delay     int
	Timestamp string
	StopTime  string
}{
	TripID:    "N/A",
	RouteID:   "N/A",
	VehicleID: "N/A",
	Delay:     0,
	Timestamp: "0",
	StopTime:  "N/A",
}

// Direction labels derived from GTFS direction_id.
const (
	directionOutbound = "Outbound"
	directionInbound  = "Inbound"
	directionUnknown  = "N/A"
)

// Normalize maps decoded entities into a Snapshot. It never fails: entities
// carrying neither a trip-update nor a vehicle payload are expected feed
// noise and are dropped. An entity carrying both payloads lands in the
// trip-update sequence only.
func Normalize(entities []gtfsrt.Entity, fetchedAt time.Time) Snapshot {
	snap := Snapshot{
		TripUpdates:      make([]TripUpdate, 0, len(entities)),
		VehiclePositions: make([]VehiclePosition, 0),
		FetchedAt:        fetchedAt,
	}
	for _, e := range entities {
		switch e.Kind() {
		case gtfsrt.KindTripUpdate:
			snap.TripUpdates = append(snap.TripUpdates, normalizeTripUpdate(e))
		case gtfsrt.KindVehiclePosition:
			snap.VehiclePositions = append(snap.VehiclePositions, normalizeVehiclePosition(e))
		}
	}
	return snap
}

func normalizeTripUpdate(e gtfsrt.Entity) TripUpdate {
	tu := e.TripUpdate
	out := TripUpdate{
		ID:        e.ID,
		TripID:    defaults.TripID,
		RouteID:   defaults.RouteID,
		VehicleID: defaults.VehicleID,
		Delay:     defaults.Delay,
		Timestamp: defaults.Timestamp,
		Direction: directionUnknown,
	}

	if trip := tu.GetTrip(); trip != nil {
		if trip.TripId != nil {
			out.TripID = trip.GetTripId()
		}
		if trip.RouteId != nil {
			out.RouteID = trip.GetRouteId()
		}
		if trip.DirectionId != nil {
			dir := int(trip.GetDirectionId())
			out.DirectionID = &dir
			switch dir {
			case 0:
				out.Direction = directionOutbound
			case 1:
				out.Direction = directionInbound
			}
		}
	}
	if veh := tu.GetVehicle(); veh != nil && veh.Id != nil {
		out.VehicleID = veh.GetId()
	}
	if tu.Delay != nil {
		out.Delay = int(tu.GetDelay())
	}
	if tu.Timestamp != nil {
		out.Timestamp = strconv.FormatUint(tu.GetTimestamp(), 10)
	}

	out.StopTimeUpdates = make([]StopTimeUpdate, 0, len(tu.StopTimeUpdate))
	for _, stu := range tu.StopTimeUpdate {
		st := StopTimeUpdate{
			StopSequence:  int(stu.GetStopSequence()),
			StopID:        stu.GetStopId(),
			ArrivalTime:   defaults.StopTime,
			DepartureTime: defaults.StopTime,
		}
		if arr := stu.GetArrival(); arr != nil && arr.Time != nil {
			st.ArrivalTime = strconv.FormatInt(arr.GetTime(), 10)
		}
		if dep := stu.GetDeparture(); dep != nil && dep.Time != nil {
			st.DepartureTime = strconv.FormatInt(dep.GetTime(), 10)
		}
		out.StopTimeUpdates = append(out.StopTimeUpdates, st)
	}
	return out
}

func normalizeVehiclePosition(e gtfsrt.Entity) VehiclePosition {
	v := e.Vehicle
	out := VehiclePosition{ID: e.ID}

	if trip := v.GetTrip(); trip != nil && trip.RouteId != nil {
		rid := trip.GetRouteId()
		out.RouteID = &rid
	}
	if pos := v.GetPosition(); pos != nil {
		if pos.Latitude != nil {
			lat := float64(pos.GetLatitude())
			out.Latitude = &lat
		}
		if pos.Longitude != nil {
			lon := float64(pos.GetLongitude())
			out.Longitude = &lon
		}
	}
	return out
}
