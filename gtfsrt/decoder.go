package gtfsrt

import (
	"errors"
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ErrDecode marks a payload that does not conform to the GTFS-RT protobuf
// schema (truncated, wrong structure). Individual entities with unexpected
// content are not decode errors; they come out as KindOther.
var ErrDecode = errors.New("malformed GTFS-RT payload")

// Kind discriminates the payload carried by an Entity.
type Kind int

const (
	KindOther Kind = iota
	KindTripUpdate
	KindVehiclePosition
)

// Entity is one record of a decoded feed. At most one payload pointer is
// relevant: when both are set (the upstream schema allows it) the entity
// counts as a trip update.
type Entity struct {
	ID         string
	TripUpdate *gtfsrtpb.TripUpdate
	Vehicle    *gtfsrtpb.VehiclePosition
}

// Kind classifies the entity. Alerts and any future payload kinds are
// KindOther; callers are expected to skip those.
func (e Entity) Kind() Kind {
	switch {
	case e.TripUpdate != nil:
		return KindTripUpdate
	case e.Vehicle != nil:
		return KindVehiclePosition
	default:
		return KindOther
	}
}

// Decode parses raw feed bytes into the entity sequence in wire order.
// It is a pure function: identical input yields an identical sequence.
func Decode(data []byte) ([]Entity, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	entities := make([]Entity, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		entities = append(entities, Entity{
			ID:         e.GetId(),
			TripUpdate: e.TripUpdate,
			Vehicle:    e.Vehicle,
		})
	}
	return entities, nil
}
