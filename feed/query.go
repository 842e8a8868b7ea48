package feed

import "strings"

// Search filters a snapshot by a free-text term, matched case-insensitively
// as a substring. Trip updates match on route, trip and vehicle IDs plus
// every nested stop ID; vehicle positions match on entity and route IDs.
// An empty term returns the snapshot unchanged. The scan is pure and the
// result keeps the snapshot's original ordering.
func Search(snap Snapshot, term string) Snapshot {
	if term == "" {
		return snap
	}
	lower := strings.ToLower(term)

	out := Snapshot{
		TripUpdates:      make([]TripUpdate, 0, len(snap.TripUpdates)),
		VehiclePositions: make([]VehiclePosition, 0, len(snap.VehiclePositions)),
		FetchedAt:        snap.FetchedAt,
	}
	for _, tu := range snap.TripUpdates {
		if tripUpdateMatches(tu, lower) {
			out.TripUpdates = append(out.TripUpdates, tu)
		}
	}
	for _, vp := range snap.VehiclePositions {
		if vehiclePositionMatches(vp, lower) {
			out.VehiclePositions = append(out.VehiclePositions, vp)
		}
	}
	return out
}

func tripUpdateMatches(tu TripUpdate, lower string) bool {
	if containsFold(tu.RouteID, lower) ||
		containsFold(tu.TripID, lower) ||
		containsFold(tu.VehicleID, lower) {
		return true
	}
	for _, st := range tu.StopTimeUpdates {
		if containsFold(st.StopID, lower) {
			return true
		}
	}
	return false
}

func vehiclePositionMatches(vp VehiclePosition, lower string) bool {
	if containsFold(vp.ID, lower) {
		return true
	}
	return vp.RouteID != nil && containsFold(*vp.RouteID, lower)
}

// containsFold reports whether s contains the already-lowercased term.
func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
