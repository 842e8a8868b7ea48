// Package feed holds the normalized domain model and the refresh lifecycle.
//
// Normalize maps decoded feed entities into TripUpdate and VehiclePosition
// records with all "field absent" fallbacks applied in one place. A Store
// publishes each normalized Snapshot with a single atomic swap, the
// Scheduler drives the periodic fetch-decode-normalize-publish cycle, and
// Search filters a snapshot by a free-text term.
package feed
