// Package gtfsrt handles fetching and decoding GTFS-Realtime protobuf feeds.
//
// The Client performs one authenticated HTTP retrieval per call and returns
// the raw body. Decode turns those bytes into a flat sequence of entities,
// each tagged as a trip update, a vehicle position, or other. Everything
// past that point (normalization, storage, querying) lives in package feed.
package gtfsrt
