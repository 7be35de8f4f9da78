/*
Package catalog defines the read-only data contracts between the itinerary
engine and the external CRUD platform, plus the implementations used in
production and in tests.

The engine never writes through these contracts. Three implementations
exist:

  - DB: live MySQL-backed lookups against the booking platform's tables.
  - Snapshot: an in-memory catalog with index maps, used by tests and as
    the target of the zip loader.
  - LoadSnapshotZip: builds a Snapshot from a zip of CSV files, for
    offline runs and the oneshot CLI mode.

Snapshots can be gob-serialized to disk to skip re-parsing on restart;
see SerializeSnapshot and friends.
*/
package catalog
