/*
Package itinerary orchestrates the search pipeline over the external
schedule/track/ticket snapshots.

For one request it fetches candidate schedules serving the station pair,
orients each schedule's waypoint slice in the direction of travel,
reconstructs the calendar-dated timeline, sums track distance, prices
every coach class and attaches remaining capacity. Each search operates
on its own fetched snapshot; the service keeps no mutable state between
requests.
*/
package itinerary
