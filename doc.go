/*
Package railbook is the HTTP surface of the itinerary engine: a thin
net/http layer over the pure search, fare, seating and inventory
packages. The booking platform's CRUD services own persistence and user
flows; this service answers the questions with algorithmic content:
dated itineraries across midnight boundaries, track distances, banded
fares, seat grids and live availability.
*/
package railbook
