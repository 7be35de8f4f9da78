/*
Package inventory reconciles derived seat geometry with sold tickets and
live holds to produce selectable seat maps and search-time capacity
counts.

A sold ticket occupies exactly one grid position for the station pair,
time and date it was sold for. Capacity accounting is per physical leg: a
ticket for a sub-segment never blocks a disjoint segment sharing the same
coach.

HoldArena adds the short-lived reservation window the booking flow needs
between seat selection and payment. Holds live in process memory, expire
after a TTL and are reaped by a janitor sweep, keeping the same expiry
contract as the platform's pending-booking reaper.
*/
package inventory
