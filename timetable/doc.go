/*
Package timetable reconstructs absolute, calendar-dated timelines from
time-of-day waypoint sequences.

Schedules store only HH:MM:SS clock times per stop. A multi-day run
crosses midnight one or more times, and a traveler may board mid-route in
either direction, so naive date arithmetic assigns wrong dates to any
trip spanning midnight. Reconstruct tracks a day offset against a rolling
reference time and anchors every stop to a concrete date.

The backward-jump threshold exists to tolerate short backward clock
jumps at a terminus. It is a heuristic, not a guarantee: a branch route
that genuinely doubles back within the threshold window is
indistinguishable from a dwell. The threshold is configurable for that
reason.
*/
package timetable
