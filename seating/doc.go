// Package seating maps coach type metadata to addressable seat/bed grids.
// Geometry is derived on demand; row/column assignments are never stored.
package seating
