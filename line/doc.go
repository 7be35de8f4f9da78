// Package line models the rail network as one explicit ordered route and
// answers distance queries by summing inter-station track segments.
package line
