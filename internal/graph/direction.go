package graph

//go:generate go tool stringer -type=Direction -output=direction_string.go

// Direction tells how a step traverses its authored edge.
type Direction int

const (
	_ Direction = iota // zero value is an invalid direction

	// Forward follows the edge as authored; the factor applies as is.
	Forward
	// Reverse walks the edge backwards; the factor is inverted.
	Reverse
)
