// Package idgen provides the sequential identifiers used as timer handles.
//
// An ID is never reused by the generator that issued it, so a handle kept by a
// caller keeps naming the same scheduled event even after that event has fired
// or has been cancelled.
package idgen

import (
	"strconv"
	"sync/atomic"
)

// ID is a unique identifier represented as a uint64. The zero ID is never
// generated and denotes "no handle".
type ID uint64

// IsZero returns true if the ID does not refer to anything.
func (id ID) IsZero() bool {
	return id == 0
}

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Generator produces unique identifiers.
type Generator interface {
	Generate() ID
}

// New returns a sequential generator whose first emitted ID is "1".
func New() Generator {
	return &sequentialGenerator{}
}

type sequentialGenerator struct {
	next uint64
}

func (g *sequentialGenerator) Generate() ID {
	return ID(atomic.AddUint64(&g.next, 1))
}
