// Package ruler computes what an on-screen ruler shows: tick marks over a
// pixel span and the reading at the pointer. It does no drawing.
package ruler
