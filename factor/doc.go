// Package factor holds the authored conversion factors between units.
//
// A Table is the sparse input of closure construction: a list of declared
// units and a list of directed edges, each an exact rational scale factor
// from one unit to another. Tables can be built in code (see Default), or
// loaded from YAML:
//
//	version: "1"
//	units:
//	  - id: px
//	    label: Pixels
//	    ticks: ["50", "25", "5"]
//	factors:
//	  - from: px
//	    to: in
//	    factor: 1/96
//	  - from: pt
//	    to: em
//	    decimal: 0.0833
//
// A "factor" is an exact rational literal ("1/96", "25.4", "72"); a
// "decimal" is rounded to a fixed number of fractional digits with
// FromDecimal before it enters the table.
package factor
