// Package graph searches the authored factor graph for conversion paths.
//
// The graph view treats each authored edge A->B as traversable both ways:
// forward with the authored factor, or in reverse with its reciprocal.
// Searching and composing are separate steps:
//  1. FindPath returns a typed sequence of Steps from one unit to another
//  2. Compose folds a path into one exact factor
package graph
