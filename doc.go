// Package jqcore implements the core of a jq-dialect JSON query language
// interpreter: a tree-walking evaluator over an algebraic filter
// representation that turns one JSON value into a lazy stream of result
// values (or errors), plus a path-based update evaluator that treats a
// filter as a set of reference paths and rewrites the addressed slots.
//
// This package does not parse jq source text and does not read or write
// JSON from the outside world (see cmd/jqcore for a small demo CLI that
// reads JSON from stdin and writes results to stdout; it builds its
// filters from constructors and does not parse jq text either). Callers
// build a closed Filter tree themselves
// (directly, or via an external parser+elaborator) and drive it with Run
// or Update.
package jqcore
