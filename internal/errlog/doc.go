// Package errlog aggregates per-file pipeline failures into three
// categorized JSON error logs: metadata errors, relocation errors, and
// duplicate-rename notices.
//
// The sink is written by concurrent workers and flushed once at the end of a
// run, overwriting the previous run's logs. Empty categories still produce
// valid empty JSON arrays so consumers never have to probe for file
// existence.
package errlog
