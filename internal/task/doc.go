// Package task defines the entities tracked by Sam and their line encoding.
//
// A Task is one of three kinds, distinguished by a one-letter tag:
//
//	T  todo      description only
//	D  deadline  description and a due date-time
//	E  event     description, a start and an end date-time
//
// The kind and description are fixed at construction; only the done flag
// changes afterwards.
//
// # Date-times
//
// Every date-time is written and parsed with one literal layout,
// yyyy-MM-dd HHmm (Go layout "2006-01-02 1504"), as local wall-clock time.
// Rendering for humans uses "Jan 02 2006 15:04".
//
// # Line Format
//
// Each task persists as one line of fields joined by " | ":
//
//	T | 0 | read book
//	D | 1 | submit report | 2023-11-15 0800
//	E | 0 | camp | 2023-11-15 0800 | 2023-11-16 1800
//
// Decode reads the tag and done flag from the front of the line and the
// date-time fields from the back, so a description that itself contains
// the delimiter still decodes to the same task.
package task
