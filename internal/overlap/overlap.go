// Package overlap owns the pipe-delimited conflict signal exchanged between
// the absence service and its clients. No other package knows the format.
package overlap

import (
	"fmt"
	"strings"
)

// Tag is the first segment of every conflict signal.
const Tag = "OVERLAP_ERROR"

// Separator splits the segments of a signal. Field values must not contain it.
const Separator = "|"

const segments = 7

// Conflict describes an existing absence that intersects a requested range.
type Conflict struct {
	AbsenceType         string `json:"absence_type"`
	ConflictingRecordID string `json:"conflicting_record_id"`
	ExistingStart       string `json:"existing_start"`
	ExistingEnd         string `json:"existing_end"`
	RequestedStart      string `json:"requested_start"`
	RequestedEnd        string `json:"requested_end"`
}

// Error makes a Conflict usable as an error; the message is the signal itself.
func (c *Conflict) Error() string {
	return c.Signal()
}

// Signal encodes c as
// OVERLAP_ERROR|type|id|existingStart|existingEnd|requestedStart|requestedEnd.
func (c *Conflict) Signal() string {
	return strings.Join([]string{
		Tag,
		c.AbsenceType,
		c.ConflictingRecordID,
		c.ExistingStart,
		c.ExistingEnd,
		c.RequestedStart,
		c.RequestedEnd,
	}, Separator)
}

// Encodable reports whether value can travel as one signal segment.
func Encodable(value string) bool {
	return !strings.Contains(value, Separator)
}

// Decode parses a raw error string. It returns false for anything that is not
// a well-formed conflict signal; callers then show the raw text as a generic
// error. Field contents are not validated.
func Decode(raw string) (*Conflict, bool) {
	parts := strings.Split(raw, Separator)
	if len(parts) != segments || parts[0] != Tag {
		return nil, false
	}

	return &Conflict{
		AbsenceType:         parts[1],
		ConflictingRecordID: parts[2],
		ExistingStart:       parts[3],
		ExistingEnd:         parts[4],
		RequestedStart:      parts[5],
		RequestedEnd:        parts[6],
	}, true
}

// New builds a conflict for the record with the given numeric id.
func New(absenceType string, id uint, existingStart, existingEnd, requestedStart, requestedEnd string) *Conflict {
	return &Conflict{
		AbsenceType:         absenceType,
		ConflictingRecordID: fmt.Sprint(id),
		ExistingStart:       existingStart,
		ExistingEnd:         existingEnd,
		RequestedStart:      requestedStart,
		RequestedEnd:        requestedEnd,
	}
}
