// Message read-state machine.
//
// Valid status graph:
//
//	sent ──► read ──► replied
//
// Transitions are monotonic: a message is never un-read, and only the
// counterpart of the sender may advance it.
package models

import "fmt"

// MessageStatus mirrors the status column on messages.
type MessageStatus string

const (
	StatusSent    MessageStatus = "sent"
	StatusRead    MessageStatus = "read"
	StatusReplied MessageStatus = "replied"
)

// MessageType is the fixed category enumeration for messages.
type MessageType string

const (
	TypeScout       MessageType = "scout"
	TypeApplication MessageType = "application"
	TypeGeneral     MessageType = "general"
)

// statusRank orders statuses so a transition is valid iff it moves forward.
var statusRank = map[MessageStatus]int{
	StatusSent:    0,
	StatusRead:    1,
	StatusReplied: 2,
}

// ParseMessageStatus converts a raw string to a MessageStatus, returning an
// error for unknown values.
func ParseMessageStatus(s string) (MessageStatus, error) {
	st := MessageStatus(s)
	switch st {
	case StatusSent, StatusRead, StatusReplied:
		return st, nil
	}
	return "", fmt.Errorf("unknown message status %q", s)
}

// ParseMessageType converts a raw string to a MessageType, returning an
// error for unknown values.
func ParseMessageType(s string) (MessageType, error) {
	mt := MessageType(s)
	switch mt {
	case TypeScout, TypeApplication, TypeGeneral:
		return mt, nil
	}
	return "", fmt.Errorf("unknown message type %q", s)
}

// IsStatusTransitionAllowed returns true when moving from → to respects the
// monotonic sent → read → replied progression.
func IsStatusTransitionAllowed(from, to MessageStatus) bool {
	fr, ok := statusRank[from]
	if !ok {
		return false
	}
	tr, ok := statusRank[to]
	if !ok {
		return false
	}
	return tr > fr
}
