package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSubmissionIssued  EventType = "SubmissionIssued"
	EventURLUpdated        EventType = "URLUpdated"
	EventSubmissionFailed  EventType = "SubmissionFailed"
	EventResponseDiscarded EventType = "ResponseDiscarded"
	EventURLCopied         EventType = "URLCopied"
	EventCopyFailed        EventType = "CopyFailed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SubmissionIssuedEvent is emitted when a subscription request is sent
type SubmissionIssuedEvent struct {
	Seq     uint64
	Request SubscriptionRequest
}

func (e SubmissionIssuedEvent) Type() EventType { return EventSubmissionIssued }

// URLUpdatedEvent is emitted when a response replaced the calendar URL
type URLUpdatedEvent struct {
	Seq     uint64
	URL     string
	Elapsed time.Duration
}

func (e URLUpdatedEvent) Type() EventType { return EventURLUpdated }

// SubmissionFailedEvent is emitted when the URL service could not produce a URL
type SubmissionFailedEvent struct {
	Seq     uint64
	Err     error
	Elapsed time.Duration
}

func (e SubmissionFailedEvent) Type() EventType { return EventSubmissionFailed }

// ResponseDiscardedEvent is emitted when a response arrived for a superseded request
type ResponseDiscardedEvent struct {
	Seq    uint64
	Latest uint64
}

func (e ResponseDiscardedEvent) Type() EventType { return EventResponseDiscarded }

// URLCopiedEvent is emitted after the calendar URL reached the clipboard
type URLCopiedEvent struct {
	Method string // "system" or "osc52"
}

func (e URLCopiedEvent) Type() EventType { return EventURLCopied }

// CopyFailedEvent is emitted when the clipboard could not be written
type CopyFailedEvent struct {
	Err error
}

func (e CopyFailedEvent) Type() EventType { return EventCopyFailed }
