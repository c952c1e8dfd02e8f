package domain

import "time"

// EventType is the action an event records.
type EventType string

const (
	EventCreated  EventType = "CREATED"
	EventModified EventType = "MODIFIED"
	EventDeleted  EventType = "DELETED"
	EventExpired  EventType = "EXPIRED"
)

// EventTarget is the kind of entity an event is about.
type EventTarget string

const (
	TargetOwner         EventTarget = "OWNER"
	TargetConsumer      EventTarget = "CONSUMER"
	TargetProduct       EventTarget = "PRODUCT"
	TargetContent       EventTarget = "CONTENT"
	TargetPool          EventTarget = "POOL"
	TargetEntitlement   EventTarget = "ENTITLEMENT"
	TargetActivationKey EventTarget = "ACTIVATIONKEY"
	TargetRole          EventTarget = "ROLE"
	TargetUser          EventTarget = "USER"
	TargetExport        EventTarget = "EXPORT"
	TargetImport        EventTarget = "IMPORT"
)

// Event is an audit record of a change to an entity.
type Event struct {
	ID            string
	Type          EventType
	Target        EventTarget
	TargetName    string
	PrincipalType string
	PrincipalName string
	Timestamp     time.Time
	EntityID      string
	OwnerID       string
	ConsumerUUID  string
	ReferenceID   string
	ReferenceType string
	EventData     string
	MessageText   string
}
