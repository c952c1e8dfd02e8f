package dto

import (
	"fmt"
	"time"
)

// PrincipalDataDTO identifies who caused an event.
type PrincipalDataDTO struct {
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
}

// EventDTO is an audit record of a change to an entity.
type EventDTO struct {
	ID            string            `json:"id,omitempty"`
	Target        string            `json:"target,omitempty"`
	TargetName    string            `json:"targetName,omitempty"`
	Type          string            `json:"type,omitempty"`
	Principal     *PrincipalDataDTO `json:"principal,omitempty"`
	Timestamp     *time.Time        `json:"timestamp,omitempty"`
	EntityID      string            `json:"entityId,omitempty"`
	OwnerID       string            `json:"ownerId,omitempty"`
	ConsumerUUID  string            `json:"consumerUuid,omitempty"`
	ReferenceID   string            `json:"referenceId,omitempty"`
	ReferenceType string            `json:"referenceType,omitempty"`
	EventData     string            `json:"eventData,omitempty"`
	MessageText   string            `json:"messageText,omitempty"`
}

func (d *EventDTO) String() string {
	return fmt.Sprintf("EventDTO [id: %s, target: %s, type: %s, entity id: %s]", d.ID, d.Target, d.Type, d.EntityID)
}

// Clone returns a copy independent of d.
func (d *EventDTO) Clone() *EventDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Principal = clonePtr(d.Principal)
	c.Timestamp = clonePtr(d.Timestamp)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *EventDTO) Populate(src *EventDTO) *EventDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *EventDTO) Equal(o *EventDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.ID == o.ID &&
		d.Target == o.Target &&
		d.TargetName == o.TargetName &&
		d.Type == o.Type &&
		ptrEqual(d.Principal, o.Principal) &&
		timeEqual(d.Timestamp, o.Timestamp) &&
		d.EntityID == o.EntityID &&
		d.OwnerID == o.OwnerID &&
		d.ConsumerUUID == o.ConsumerUUID &&
		d.ReferenceID == o.ReferenceID &&
		d.ReferenceType == o.ReferenceType &&
		d.EventData == o.EventData &&
		d.MessageText == o.MessageText
}
