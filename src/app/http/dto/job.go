package dto

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// AsyncJobStatusDTO reports the state of a background job.
type AsyncJobStatusDTO struct {
	Timestamped
	ID            string     `json:"id,omitempty"`
	Key           string     `json:"key,omitempty"`
	Name          string     `json:"name,omitempty"`
	Group         string     `json:"group,omitempty"`
	Origin        string     `json:"origin,omitempty"`
	Executor      string     `json:"executor,omitempty"`
	Principal     string     `json:"principal,omitempty"`
	State         string     `json:"state,omitempty"`
	PreviousState string     `json:"previousState,omitempty"`
	StartTime     *time.Time `json:"startTime,omitempty"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	Attempts      *int       `json:"attempts,omitempty"`
	MaxAttempts   *int       `json:"maxAttempts,omitempty"`
	Result        any        `json:"resultData,omitempty"`
}

// Href returns the API path of the job.
func (d *AsyncJobStatusDTO) Href() string {
	if d.ID == "" {
		return ""
	}
	return "/jobs/" + d.ID
}

// MarshalJSON adds the href to the encoded status.
func (d AsyncJobStatusDTO) MarshalJSON() ([]byte, error) {
	type alias AsyncJobStatusDTO
	return json.Marshal(struct {
		alias
		Href string `json:"href,omitempty"`
	}{alias(d), d.Href()})
}

func (d *AsyncJobStatusDTO) String() string {
	return fmt.Sprintf("AsyncJobStatusDTO [id: %s, name: %s, key: %s, state: %s]", d.ID, d.Name, d.Key, d.State)
}

// Clone returns a copy of d. Result is shared.
func (d *AsyncJobStatusDTO) Clone() *AsyncJobStatusDTO {
	if d == nil {
		return nil
	}
	c := *d
	c.Timestamped = d.cloneTimestamps()
	c.StartTime = clonePtr(d.StartTime)
	c.EndTime = clonePtr(d.EndTime)
	c.Attempts = clonePtr(d.Attempts)
	c.MaxAttempts = clonePtr(d.MaxAttempts)
	return &c
}

// Populate copies every field of src into d. A nil src leaves d untouched.
func (d *AsyncJobStatusDTO) Populate(src *AsyncJobStatusDTO) *AsyncJobStatusDTO {
	if src != nil {
		*d = *src.Clone()
	}
	return d
}

// Equal reports whether d and o hold the same values.
func (d *AsyncJobStatusDTO) Equal(o *AsyncJobStatusDTO) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.timestampsEqual(o.Timestamped) &&
		d.ID == o.ID &&
		d.Key == o.Key &&
		d.Name == o.Name &&
		d.Group == o.Group &&
		d.Origin == o.Origin &&
		d.Executor == o.Executor &&
		d.Principal == o.Principal &&
		d.State == o.State &&
		d.PreviousState == o.PreviousState &&
		timeEqual(d.StartTime, o.StartTime) &&
		timeEqual(d.EndTime, o.EndTime) &&
		ptrEqual(d.Attempts, o.Attempts) &&
		ptrEqual(d.MaxAttempts, o.MaxAttempts) &&
		reflect.DeepEqual(d.Result, o.Result)
}
