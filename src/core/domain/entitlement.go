package domain

import "time"

// Entitlement grants a consumer a quantity of a pool.
type Entitlement struct {
	ID              string
	Owner           *Owner
	Consumer        *Consumer
	Pool            *Pool
	Quantity        int
	DeletedFromPool bool
	Certificates    []*Certificate
	EndDateOverride *time.Time
	Created         time.Time
	Updated         time.Time
}

// StartDate is the start date of the backing pool.
func (e *Entitlement) StartDate() *time.Time {
	if e.Pool == nil {
		return nil
	}
	t := e.Pool.StartDate
	return &t
}

// EndDate is the override end date when present, else the pool's end date.
func (e *Entitlement) EndDate() *time.Time {
	if e.EndDateOverride != nil {
		t := *e.EndDateOverride
		return &t
	}
	if e.Pool == nil {
		return nil
	}
	t := e.Pool.EndDate
	return &t
}
