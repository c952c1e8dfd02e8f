package dto

import "time"

// StatusDTO describes the running server.
type StatusDTO struct {
	Mode         string     `json:"mode"`
	Result       bool       `json:"result"`
	Version      string     `json:"version"`
	Release      string     `json:"release"`
	Standalone   bool       `json:"standalone"`
	Timestamp    *time.Time `json:"timeUTC,omitempty"`
	ManagerCaps  []string   `json:"managerCapabilities,omitempty"`
	StorageState string     `json:"storage,omitempty"`
}
