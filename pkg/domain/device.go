package domain

import "time"

// DeviceInfo is a discovered device record, cached so devices can be
// addressed by name or serial instead of IP.
type DeviceInfo struct {
	Address  string    `json:"address"`
	Port     int       `json:"port"`
	Name     string    `json:"name,omitempty"`
	Serial   string    `json:"serial"`
	Platform string    `json:"platform,omitempty"`
	LastSeen time.Time `json:"last_seen"`
}
