package domain

// Connection is an ordered pair of port identifiers in the routing matrix.
// The source drives the destination. Duplicate connections in a set are
// redundant but not illegal by themselves.
type Connection struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

func (c Connection) String() string {
	return c.Source + " -> " + c.Destination
}

// CloneConnections returns an independent copy of a connection set, so a
// client-side mirror never aliases backend-owned storage.
func CloneConnections(conns []Connection) []Connection {
	if conns == nil {
		return nil
	}
	out := make([]Connection, len(conns))
	copy(out, conns)
	return out
}
