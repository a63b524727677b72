package domain

// Client is a lookup entity, read-only to the analytics core.
type Client struct {
	ClientID string `json:"clientID"` // Primary Key (e.g., UUID)
	Name     string `json:"name"`
}

// ClientLookup maps client IDs to client records for name resolution.
type ClientLookup map[string]Client

// NewClientLookup builds the lookup map from a client snapshot.
func NewClientLookup(clients []Client) ClientLookup {
	lookup := make(ClientLookup, len(clients))
	for _, c := range clients {
		lookup[c.ClientID] = c
	}
	return lookup
}

// NameOf resolves a client name, falling back to "unknown" for IDs that have
// no matching client record.
func (l ClientLookup) NameOf(clientID string) string {
	if c, ok := l[clientID]; ok {
		return c.Name
	}
	return "unknown"
}
