package capture

import (
	"fmt"
	"strconv"
)

// Source types reported by the host
const (
	SourceAdminAPI        = "admin-api"
	SourceSalesChannelAPI = "sales-channel-api"
	SourceSystem          = "system"
)

// Source call context of a host write
type Source struct {
	Type          string `json:"type"`
	UserID        string `json:"userId,omitempty"`
	IntegrationID string `json:"integrationId,omitempty"`
}

// WriteResult one written or deleted entity of a host event
type WriteResult struct {
	PrimaryKey any            `json:"primaryKey"`
	Operation  string         `json:"operation,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Event host entity event, e.g. "product.written"
type Event struct {
	Name    string        `json:"event"`
	Source  Source        `json:"source"`
	Results []WriteResult `json:"results"`
}

// EntityID extracts a single entity id from the primary key: a plain string,
// the "id" member of a composite key, or the first element of a list key.
func (r WriteResult) EntityID() (string, bool) {
	switch pk := r.PrimaryKey.(type) {
	case map[string]any:
		return idString(pk["id"])
	case []any:
		if len(pk) == 0 {
			return "", false
		}
		return idString(pk[0])
	default:
		return idString(pk)
	}
}

// field reads a string id from the payload, falling back to a composite primary key
func (r WriteResult) field(name string) (string, bool) {
	if id, ok := idString(r.Payload[name]); ok {
		return id, true
	}
	if pk, ok := r.PrimaryKey.(map[string]any); ok {
		return idString(pk[name])
	}
	return "", false
}

func idString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case fmt.Stringer:
		s := id.String()
		return s, s != ""
	default:
		return "", false
	}
}
