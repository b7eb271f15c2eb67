package models

import "github.com/goccy/go-json"

// TimestampLayout is the ISO-8601 form used for ClickRecord.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

type ClickRecord struct {
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
	UserAgent string `json:"user_agent"`

	userAgentMissing bool
}

// UnmarshalJSON remembers whether user_agent was absent from the document,
// which older data files allow.
func (r *ClickRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		IP        string  `json:"ip"`
		Timestamp string  `json:"timestamp"`
		UserAgent *string `json:"user_agent"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = ClickRecord{IP: aux.IP, Timestamp: aux.Timestamp}
	if aux.UserAgent == nil {
		r.userAgentMissing = true
	} else {
		r.UserAgent = *aux.UserAgent
	}
	return nil
}

// UserAgentMissing reports whether the record was loaded without a user_agent field.
func (r ClickRecord) UserAgentMissing() bool {
	return r.userAgentMissing
}

// ClickLog is the persisted document. Clicks are kept in arrival order.
type ClickLog struct {
	Clicks []ClickRecord `json:"clicks"`
}

// NewClickLog returns an empty log whose Clicks encode as [] rather than null.
func NewClickLog() ClickLog {
	return ClickLog{Clicks: []ClickRecord{}}
}

// HasIP reports whether any record carries exactly ip.
func (l ClickLog) HasIP(ip string) bool {
	for _, click := range l.Clicks {
		if click.IP == ip {
			return true
		}
	}
	return false
}

func (l ClickLog) Len() int {
	return len(l.Clicks)
}
