package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestClickLog_HasIP(t *testing.T) {
	log := ClickLog{Clicks: []ClickRecord{
		{IP: "10.0.0.1", UserAgent: "curl/8.0"},
		{IP: "10.0.0.2", UserAgent: "Unknown"},
	}}

	if !log.HasIP("10.0.0.2") {
		t.Errorf("Expected 10.0.0.2 to be present")
	}

	if log.HasIP("10.0.0.3") {
		t.Errorf("Expected 10.0.0.3 to be absent")
	}

	if log.HasIP("10.0.0") {
		t.Errorf("Expected prefix match to fail, only exact matches count")
	}
}

func TestNewClickLog_Empty(t *testing.T) {
	log := NewClickLog()

	if log.Clicks == nil {
		t.Fatal("Expected non-nil clicks slice")
	}

	if log.Len() != 0 {
		t.Errorf("Expected 0 clicks, got %d", log.Len())
	}
}

func TestClickRecord_UnmarshalUserAgent(t *testing.T) {
	var clickLog ClickLog
	data := `{"clicks": [
		{"ip": "1.1.1.1", "timestamp": "t1", "user_agent": "curl/8.0"},
		{"ip": "2.2.2.2", "timestamp": "t2", "user_agent": ""},
		{"ip": "3.3.3.3", "timestamp": "t3"}
	]}`

	if err := json.Unmarshal([]byte(data), &clickLog); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if clickLog.Len() != 3 {
		t.Fatalf("Expected 3 clicks, got %d", clickLog.Len())
	}
	if c := clickLog.Clicks[0]; c.IP != "1.1.1.1" || c.Timestamp != "t1" || c.UserAgent != "curl/8.0" || c.UserAgentMissing() {
		t.Errorf("Unexpected first record %+v", c)
	}
	if c := clickLog.Clicks[1]; c.UserAgent != "" || c.UserAgentMissing() {
		t.Errorf("Expected empty but present user agent, got %+v", c)
	}
	if c := clickLog.Clicks[2]; c.IP != "3.3.3.3" || !c.UserAgentMissing() {
		t.Errorf("Expected missing user agent, got %+v", c)
	}
}
