package cachekeys_test

import (
	"testing"
	"time"

	"github.com/Gunvolt24/logistics/internal/cachekeys"
)

func TestKeys_WireFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"tracking", cachekeys.OrderByTracking("TRK-ABC-123"), "order:tracking:TRK-ABC-123"},
		{"session", cachekeys.Session("tok"), "session:tok"},
		{"user_sessions", cachekeys.UserSessions("u1"), "user_sessions:u1"},
		{"blacklist", cachekeys.Blacklist("tok"), "blacklist:tok"},
		{"tracking_pattern", cachekeys.TrackingPattern(), "order:tracking:*"},
		{"user_by_id", cachekeys.UserByID("u1"), "user:u1"},
		{"users_list", cachekeys.UsersList(), "users:list"},
		{"join_mixed", cachekeys.Join("a", 1, int64(2)), "a:1:2"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestTTLClasses(t *testing.T) {
	t.Parallel()

	if cachekeys.TTLShort != time.Minute || cachekeys.TTLMedium != 5*time.Minute ||
		cachekeys.TTLLong != time.Hour || cachekeys.TTLDay != 24*time.Hour {
		t.Fatalf("ttl classes changed")
	}
	if cachekeys.SessionTTL != 86400*time.Second {
		t.Fatalf("session ttl must be 24h")
	}
}
