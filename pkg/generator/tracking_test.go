package generator_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/logistics/pkg/generator"
)

var trackingRe = regexp.MustCompile(`^TRK-[A-Z0-9]+-[A-Z0-9]+$`)

func TestTrackingNumber_Format(t *testing.T) {
	t.Parallel()

	g := generator.NewTrackingNumber()
	for i := 0; i < 100; i++ {
		tn, err := g.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !trackingRe.MatchString(tn) {
			t.Fatalf("bad tracking number %q", tn)
		}
	}
}

func TestTrackingNumber_TimeComponent(t *testing.T) {
	t.Parallel()

	at := time.UnixMilli(1700000000000)
	g := generator.NewTrackingNumberAt(func() time.Time { return at })

	tn, err := g.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1700000000000 в base36 = "LOYW3V28"
	if !strings.HasPrefix(tn, "TRK-LOYW3V28-") {
		t.Fatalf("unexpected time component: %q", tn)
	}
	if parts := strings.Split(tn, "-"); len(parts) != 3 || len(parts[2]) != 6 {
		t.Fatalf("random part must be 6 chars: %q", tn)
	}
}
