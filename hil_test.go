package gaggiuino

import (
	"context"
	"os"
	"testing"
)

// Hardware-in-the-loop tests against a real machine, enabled by setting
// GAGGIUINO_HIL_TESTS (and optionally GAGGIUINO_URL) in the environment
func newHILClient(t *testing.T) *Client {
	t.Helper()

	if os.Getenv("GAGGIUINO_HIL_TESTS") == "" {
		t.Skip("Skipping hardware-in-the-loop test (GAGGIUINO_HIL_TESTS not set)")
	}

	options := []func(*Client){}
	if baseURL := os.Getenv("GAGGIUINO_URL"); baseURL != "" {
		options = append(options, WithBaseURL(baseURL))
	}

	c, err := New(options...)
	if err != nil {
		t.Fatalf("Failed to initialize machine client: %s", err)
	}

	return c
}

func TestHILStatus(t *testing.T) {
	c := newHILClient(t)

	if !c.IsHealthy(context.Background()) {
		t.Fatalf("Machine at %s is not healthy", c.BaseURL())
	}

	status, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Failed to read machine status: %s", err)
	}
	if status.WaterLevel < 0 || status.WaterLevel > 100 {
		t.Fatalf("Unexpected water level: %d", status.WaterLevel)
	}
}

func TestHILRecentShots(t *testing.T) {
	c := newHILClient(t)

	shots, err := c.RecentShots(context.Background(), 3)
	if err != nil {
		t.Fatalf("Failed to retrieve recent shots: %s", err)
	}
	for i := 1; i < len(shots); i++ {
		if shots[i].ID <= shots[i-1].ID {
			t.Fatalf("Unexpected shot order: %v", shots)
		}
	}
}

func TestHILProfiles(t *testing.T) {
	c := newHILClient(t)

	profiles, err := c.Profiles(context.Background())
	if err != nil {
		t.Fatalf("Failed to list profiles: %s", err)
	}
	for _, profile := range profiles {
		if profile.Name == "" {
			t.Fatalf("Unexpected profile without name: %+v", profile)
		}
	}
}
