package test

import (
	"log"
	"os"
	"testing"

	"reddust/internal/config"
)

var testConfig *config.Config

// TestMain loads the repository configuration for all integration tests
func TestMain(m *testing.M) {
	cfg, err := config.LoadConfig("../config.yaml")
	if err != nil {
		log.Printf("Falling back to default config: %v", err)
		cfg = config.Default()
	}
	// Keep frames small so the suite stays fast
	cfg.Display.ScreenWidth = 240
	cfg.Display.ScreenHeight = 160
	cfg.Display.RenderScale = 1
	testConfig = cfg
	os.Exit(m.Run())
}
