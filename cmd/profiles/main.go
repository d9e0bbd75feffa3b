package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/fako1024/gaggiuino"
	"github.com/sirupsen/logrus"
)

type config struct {
	machineURL string

	selectID int64
	deleteID int64
}

func main() {

	var (
		cfg config
	)

	flag.StringVar(&cfg.machineURL, "url", gaggiuino.DefaultBaseURL, "Base address of the machine")
	flag.Int64Var(&cfg.selectID, "select", 0, "Profile ID to activate")
	flag.Int64Var(&cfg.deleteID, "delete", 0, "Profile ID to remove")

	flag.Parse()
	logger := logrus.StandardLogger()

	machine, err := gaggiuino.New(
		gaggiuino.WithBaseURL(cfg.machineURL),
		gaggiuino.WithLogger(logger),
	)
	if err != nil {
		logger.Fatalf("Failed to initialize machine client: %s", err)
	}

	ctx := context.Background()

	// Profile activation requested
	if cfg.selectID > 0 {
		if err := machine.SelectProfile(ctx, cfg.selectID); err != nil {
			logger.Fatalf("Failed to activate profile %d: %s", cfg.selectID, err)
		}
		logger.Infof("Activated profile %d", cfg.selectID)
		return
	}

	// Profile removal requested
	if cfg.deleteID > 0 {
		if err := machine.DeleteProfile(ctx, cfg.deleteID); err != nil {
			logger.Fatalf("Failed to remove profile %d: %s", cfg.deleteID, err)
		}
		logger.Infof("Removed profile %d", cfg.deleteID)
		return
	}

	// Default action: list all profiles stored on the machine
	profiles, err := machine.Profiles(ctx)
	if err != nil {
		logger.Fatalf("Failed to list profiles: %s", err)
	}

	for _, profile := range profiles {
		marker := " "
		if profile.Selected != nil && bool(*profile.Selected) {
			marker = "*"
		}
		fmt.Printf("%s %3d  %-32s  %d phases\n", marker, profile.ID, profile.Name, len(profile.Phases))
	}
}
