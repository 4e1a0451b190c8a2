package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/auction-sim/auction-sim/sim"
)

// Define struct for YAML
type ScenarioConfig struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario is a named parameter preset. Zero fields leave the
// corresponding defaults untouched.
type Scenario struct {
	Items             int     `yaml:"items"`
	BidderMean        float64 `yaml:"bidders"`
	Duration          float64 `yaml:"duration"`
	GraceTimeout      float64 `yaml:"grace"`
	Cooldown          float64 `yaml:"cooldown"`
	IncrementFraction float64 `yaml:"increment"`
	ItemValueMean     float64 `yaml:"item_value"`
	AgentShare        float64 `yaml:"agent_share"`
	RatchetShare      float64 `yaml:"ratchet_share"`
	SniperShare       float64 `yaml:"sniper_share"`
	ConfidenceBoost   float64 `yaml:"confidence_boost"`
}

// ApplyScenario overlays the named preset from the YAML file onto cfg.
func ApplyScenario(path string, name string, cfg *sim.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario file: %w", err)
	}

	var sc ScenarioConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("parse scenario file: %w", err)
	}

	scenario, ok := sc.Scenarios[name]
	if !ok {
		return fmt.Errorf("scenario %q not found in %s", name, path)
	}
	logrus.Infof("Using preset scenario %v", name)

	if scenario.Items > 0 {
		cfg.Items = scenario.Items
	}
	if scenario.BidderMean > 0 {
		cfg.Population.BidderMean = scenario.BidderMean
	}
	if scenario.Duration > 0 {
		cfg.Round.Duration = scenario.Duration
	}
	if scenario.GraceTimeout > 0 {
		cfg.Round.GraceTimeout = scenario.GraceTimeout
	}
	if scenario.Cooldown > 0 {
		cfg.Round.Cooldown = scenario.Cooldown
	}
	if scenario.IncrementFraction > 0 {
		cfg.Round.IncrementFraction = scenario.IncrementFraction
	}
	if scenario.ItemValueMean > 0 {
		cfg.Round.ItemValueMean = scenario.ItemValueMean
	}
	if scenario.AgentShare > 0 || scenario.RatchetShare > 0 || scenario.SniperShare > 0 {
		cfg.Population.AgentShare = scenario.AgentShare
		cfg.Population.RatchetShare = scenario.RatchetShare
		cfg.Population.SniperShare = scenario.SniperShare
	}
	if scenario.ConfidenceBoost > 0 {
		cfg.Strategy.ConfidenceBoost = scenario.ConfidenceBoost
	}
	return nil
}
