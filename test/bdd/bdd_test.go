package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/tm-siteupdate/test/bdd/steps"
)

// TestFeatures drives spec.md §8's end-to-end scenarios (colocation
// vertex merging, hidden-vertex chain collapse, disconnected
// connected-route detection) through the real graph and concurrency
// packages, in the reference's godog-suite style.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeGraphScenario(sc)
}
