package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/KevinDehulsters/tudat/internal/aero"
	"github.com/KevinDehulsters/tudat/internal/config"
)

func gliderModel(t *testing.T) aero.Model {
	t.Helper()
	settings, err := config.GetPreset("trimmed-glider").CoefficientSettings()
	if err != nil {
		t.Fatal(err)
	}
	model, err := aero.NewModel(settings)
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func TestAssignVariables(t *testing.T) {
	model := gliderModel(t)

	vars, err := assignVariables(model, []string{"angle_of_attack=0.1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vars) != 1 || vars[0] != 0.1 {
		t.Errorf("vars = %v, want [0.1]", vars)
	}

	// Unmentioned variables default to zero.
	vars, err = assignVariables(model, nil)
	if err != nil {
		t.Fatal(err)
	}
	if vars[0] != 0 {
		t.Errorf("vars = %v, want [0]", vars)
	}
}

func TestAssignVariablesRejectsUnknownName(t *testing.T) {
	model := gliderModel(t)

	_, err := assignVariables(model, []string{"alpha=0.1"})
	if err == nil {
		t.Fatal("expected error for a variable the model does not tabulate")
	}
	if !strings.Contains(err.Error(), "alpha") {
		t.Errorf("error %q does not name the unknown variable", err)
	}

	if _, err := assignVariables(model, []string{"angle_of_attack"}); err == nil {
		t.Error("expected error for an argument without =")
	}
}

func TestCancelledRunUnblocksPromptly(t *testing.T) {
	cfg := config.GetPreset("shallow-entry")
	loop, _, _, err := buildScenario(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loop.Run(ctx, cfg.InitialState(), cfg.LoopConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
