//go:build unit

package domain

import (
	"strings"
	"testing"
)

func TestPlanCovers_AllPlaceholdersPlanned(t *testing.T) {
	plan := MultiSignaturePlan{
		{NodeName: "Assertion", NodeID: "id-1"},
		{NodeName: "Response", NodeID: "id-2"},
	}
	if err := plan.Covers([]string{"id-1", "id-2"}); err != nil {
		t.Errorf("plan covering all placeholders should pass, got %v", err)
	}
}

func TestPlanCovers_MissingPlaceholder(t *testing.T) {
	plan := MultiSignaturePlan{
		{NodeName: "Response", NodeID: "id-2"},
	}
	err := plan.Covers([]string{"id-1", "id-2"})
	if err == nil {
		t.Fatal("plan leaving a placeholder unsigned should fail")
	}
	if !strings.Contains(err.Error(), "id-1") {
		t.Errorf("error should name the uncovered node, got %q", err)
	}
}

func TestPlanCovers_ExtraStepsAllowed(t *testing.T) {
	// A step without a matching placeholder is the engine's problem, not a
	// coverage failure.
	plan := MultiSignaturePlan{
		{NodeName: "Assertion", NodeID: "id-1"},
		{NodeName: "Response", NodeID: "id-9"},
	}
	if err := plan.Covers([]string{"id-1"}); err != nil {
		t.Errorf("extra plan steps should not fail coverage, got %v", err)
	}
}

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    MultiSignaturePlan
		wantErr bool
	}{
		{"valid", MultiSignaturePlan{{NodeName: "Assertion", NodeID: "a"}}, false},
		{"empty", MultiSignaturePlan{}, true},
		{"missing id", MultiSignaturePlan{{NodeName: "Assertion"}}, true},
		{"missing name", MultiSignaturePlan{{NodeID: "a"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
