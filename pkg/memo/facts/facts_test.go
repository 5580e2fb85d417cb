package facts

import (
	"reflect"
	"testing"

	"memo-drafting-be/pkg/memo/schema"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name        string
		accumulated schema.FactMap
		extracted   schema.FactMap
		wantApplied []string
		wantValues  map[string]string
	}{
		{
			name:        "new fields apply",
			accumulated: schema.FactMap{},
			extracted: schema.FactMap{
				"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceMedium},
				"acquiree": {Value: "Beta Ltd", Confidence: schema.ConfidenceHigh},
			},
			wantApplied: []string{"acquiree", "acquirer"},
			wantValues:  map[string]string{"acquirer": "Alpha Corp", "acquiree": "Beta Ltd"},
		},
		{
			name: "lower confidence does not overwrite",
			accumulated: schema.FactMap{
				"consideration": {Value: "$50m cash", Confidence: schema.ConfidenceHigh},
			},
			extracted: schema.FactMap{
				"consideration": {Value: "roughly fifty million", Confidence: schema.ConfidenceLow},
			},
			wantApplied: nil,
			wantValues:  map[string]string{"consideration": "$50m cash"},
		},
		{
			name: "equal confidence last write wins",
			accumulated: schema.FactMap{
				"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceMedium},
			},
			extracted: schema.FactMap{
				"acquirer": {Value: "Alpha Corporation Inc", Confidence: schema.ConfidenceMedium},
			},
			wantApplied: []string{"acquirer"},
			wantValues:  map[string]string{"acquirer": "Alpha Corporation Inc"},
		},
		{
			name:        "unknown fields are filtered",
			accumulated: schema.FactMap{},
			extracted: schema.FactMap{
				"weather":  {Value: "sunny", Confidence: schema.ConfidenceHigh},
				"goodwill": {Value: "$4m", Confidence: schema.ConfidenceMedium},
			},
			wantApplied: []string{"goodwill"},
			wantValues:  map[string]string{"goodwill": "$4m"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, applied := Merge(tt.accumulated, tt.extracted)

			if !reflect.DeepEqual(applied, tt.wantApplied) {
				t.Errorf("applied = %v, want %v", applied, tt.wantApplied)
			}
			for field, want := range tt.wantValues {
				if got := merged[field].Value; got != want {
					t.Errorf("merged[%q] = %q, want %q", field, got, want)
				}
			}
			if _, ok := merged["weather"]; ok {
				t.Error("unknown field leaked into merged map")
			}
		})
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	accumulated := schema.FactMap{
		"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceLow},
	}
	extracted := schema.FactMap{
		"acquirer": {Value: "Alpha Corporation", Confidence: schema.ConfidenceHigh},
	}

	Merge(accumulated, extracted)

	if accumulated["acquirer"].Value != "Alpha Corp" {
		t.Errorf("accumulated was mutated: %q", accumulated["acquirer"].Value)
	}
}

func TestNewFields(t *testing.T) {
	accumulated := schema.FactMap{
		"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceMedium},
	}
	extracted := schema.FactMap{
		"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceHigh},
		"goodwill": {Value: "$4m", Confidence: schema.ConfidenceLow},
		"acquiree": {Value: "Beta Ltd", Confidence: schema.ConfidenceMedium},
	}

	got := NewFields(accumulated, extracted)
	want := []string{"acquiree", "goodwill"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewFields() = %v, want %v", got, want)
	}
}
