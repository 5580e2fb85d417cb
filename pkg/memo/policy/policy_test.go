package policy

import (
	"testing"

	"memo-drafting-be/pkg/memo/schema"
)

func TestShouldRegenerate(t *testing.T) {
	tests := []struct {
		name        string
		newFacts    schema.FactMap
		accumulated schema.FactMap
		want        bool
	}{
		{
			name:        "empty extraction never triggers",
			newFacts:    schema.FactMap{},
			accumulated: schema.FactMap{},
			want:        false,
		},
		{
			name: "new field triggers",
			newFacts: schema.FactMap{
				"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceMedium},
			},
			accumulated: schema.FactMap{},
			want:        true,
		},
		{
			name: "higher confidence on existing field triggers",
			newFacts: schema.FactMap{
				"acquisition_date": {Value: "2026-03-01", Confidence: schema.ConfidenceHigh},
			},
			accumulated: schema.FactMap{
				"acquisition_date": {Value: "March 2026", Confidence: schema.ConfidenceLow},
			},
			want: true,
		},
		{
			name: "same confidence on existing field does not trigger",
			newFacts: schema.FactMap{
				"acquirer": {Value: "Alpha Corporation", Confidence: schema.ConfidenceMedium},
			},
			accumulated: schema.FactMap{
				"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceMedium},
			},
			want: false,
		},
		{
			name: "lower confidence on existing field does not trigger",
			newFacts: schema.FactMap{
				"consideration": {Value: "around 50m", Confidence: schema.ConfidenceLow},
			},
			accumulated: schema.FactMap{
				"consideration": {Value: "$50,000,000 cash", Confidence: schema.ConfidenceHigh},
			},
			want: false,
		},
		{
			name: "one new field among known ones triggers",
			newFacts: schema.FactMap{
				"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceLow},
				"goodwill": {Value: "$4m", Confidence: schema.ConfidenceMedium},
			},
			accumulated: schema.FactMap{
				"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceHigh},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldRegenerate(tt.newFacts, tt.accumulated)
			if got != tt.want {
				t.Errorf("ShouldRegenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRegenerateIsPure(t *testing.T) {
	newFacts := schema.FactMap{
		"acquiree": {Value: "Beta Ltd", Confidence: schema.ConfidenceHigh},
	}
	accumulated := schema.FactMap{
		"acquirer": {Value: "Alpha Corp", Confidence: schema.ConfidenceMedium},
	}

	first := ShouldRegenerate(newFacts, accumulated)
	second := ShouldRegenerate(newFacts, accumulated)
	if first != second {
		t.Errorf("repeated calls disagree: %v then %v", first, second)
	}

	if len(accumulated) != 1 {
		t.Errorf("accumulated map was mutated, len = %d", len(accumulated))
	}
	if _, ok := accumulated["acquiree"]; ok {
		t.Error("accumulated map gained the extracted field")
	}
}
