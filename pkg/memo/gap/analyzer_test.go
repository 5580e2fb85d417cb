package gap

import (
	"reflect"
	"testing"

	"memo-drafting-be/pkg/memo"
	"memo-drafting-be/pkg/memo/template"
)

func evidenceWith(snippets ...string) []memo.Evidence {
	out := make([]memo.Evidence, len(snippets))
	for i, s := range snippets {
		out[i] = memo.Evidence{SourceType: memo.SourceAgreement, Snippet: s}
	}
	return out
}

func TestAssess(t *testing.T) {
	analyzer := NewAnalyzer(Config{CompletenessFraction: 0.5})

	spec := template.SectionSpec{
		ID:    "consideration",
		Title: "Consideration Transferred",
		QueryHints: []string{
			"purchase price and form of payment",
			"contingent consideration arrangements",
		},
	}

	tests := []struct {
		name    string
		section memo.Section
		spec    template.SectionSpec
		want    memo.Completeness
	}{
		{
			name:    "no hints means unknown",
			section: memo.Section{Evidence: evidenceWith("anything at all")},
			spec:    template.SectionSpec{ID: "x", Title: "X"},
			want:    memo.CompletenessUnknown,
		},
		{
			name:    "no evidence means incomplete",
			section: memo.Section{},
			spec:    spec,
			want:    memo.CompletenessIncomplete,
		},
		{
			name:    "half of hints addressed is complete at 0.5",
			section: memo.Section{Evidence: evidenceWith("the purchase price was $50 million in cash")},
			spec:    spec,
			want:    memo.CompletenessComplete,
		},
		{
			name:    "no hints addressed is incomplete",
			section: memo.Section{Evidence: evidenceWith("the parties signed in Delaware")},
			spec:    spec,
			want:    memo.CompletenessIncomplete,
		},
		{
			name: "prose answering a hint counts without matching evidence",
			section: memo.Section{
				SynthesizedText: "The purchase price of $50 million was settled entirely in cash.",
				Evidence:        evidenceWith("the parties signed in Delaware"),
			},
			spec: spec,
			want: memo.CompletenessComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Assess(tt.section, tt.spec)
			if got != tt.want {
				t.Errorf("Assess() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssessStrictFraction(t *testing.T) {
	analyzer := NewAnalyzer(Config{CompletenessFraction: 1.0})

	spec := template.SectionSpec{
		ID:    "consideration",
		Title: "Consideration Transferred",
		QueryHints: []string{
			"purchase price and form of payment",
			"contingent consideration arrangements",
		},
	}
	section := memo.Section{Evidence: evidenceWith("the purchase price was $50 million")}

	if got := analyzer.Assess(section, spec); got != memo.CompletenessIncomplete {
		t.Errorf("Assess() at fraction 1.0 = %q, want incomplete", got)
	}
}

func TestQuestions(t *testing.T) {
	analyzer := NewAnalyzer(DefaultConfig())

	spec := template.SectionSpec{
		ID:    "consideration",
		Title: "Consideration Transferred",
		QueryHints: []string{
			"purchase price and form of payment",
			"contingent consideration arrangements",
		},
	}

	t.Run("complete section yields nothing", func(t *testing.T) {
		section := memo.Section{CompletenessState: memo.CompletenessComplete}
		if got := analyzer.Questions(section, spec, nil); got != nil {
			t.Errorf("Questions() = %v, want nil", got)
		}
	})

	t.Run("unaddressed hints become questions in hint order", func(t *testing.T) {
		section := memo.Section{
			CompletenessState: memo.CompletenessIncomplete,
			Evidence:          evidenceWith("nothing relevant here"),
		}
		got := analyzer.Questions(section, spec, nil)
		want := []string{
			`For the Consideration Transferred section: can you provide details on "purchase price and form of payment"?`,
			`For the Consideration Transferred section: can you provide details on "contingent consideration arrangements"?`,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Questions() = %v, want %v", got, want)
		}
	})

	t.Run("addressed hints are skipped", func(t *testing.T) {
		section := memo.Section{
			CompletenessState: memo.CompletenessIncomplete,
			Evidence:          evidenceWith("the price of the deal was settled in cash"),
		}
		got := analyzer.Questions(section, spec, nil)
		want := []string{
			`For the Consideration Transferred section: can you provide details on "contingent consideration arrangements"?`,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Questions() = %v, want %v", got, want)
		}
	})

	t.Run("hints answered by the prose are not asked", func(t *testing.T) {
		section := memo.Section{
			CompletenessState: memo.CompletenessIncomplete,
			SynthesizedText:   "The purchase price was $50 million, paid in cash at closing.",
		}
		got := analyzer.Questions(section, spec, nil)
		want := []string{
			`For the Consideration Transferred section: can you provide details on "contingent consideration arrangements"?`,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Questions() = %v, want %v", got, want)
		}
	})

	t.Run("already open questions are not repeated", func(t *testing.T) {
		section := memo.Section{
			CompletenessState: memo.CompletenessIncomplete,
		}
		open := []string{
			`For the Consideration Transferred section: can you provide details on "purchase price and form of payment"?`,
		}
		got := analyzer.Questions(section, spec, open)
		want := []string{
			`For the Consideration Transferred section: can you provide details on "contingent consideration arrangements"?`,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Questions() = %v, want %v", got, want)
		}
	})
}

func TestKeywords(t *testing.T) {
	got := keywords("Which entity obtains control of the combined company?")
	want := []string{"entity", "obtains", "control", "combined", "company"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keywords() = %v, want %v", got, want)
	}
}
