package synthesis

import (
	"fmt"
	"strings"

	"memo-drafting-be/pkg/memo/schema"
	"memo-drafting-be/pkg/retrieval"
)

func buildSectionPrompt(in Input, standard, agreement []retrieval.Passage) string {
	var sb strings.Builder
	sb.WriteString("You are drafting one section of an accounting memo for a business combination.\n")
	sb.WriteString(fmt.Sprintf("Section: %s\n", in.Spec.Title))
	if in.Spec.StandardTopic != "" {
		sb.WriteString(fmt.Sprintf("Relevant guidance topic: %s\n", in.Spec.StandardTopic))
	}
	sb.WriteString("\nWrite professional memo prose for this section only. ")
	sb.WriteString("Ground every statement in the excerpts and facts below. ")
	sb.WriteString("Where the material is silent, say the information is not yet available rather than inventing it. ")
	sb.WriteString("Do not add headings or preamble.\n")

	if len(standard) > 0 {
		sb.WriteString("\nGuidance excerpts:\n")
		for i, p := range standard {
			sb.WriteString(fmt.Sprintf("[G%d] (%s p.%d) %s\n", i+1, p.DocumentID, p.Page, p.Snippet))
		}
	}

	if len(agreement) > 0 {
		sb.WriteString("\nAgreement excerpts:\n")
		for i, p := range agreement {
			sb.WriteString(fmt.Sprintf("[A%d] (%s p.%d) %s\n", i+1, p.DocumentID, p.Page, p.Snippet))
		}
	}

	fields := schema.SectionFields(in.Spec.ID)
	var stated []string
	for _, f := range fields {
		if v, ok := in.Facts[f]; ok {
			stated = append(stated, fmt.Sprintf("- %s: %s (confidence: %s)", f, v.Value, v.Confidence))
		}
	}
	if len(stated) > 0 {
		sb.WriteString("\nFacts stated by the preparer:\n")
		sb.WriteString(strings.Join(stated, "\n"))
		sb.WriteString("\n")
		sb.WriteString("Preparer facts take precedence over conflicting excerpt text.\n")
	}

	return sb.String()
}

// fallbackText produces deterministic prose when the model is unavailable so
// the memo still reflects the evidence gathered for the section.
func fallbackText(in Input, standard, agreement []retrieval.Passage) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("This section addresses %s.", strings.ToLower(in.Spec.Title)))

	fields := schema.SectionFields(in.Spec.ID)
	var stated []string
	for _, f := range fields {
		if v, ok := in.Facts[f]; ok {
			stated = append(stated, fmt.Sprintf("%s is %s", strings.ReplaceAll(f, "_", " "), v.Value))
		}
	}
	if len(stated) > 0 {
		sb.WriteString(" Based on the preparer's input, ")
		sb.WriteString(strings.Join(stated, "; "))
		sb.WriteString(".")
	}

	if len(standard) > 0 {
		sb.WriteString(fmt.Sprintf(" Relevant guidance was identified in %d passage(s) of the applicable standard.", len(standard)))
	}
	if len(agreement) > 0 {
		sb.WriteString(fmt.Sprintf(" The underlying agreement contributes %d supporting passage(s).", len(agreement)))
	}
	if len(standard) == 0 && len(agreement) == 0 && len(stated) == 0 {
		sb.WriteString(" No supporting material is available yet for this section.")
	}

	return sb.String()
}
