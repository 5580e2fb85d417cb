package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SectionSpec is the static definition of one memo section: what it is
// called, which standard topic anchors it, and the retrieval hints used to
// pull supporting passages. Immutable once loaded.
type SectionSpec struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	StandardTopic string   `json:"standard_topic,omitempty"`
	QueryHints    []string `json:"query_hints"`
}

// Template is the ordered section layout for one accounting standard.
type Template struct {
	StandardID string        `json:"standard_id"`
	Title      string        `json:"title"`
	Sections   []SectionSpec `json:"sections"`
}

// Registry holds one template per standard id.
type Registry struct {
	templates map[string]*Template
}

// Get returns the template for a standard, or nil when the standard is
// unknown.
func (r *Registry) Get(standardID string) *Template {
	return r.templates[strings.ToLower(standardID)]
}

// StandardIDs lists the registered standards.
func (r *Registry) StandardIDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	return ids
}

// LoadDir reads every *.json template under dir into a registry. Falls back
// to the builtin templates when the directory does not exist, so a fresh
// checkout works without config.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Builtin(), nil
		}
		return nil, fmt.Errorf("failed to read template dir %s: %w", dir, err)
	}

	reg := &Registry{templates: make(map[string]*Template)}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", e.Name(), err)
		}
		var tpl Template
		if err := json.Unmarshal(raw, &tpl); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", e.Name(), err)
		}
		if tpl.StandardID == "" || len(tpl.Sections) == 0 {
			return nil, fmt.Errorf("template %s is missing standard_id or sections", e.Name())
		}
		reg.templates[strings.ToLower(tpl.StandardID)] = &tpl
	}

	if len(reg.templates) == 0 {
		return Builtin(), nil
	}
	return reg, nil
}

// Builtin returns the default business combination templates for the two
// supported standards. Section ids line up with the schema's section->field
// relevance map.
func Builtin() *Registry {
	sections := []SectionSpec{
		{
			ID:            "overview",
			Title:         "Transaction Overview",
			StandardTopic: "scope of business combination accounting",
			QueryHints: []string{
				"parties to the transaction",
				"closing date and effective date",
				"structure of the merger",
			},
		},
		{
			ID:            "acquirer_id",
			Title:         "Identification of the Acquirer",
			StandardTopic: "identifying the acquirer in a business combination",
			QueryHints: []string{
				"which entity obtains control",
				"voting rights and governing body composition",
			},
		},
		{
			ID:            "acquisition_date",
			Title:         "Acquisition Date",
			StandardTopic: "determining the acquisition date",
			QueryHints: []string{
				"closing date of the transaction",
				"date control is transferred",
			},
		},
		{
			ID:            "consideration",
			Title:         "Consideration Transferred",
			StandardTopic: "measurement of consideration transferred",
			QueryHints: []string{
				"purchase price and form of payment",
				"contingent consideration arrangements",
				"share exchange ratio",
			},
		},
		{
			ID:            "assets_liabilities",
			Title:         "Identifiable Assets Acquired and Liabilities Assumed",
			StandardTopic: "recognition and measurement of identifiable assets and liabilities",
			QueryHints: []string{
				"assets acquired in the transaction",
				"liabilities and obligations assumed",
				"intangible assets identified",
			},
		},
		{
			ID:            "goodwill",
			Title:         "Goodwill or Gain from Bargain Purchase",
			StandardTopic: "measurement of goodwill or bargain purchase gain",
			QueryHints: []string{
				"excess of consideration over net assets",
				"goodwill recognized",
			},
		},
		{
			ID:            "disclosures",
			Title:         "Required Disclosures",
			StandardTopic: "disclosure requirements for business combinations",
			QueryHints: []string{
				"disclosure of the acquisition",
				"financial effects of the combination",
			},
		},
	}

	return &Registry{templates: map[string]*Template{
		"ifrs": {
			StandardID: "ifrs",
			Title:      "Business Combination Memo (IFRS 3)",
			Sections:   sections,
		},
		"asc805": {
			StandardID: "asc805",
			Title:      "Business Combination Memo (ASC 805)",
			Sections:   sections,
		},
	}}
}
