// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the pubmed-fetch
// stages: the Paper record produced by the detail step and consumed by the
// exporter, and the run configuration.
package types

// Paper holds the bibliographic metadata extracted for one PubMed
// identifier. Optional scalar fields are pointers: nil means the source
// document had no such element, which the exporter renders differently
// from an empty value.
type Paper struct {
	// ID is the PubMed identifier (PMID) the record was fetched for.
	ID string `json:"id" yaml:"id"`

	// Title is the article title.
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// Date is the publication year, or the free-text Medline date when no
	// year is recorded.
	Date *string `json:"date,omitempty" yaml:"date,omitempty"`

	// Authors lists display names in document order.
	Authors []string `json:"authors" yaml:"authors"`

	// Affiliations lists each author's first affiliation, in author order.
	// Authors without an affiliation contribute nothing, so indices do not
	// line up with Authors.
	Affiliations []string `json:"affiliations" yaml:"affiliations"`

	// Email is the first contact email found in any affiliation block.
	Email *string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}

// IsEmpty reports whether the record carries nothing beyond its identifier.
// Records that failed to parse or fetch look like this.
func (p Paper) IsEmpty() bool {
	return p.Title == nil && p.Date == nil && p.Email == nil &&
		len(p.Authors) == 0 && len(p.Affiliations) == 0
}

// Value returns the string behind an optional field, or "" when absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
