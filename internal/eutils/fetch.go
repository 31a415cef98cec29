// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/pubmed-fetch/pkg/types"
)

// ErrMalformedResponse is matched by errors.Is for efetch documents that
// cannot be parsed.
var ErrMalformedResponse = errors.New("malformed response")

// MalformedResponseError reports an efetch document that is not XML.
type MalformedResponseError struct {
	ID  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("parsing XML for paper %s: %v", e.ID, e.Err)
}

func (e *MalformedResponseError) Unwrap() []error {
	return []error{ErrMalformedResponse, e.Err}
}

// FetchDetails retrieves the efetch XML for id and extracts its metadata.
//
// An unparsable document is logged and yields types.Paper{ID: id} with a
// nil error, so one bad record does not stop a batch. Request exhaustion
// is returned as an error and left to the caller's policy.
func (c *Client) FetchDetails(ctx context.Context, id string) (types.Paper, error) {
	params := c.params()
	params.Set("id", id)
	params.Set("retmode", "xml")

	body, err := c.retrier.Get(ctx, c.baseURL+fetchPath, params)
	if err != nil {
		return types.Paper{ID: id}, fmt.Errorf("fetching paper %s: %w", id, err)
	}

	p, err := ParseArticle(id, body)
	if err != nil {
		c.log.Error("Error parsing XML", "id", id, "err", err)
		return types.Paper{ID: id}, nil
	}
	c.log.Debug("fetched paper", "id", id, "authors", len(p.Authors))
	return p, nil
}

// ParseArticle extracts a Paper from an efetch XML document. It returns a
// *MalformedResponseError when data is not well-formed XML.
//
// Lookups search the whole document below its root element:
//   - Title is the first ArticleTitle.
//   - Date is the first PubDate/Year, or the first MedlineDate when no
//     non-empty year exists.
//   - Authors come from every Author element: CollectiveName when set,
//     otherwise "ForeName LastName" when both are set, otherwise nothing.
//   - Each Author also contributes its first AffiliationInfo/Affiliation,
//     whether or not the author itself was kept.
//   - Email is the first AffiliationInfo/Email in the document.
//
// Field text is all character data inside the element, inline markup
// included, with surrounding space trimmed. A title such as
// "<i>In vivo</i> study" yields "In vivo study". Exporters that read only
// the text before the first child element yield " study" or "" for the
// same title, so rows differ from theirs for such records.
func ParseArticle(id string, data []byte) (types.Paper, error) {
	root, err := parseTree(data)
	if err != nil {
		return types.Paper{ID: id}, &MalformedResponseError{ID: id, Err: err}
	}

	p := types.Paper{
		ID:           id,
		Authors:      []string{},
		Affiliations: []string{},
	}

	if title, ok := root.findText("ArticleTitle"); ok {
		p.Title = &title
	}

	if year, ok := root.findText("PubDate", "Year"); ok && year != "" {
		p.Date = &year
	} else if md, ok := root.findText("MedlineDate"); ok {
		p.Date = &md
	}

	for _, author := range root.descendants("Author") {
		collective := author.childText("CollectiveName")
		last := author.childText("LastName")
		fore := author.childText("ForeName")

		switch {
		case collective != "":
			p.Authors = append(p.Authors, collective)
		case last != "" && fore != "":
			p.Authors = append(p.Authors, fore+" "+last)
		}

		if aff, ok := author.findText("AffiliationInfo", "Affiliation"); ok && aff != "" {
			p.Affiliations = append(p.Affiliations, aff)
		}
	}

	if email, ok := root.findText("AffiliationInfo", "Email"); ok && email != "" {
		p.Email = &email
	}

	return p, nil
}
