// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Search returns the PubMed identifiers matching query, at most maxResults
// of them, in the order the API ranks them.
//
// A blank query is logged and yields an empty result without touching the
// network. A query with no hits also yields an empty result. Request
// exhaustion and undecodable responses are returned as errors.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		c.log.Error("Search query cannot be empty.")
		return nil, nil
	}

	params := c.params()
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("retmode", "json")

	body, err := c.retrier.Get(ctx, c.baseURL+searchPath, params)
	if err != nil {
		return nil, fmt.Errorf("searching PubMed: %w", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}

	ids := sr.Result.IDList
	if len(ids) == 0 {
		c.log.Info("No papers found for the given query.")
		return nil, nil
	}
	c.log.Debug("search complete", "query", query, "matched", sr.Result.Count, "returned", len(ids))
	return ids, nil
}

// esearch JSON structures (retmode=json).
type searchResponse struct {
	Result searchResult `json:"esearchresult"`
}

type searchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}
