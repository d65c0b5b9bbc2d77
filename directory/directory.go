// Package directory lists the services available to the party's affiliates.
package directory

import (
	"strings"

	"afiliado/api"
)

// Fetcher is satisfied by client.Client.
type Fetcher interface {
	FetchDirectory(partyID int64) ([]api.DirectoryEntry, error)
}

func Load(f Fetcher, partyID int64) ([]api.DirectoryEntry, error) {
	return f.FetchDirectory(partyID)
}

// Filter keeps the entries whose name or category contains the query,
// case-insensitively. An empty query keeps everything.
func Filter(entries []api.DirectoryEntry, query string) []api.DirectoryEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	var matched []api.DirectoryEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), query) ||
			strings.Contains(strings.ToLower(e.Category), query) {
			matched = append(matched, e)
		}
	}
	return matched
}
