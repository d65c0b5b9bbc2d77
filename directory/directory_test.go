package directory

import (
	"testing"

	"afiliado/api"
)

func TestFilter(t *testing.T) {
	entries := []api.DirectoryEntry{
		{Name: "Comité Municipal", Category: "Atención"},
		{Name: "Asesoría Jurídica", Category: "Legal"},
		{Name: "Bolsa de Trabajo", Category: "Empleo"},
	}

	testCases := []struct {
		name  string
		query string
		want  int
	}{
		{name: "empty query keeps all", query: "", want: 3},
		{name: "whitespace query keeps all", query: "   ", want: 3},
		{name: "match by name", query: "comité", want: 1},
		{name: "match by category", query: "legal", want: 1},
		{name: "case insensitive", query: "EMPLEO", want: 1},
		{name: "no match", query: "deportes", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Filter(entries, tc.query)
			if len(got) != tc.want {
				t.Errorf("Filter(%q) returned %d entries, want %d", tc.query, len(got), tc.want)
			}
		})
	}
}
