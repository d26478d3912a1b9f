package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listOptions struct {
	Page     int      `url:"page"`
	Limit    int      `url:"limit,omitempty"`
	Avatars  *bool    `url:"avatars,omitempty"`
	Sorting  string   `url:"sorting,omitempty"`
	Statuses []string `url:"statuses,brackets,omitempty"`
}

func TestValues(t *testing.T) {
	yes := true
	tests := []struct {
		name string
		opts any
		want string
	}{
		{
			name: "nil options",
			opts: nil,
			want: "",
		},
		{
			name: "nil pointer",
			opts: (*listOptions)(nil),
			want: "",
		},
		{
			name: "page zero is kept",
			opts: &listOptions{},
			want: "page=0",
		},
		{
			name: "optional fields",
			opts: &listOptions{Page: 2, Limit: 50, Avatars: &yes, Sorting: "name"},
			want: "avatars=true&limit=50&page=2&sorting=name",
		},
		{
			name: "bracket lists",
			opts: &listOptions{Statuses: []string{"open", "closed"}},
			want: "page=0&statuses%5B%5D=open&statuses%5B%5D=closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals, err := Values(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, vals.Encode())
		})
	}
}

func TestNested(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		vals := url.Values{}
		Nested("alwaysFiltersDTO", []map[string]any{
			{"type": 5, "value": []string{"open", "in progress"}, "expr": 1},
			{"type": "title", "value": "Clash 1"},
		}, vals)

		assert.Equal(t, url.Values{
			"alwaysFiltersDTO[0][expr]":     {"1"},
			"alwaysFiltersDTO[0][type]":     {"5"},
			"alwaysFiltersDTO[0][value][0]": {"open"},
			"alwaysFiltersDTO[0][value][1]": {"in progress"},
			"alwaysFiltersDTO[1][type]":     {"title"},
			"alwaysFiltersDTO[1][value]":    {"Clash 1"},
		}, vals)
	})

	t.Run("scalars", func(t *testing.T) {
		vals := url.Values{}
		Nested("c", map[string]any{
			"flag":  false,
			"float": 1.5,
			"big":   float64(1000000),
			"nil":   nil,
		}, vals)

		assert.Equal(t, url.Values{
			"c[big]":   {"1000000"},
			"c[flag]":  {"false"},
			"c[float]": {"1.5"},
		}, vals)
	})

	t.Run("deterministic", func(t *testing.T) {
		in := map[string]any{"b": 1, "a": map[string]any{"z": 1, "y": 2}, "c": []int{3, 4}}
		first, second := url.Values{}, url.Values{}
		Nested("p", in, first)
		Nested("p", in, second)
		assert.Equal(t, first.Encode(), second.Encode())
		assert.Equal(t, []string{"p[a][y]", "p[a][z]", "p[b]", "p[c][0]", "p[c][1]"}, SortedKeys(first))
	})
}
