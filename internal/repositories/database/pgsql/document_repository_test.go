package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaper(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "frais bancaire", want: "frais bancaire"},
		{name: "percent becomes literal", in: "remise 5%", want: `remise 5\%`},
		{name: "underscore becomes literal", in: "ref_interne", want: `ref\_interne`},
		{name: "backslash escaped first", in: `a\b`, want: `a\\b`},
		{name: "mixed metacharacters", in: `100%_\`, want: `100\%\_\\`},
		{name: "empty stays empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, likeEscaper.Replace(tt.in))
		})
	}
}
