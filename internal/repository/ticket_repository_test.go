package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"invoice", "invoice"},
		{"50%", `50\%`},
		{"user_name", `user\_name`},
		{`path\to`, `path\\to`},
		{"%_", `\%\_`},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.term), tc.term)
	}
}
