package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ID", "id"},
		{"FullName", "full_name"},
		{"UserID", "user_id"},
		{"Age", "age"},
		{"HTMLBody", "html_body"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, snakeCase(tt.in), tt.in)
	}
}
