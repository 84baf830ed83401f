package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailShapeValid(t *testing.T) {
	valid := []string{
		"a@x.com",
		"first.last@example.co.uk",
		"user+tag@domain.io",
	}
	for _, email := range valid {
		assert.True(t, IsEmailShapeValid(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"@nodomain.com",
		"user@",
		"user@nodot",
		"user@dot.",
		"has space@x.com",
	}
	for _, email := range invalid {
		assert.False(t, IsEmailShapeValid(email), email)
	}
}
