package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "midnight-wool-coat", Slugify("  Midnight Wool Coat! "))
	assert.Equal(t, "cafe-creme", Slugify("Cafe_Creme"))
	assert.Equal(t, "", Slugify("!!!"))
}
