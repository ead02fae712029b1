package cardgen

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	numberPattern = regexp.MustCompile(`^(4532|5555|4716|5105) \d{4} \d{4} \d{4}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

func TestGenerate_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		card := Generate()

		assert.Regexp(t, numberPattern, card.Number)
		assert.Regexp(t, expiryPattern, card.Expiry)

		require.Len(t, card.CVV, 3)
		cvv, err := strconv.Atoi(card.CVV)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cvv, 100)
		assert.LessOrEqual(t, cvv, 999)
	}
}
