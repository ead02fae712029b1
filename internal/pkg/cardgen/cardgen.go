package cardgen

import (
	"fmt"
	"math/rand"
	"time"
)

// Card is a display-only payment card generated at client creation.
// The numbers are never validated or charged anywhere.
type Card struct {
	Number string
	Expiry string
	CVV    string
}

var prefixes = []string{"4532", "5555", "4716", "5105"}

// Generate produces a random display card. Expiry lands 2-5 years out
// from the current wall clock.
func Generate() Card {
	prefix := prefixes[rand.Intn(len(prefixes))]
	number := fmt.Sprintf("%s %04d %04d %04d", prefix, rand.Intn(10000), rand.Intn(10000), rand.Intn(10000))

	expiry := time.Now().AddDate(2+rand.Intn(4), rand.Intn(12), 0)
	return Card{
		Number: number,
		Expiry: expiry.Format("01/06"),
		CVV:    fmt.Sprintf("%03d", 100+rand.Intn(900)),
	}
}
