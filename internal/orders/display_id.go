package orders

import (
	"fmt"
	"math/rand/v2"
)

// NextDisplayID derives the customer-facing order id from the current
// store size: prefix plus the next ordinal, zero padded to four digits.
// Beyond 9999 orders the number simply widens, it is never truncated.
func NextDisplayID(prefix string, count int64) string {
	return fmt.Sprintf("%s%04d", prefix, count+1)
}

// RandomDisplayID is the fallback when the store count is unavailable.
// It draws from 1..9999; a collision with an existing id surfaces as a
// unique violation on insert rather than being retried here.
func RandomDisplayID(prefix string) string {
	return fmt.Sprintf("%s%04d", prefix, rand.IntN(9999)+1)
}
