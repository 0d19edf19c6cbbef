package session

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// OrderIDLength is the number of characters in an order id.
const OrderIDLength = 12

// NewOrderID returns 12 upper-case hex characters (48 random bits) taken from
// the leading bytes of a v4 UUID, which precede its fixed version nibble.
func NewOrderID() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:OrderIDLength/2]))
}
