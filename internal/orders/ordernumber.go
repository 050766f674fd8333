package orders

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NewOrderNumber builds a human-readable order number:
//
//	3DP-<base36 millis>-<base36 4 random bytes>
//
// Uniqueness is overwhelmingly probable but only enforced by the unique
// index on orders.order_number.
func NewOrderNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 36)

	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms, fall back to
		// the clock so order creation is not blocked.
		binary.BigEndian.PutUint32(buf[:], uint32(now.UnixNano()))
	}
	random := strconv.FormatUint(uint64(binary.BigEndian.Uint32(buf[:])), 36)

	return strings.ToUpper(fmt.Sprintf("3DP-%s-%s", millis, random))
}
