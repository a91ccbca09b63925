package types

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// UUID prefixes keep generated identifiers self-describing.
const (
	UUID_PREFIX_CONTRACT     = "contract"
	UUID_PREFIX_RENTAL_ITEM  = "item"
	UUID_PREFIX_CATALOG_ITEM = "cat"
	UUID_PREFIX_CUSTOMER     = "cust"
	UUID_PREFIX_REPORT       = "report"
	UUID_PREFIX_REQUEST      = "req"
)

// GenerateUUID returns a lowercase ULID.
func GenerateUUID() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader)
	return strings.ToLower(id.String())
}

// GenerateUUIDWithPrefix returns a prefixed lowercase ULID, e.g.
// "contract_01hq3k9f8c...".
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}
