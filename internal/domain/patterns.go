package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	nameRe          = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .,&'()\-]{0,99}$`)
	skuRe           = regexp.MustCompile(`^[A-Z0-9]{2,8}(-[A-Z0-9]{1,12}){0,3}$`)
	warehouseCodeRe = regexp.MustCompile(`^[A-Z]{2,4}-[0-9]{2,6}$`)
	emailRe         = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phoneRe         = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,19}$`)
)

const (
	maxDescriptionLen = 1000
	maxAddressLen     = 300
	// MaxPriceCents caps prices at 10 million in the major unit.
	MaxPriceCents = int64(1_000_000_000)
	// MaxQuantity caps stored quantities, reorder levels and single
	// movements.
	MaxQuantity = int64(1_000_000_000_000)
)

// Violation messages, one per field rule.
const (
	MsgID          = "id: must be a UUID"
	MsgName        = "name: 1-100 letters, digits, spaces or .,&'()- and must start with a letter or digit"
	MsgDescription = "description: at most 1000 characters"
	MsgSKU         = "sku: upper-case segments like ABC-123"
	MsgWarehouse   = "code: two to four letters, a dash and 2-6 digits, e.g. MX-001"
	MsgAddress     = "address: 1-300 characters"
	MsgEmail       = "email: must be a valid address"
	MsgPhone       = "phone: 7-20 digits, spaces, dashes or parentheses"
	MsgPrice       = "price_cents: must be between 0 and 1000000000"
	MsgQuantity    = "quantity: must be between 0 and 1000000000000"
	MsgReorder     = "reorder_level: must be between 0 and 1000000000000"
	MsgBrandID     = "brand_id: must be a UUID"
	MsgProviderID  = "provider_id: must be a UUID"
	MsgProductID   = "product_id: must be a UUID"
	MsgWarehouseID = "warehouse_id: must be a UUID"
	MsgDelta       = "delta: must be non-zero and at most 1000000000000 in magnitude"
	MsgIDs         = "ids: every id must be a UUID"
)

func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

func ValidIDs(ids []string) bool {
	for _, id := range ids {
		if !ValidID(id) {
			return false
		}
	}
	return true
}

func ValidName(s string) bool { return nameRe.MatchString(s) }

func ValidDescription(s string) bool { return utf8.RuneCountInString(s) <= maxDescriptionLen }

func ValidSKU(s string) bool { return skuRe.MatchString(s) }

func ValidWarehouseCode(s string) bool { return warehouseCodeRe.MatchString(s) }

func ValidAddress(s string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n > 0 && n <= maxAddressLen
}

func ValidEmail(s string) bool { return len(s) <= 254 && emailRe.MatchString(s) }

// ValidPhone accepts an empty phone; providers may only have an email.
func ValidPhone(s string) bool { return s == "" || phoneRe.MatchString(s) }

func ValidPrice(cents int64) bool { return cents >= 0 && cents <= MaxPriceCents }

func ValidQuantity(q int64) bool { return q >= 0 && q <= MaxQuantity }

// ValidDelta accepts a non-zero stock movement no larger than MaxQuantity.
func ValidDelta(d int64) bool { return d != 0 && d >= -MaxQuantity && d <= MaxQuantity }
