package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types (Stripe-style)
const (
	PrefixBooking      = "bk"
	PrefixSubscription = "sb"
	PrefixWaterSale    = "ws"
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and filename-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
// Use this only when you're certain the generation won't fail.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	id, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// ParsePrefixedID extracts the prefix and short ID from a prefixed ID string.
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// HasPrefix reports whether the prefixed ID carries the expected prefix.
func HasPrefix(prefixedID, expectedPrefix string) bool {
	prefix, _, err := ParsePrefixedID(prefixedID)
	return err == nil && prefix == expectedPrefix
}

// NewBookingID generates a new booking record ID.
func NewBookingID() string {
	return MustGenerateWithPrefix(PrefixBooking, DefaultLength)
}

// NewSubscriptionID generates a new subscription ID.
func NewSubscriptionID() string {
	return MustGenerateWithPrefix(PrefixSubscription, DefaultLength)
}

// NewWaterSaleID generates a new water sale ID.
func NewWaterSaleID() string {
	return MustGenerateWithPrefix(PrefixWaterSale, DefaultLength)
}
