// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Int64Between generates a random integer between min and max inclusive.
func Int64Between(min, max int64) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		panic(err)
	}

	return min + nBig.Int64()
}

func fromSet(set string, n int) string {
	var sb strings.Builder

	k := len(set)

	for i := 0; i < n; i++ {
		c := set[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return fromSet(alphabet, n)
}

// Digits generates a random numeric string of length n.
func Digits(n int) string {
	return fromSet(digits, n)
}

// AccountID generates a random opaque account id.
func AccountID() string {
	return uuid.NewString()
}

// Username generates a random valid username.
func Username() string {
	return String(6) + "_" + Digits(2)
}

// DisplayName generates a random display name.
func DisplayName() string {
	name := String(8)
	return strings.ToUpper(name[:1]) + name[1:]
}

// Pin generates a random 4 digits PIN.
func Pin() string {
	return Digits(4)
}

// AmountBetween generates a random amount of money in minor units between min and max.
func AmountBetween(min, max int64) int64 {
	return Int64Between(min, max)
}
