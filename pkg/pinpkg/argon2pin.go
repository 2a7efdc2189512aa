// Package pinpkg hashes and checks short numeric PINs with argon2id.
package pinpkg

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Length is the number of digits in a PIN.
const Length = 4

var (
	// ErrMismatchedPin indicates that the PIN does not match the hash.
	ErrMismatchedPin = errors.New("pin does not match")
	// ErrMalformedHash indicates that the stored hash cannot be decoded.
	ErrMalformedHash = errors.New("malformed pin hash")
)

// Params are the argon2id parameters used for new hashes.
type Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultParams follow the OWASP minimum for argon2id.
var DefaultParams = Params{
	Memory:  19 * 1024,
	Time:    2,
	Threads: 1,
	SaltLen: 16,
	KeyLen:  32,
}

// dummyHash is checked against when there is no stored hash, so that a missing
// PIN costs the same as a wrong one.
var dummyHash = mustHash("0000")

// ValidFormat reports whether pin is exactly Length ASCII digits.
func ValidFormat(pin string) bool {
	if len(pin) != Length {
		return false
	}

	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}

	return true
}

// Hash returns the encoded argon2id hash of pin with a fresh random salt.
func Hash(pin string) (string, error) {
	return hashWith(pin, DefaultParams)
}

func hashWith(pin string, p Params) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to read salt: %w", err)
	}

	key := argon2.IDKey([]byte(pin), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

func mustHash(pin string) string {
	h, err := Hash(pin)
	if err != nil {
		panic(err)
	}

	return h
}

// Check compares pin with the encoded hash.
func Check(pin, encoded string) error {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(pin), salt, p.Time, p.Memory, p.Threads, uint32(len(key)))

	if subtle.ConstantTimeCompare(got, key) != 1 {
		return ErrMismatchedPin
	}

	return nil
}

// CheckNone spends the same work as Check and always fails. It is used when no
// hash exists for the account.
func CheckNone(pin string) error {
	_ = Check(pin, dummyHash)
	return ErrMismatchedPin
}

func decode(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))

	return p, salt, key, nil
}
