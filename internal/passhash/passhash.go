// Package passhash hashes and verifies account passwords with Argon2id.
//
// Hashes are stored in the PHC string format, e.g.
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
//
// so the algorithm, its cost parameters, and the salt travel with the digest
// and verification never depends on current configuration.
package passhash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/donorbase/donorbase/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLength    = 32
	saltLength   = 16
)

var b64 = base64.RawStdEncoding

// Hash derives an Argon2id digest of password with a fresh random salt and
// returns it as a PHC-formatted string.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("salt generation: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		b64.EncodeToString(salt), b64.EncodeToString(digest))

	return encoded, nil
}

// Verify recomputes the digest of password using the parameters and salt
// embedded in encoded and compares in constant time. A hash that cannot be
// parsed yields common.ErrMalformedHash, which callers must keep distinct
// from a plain mismatch.
func Verify(password, encoded string) (bool, error) {
	salt, digest, time, memory, threads, err := decode(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(digest)))

	return subtle.ConstantTimeCompare(digest, candidate) == 1, nil
}

func decode(encoded string) (salt, digest []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, common.ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, common.ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, common.ErrMalformedHash
	}

	if salt, err = b64.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, common.ErrMalformedHash
	}
	if digest, err = b64.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, common.ErrMalformedHash
	}
	if len(digest) == 0 {
		return nil, nil, 0, 0, 0, common.ErrMalformedHash
	}

	return salt, digest, time, memory, threads, nil
}
