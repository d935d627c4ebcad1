package urlsigner

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"slices"
	"strings"

	"golang.org/x/crypto/md4"       //nolint:staticcheck // kept for interoperability with legacy signers
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // kept for interoperability with legacy signers
	"golang.org/x/crypto/sha3"
)

// Algorithm identifies the message digest an HMAC strategy signs with.
type Algorithm string

const (
	MD4        Algorithm = "md4"
	MD5        Algorithm = "md5"
	SHA1       Algorithm = "sha1"
	SHA224     Algorithm = "sha224"
	SHA256     Algorithm = "sha256"
	SHA384     Algorithm = "sha384"
	SHA512     Algorithm = "sha512"
	SHA512_224 Algorithm = "sha512/224"
	SHA512_256 Algorithm = "sha512/256"
	SHA3_224   Algorithm = "sha3-224"
	SHA3_256   Algorithm = "sha3-256"
	SHA3_384   Algorithm = "sha3-384"
	SHA3_512   Algorithm = "sha3-512"
	RIPEMD160  Algorithm = "ripemd160"
)

// algorithms is fixed at compile time; there is no registration hook.
var algorithms = map[Algorithm]func() hash.Hash{
	MD4:        md4.New,
	MD5:        md5.New,
	SHA1:       sha1.New,
	SHA224:     sha256.New224,
	SHA256:     sha256.New,
	SHA384:     sha512.New384,
	SHA512:     sha512.New,
	SHA512_224: sha512.New512_224,
	SHA512_256: sha512.New512_256,
	SHA3_224:   func() hash.Hash { return sha3.New224() },
	SHA3_256:   func() hash.Hash { return sha3.New256() },
	SHA3_384:   func() hash.Hash { return sha3.New384() },
	SHA3_512:   func() hash.Hash { return sha3.New512() },
	RIPEMD160:  ripemd160.New,
}

// ParseAlgorithm resolves a case-insensitive identifier such as "SHA256".
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := algorithms[alg]; !ok {
		return "", newError(ErrUnsupportedAlgorithm, nil, "unknown or unsupported algorithm %q", name)
	}
	return alg, nil
}

// SupportedAlgorithms returns every accepted identifier in sorted order.
func SupportedAlgorithms() []Algorithm {
	out := make([]Algorithm, 0, len(algorithms))
	for alg := range algorithms {
		out = append(out, alg)
	}
	slices.Sort(out)
	return out
}

// Size returns the digest length in bytes, or 0 for an unsupported algorithm.
// Hex encoded signatures are twice as long.
func (a Algorithm) Size() int {
	fn, ok := algorithms[a]
	if !ok {
		return 0
	}
	return fn().Size()
}

func (a Algorithm) String() string {
	return string(a)
}

func (a Algorithm) hasher() func() hash.Hash {
	return algorithms[a]
}
