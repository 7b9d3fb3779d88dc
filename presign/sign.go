package presign

import (
	"crypto/rand"
	"crypto/sha256"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
	gchash "github.com/consensys/gnark-crypto/hash"
)

// GenerateKey creates a fresh EdDSA key pair.
func GenerateKey() (*eddsa.PrivateKey, error) {
	return eddsa.GenerateKey(rand.Reader)
}

// PublicKeyBytes returns the serialized public key of a private key.
func PublicKeyBytes(priv *eddsa.PrivateKey) []byte {
	return priv.PublicKey.Bytes()
}

// digest folds arbitrary payload bytes into the BN254 scalar field so the
// curve's EdDSA can sign them.
func digest(payload []byte) []byte {
	sum := sha256.Sum256(payload)
	var element fr.Element
	element.SetBytes(sum[:])
	out := element.Bytes()
	return out[:]
}

// Sign signs canonically encoded payload bytes.
func Sign(priv *eddsa.PrivateKey, payload []byte) ([]byte, error) {
	return priv.Sign(digest(payload), gchash.MIMC_BN254.New())
}

// Verify reports whether sig is a valid signature over payload by the key
// serialized in pub.
func Verify(pub, payload, sig []byte) (bool, error) {
	var key eddsa.PublicKey
	if _, err := key.SetBytes(pub); err != nil {
		return false, err
	}
	return key.Verify(sig, digest(payload), gchash.MIMC_BN254.New())
}
