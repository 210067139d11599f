package pin

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"github.com/pkg/errors"
)

const editSecretBytes = 32

// makeEditSecret generates an opaque bearer token authorizing later edits of
// a pin. It is returned to the creating client exactly once.
func makeEditSecret() (string, error) {
	buf := make([]byte, editSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "generating edit secret")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CheckEditSecret compares the presented secret against the pin's in
// constant time.
func (p Pin) CheckEditSecret(secret string) bool {
	if p.EditSecret == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(p.EditSecret), []byte(secret)) == 1
}
