package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/google/uuid"
)

// FormTokens issues and verifies the per-placement token embedded in
// configuration forms.
type FormTokens struct {
	secret []byte
}

// NewFormTokens keys tokens with secret. An empty secret is replaced by a
// random one, so tokens do not survive a restart.
func NewFormTokens(secret string) *FormTokens {
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
	}
	return &FormTokens{secret: []byte(secret)}
}

// Issue returns the token for placementID.
func (t *FormTokens) Issue(placementID string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte("block_configure:" + placementID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether token was issued for placementID.
func (t *FormTokens) Verify(placementID, token string) bool {
	if token == "" {
		return false
	}
	return hmac.Equal([]byte(t.Issue(placementID)), []byte(token))
}
