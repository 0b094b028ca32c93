package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Presigner issues and verifies time-limited upload authorizations scoped to
// a single object key, so clients can PUT image bytes without holding any
// long-lived credential.
type Presigner struct {
	Secret []byte
	TTL    time.Duration
}

func (p *Presigner) sign(key string, exp int64) string {
	mac := hmac.New(sha256.New, p.Secret)
	fmt.Fprintf(mac, "%s|%d", key, exp)
	return hex.EncodeToString(mac.Sum(nil))
}

// Issue returns the expiry and signature for an upload of the given key.
func (p *Presigner) Issue(key string, now time.Time) (exp int64, sig string) {
	exp = now.Add(p.TTL).Unix()
	return exp, p.sign(key, exp)
}

// Verify checks the signature and that the authorization has not expired.
func (p *Presigner) Verify(key, expStr, sig string, now time.Time) bool {
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return false
	}
	if now.Unix() > exp {
		return false
	}
	want := p.sign(key, exp)
	return hmac.Equal([]byte(want), []byte(sig))
}
