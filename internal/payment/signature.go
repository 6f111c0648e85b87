package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// VerifySignature checks an x-signature header of the form "ts=…,v1=…".
// The signed manifest is "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func VerifySignature(secret string, n Notification) error {
	if secret == "" {
		return fmt.Errorf("%w: webhook secret not configured", ErrInvalidSignature)
	}

	var ts, v1 string
	for _, part := range strings.Split(n.Signature, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return fmt.Errorf("%w: malformed x-signature header", ErrInvalidSignature)
	}

	expected := Sign(secret, n.DataID, n.RequestID, ts)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(v1))) {
		return fmt.Errorf("%w: signature mismatch", ErrInvalidSignature)
	}
	return nil
}

// Sign computes the hex HMAC-SHA256 of a notification manifest.
func Sign(secret, dataID, requestID, ts string) string {
	var manifest strings.Builder
	if dataID != "" {
		manifest.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		manifest.WriteString("request-id:" + requestID + ";")
	}
	manifest.WriteString("ts:" + ts + ";")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
