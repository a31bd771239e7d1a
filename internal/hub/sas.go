package hub

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"
)

// BuildToken creates a SAS token for the hub's message-submission endpoint.
// A fresh token must be generated for every dispatch attempt: the signature
// binds the exact target URI and expiry, so stale tokens are rejected by
// the gateway.
func BuildToken(creds Credentials, hubName string, ttl time.Duration) (targetURI, token string) {
	targetURI = creds.Endpoint + hubName + "/messages"
	expiry := time.Now().Unix() + int64(ttl.Seconds())
	return targetURI, buildTokenAt(targetURI, creds.KeyName, creds.KeyValue, expiry)
}

// buildTokenAt signs the target URI for a fixed expiry.
//
// The signature is HMAC-SHA256 over "urlEncode(target)\nexpiry". Encoding
// uses url.QueryEscape, which percent-encodes with spaces as "+", matching
// the gateway's quote_plus-style decoding.
func buildTokenAt(targetURI, keyName, keyValue string, expiry int64) string {
	encodedURI := url.QueryEscape(targetURI)

	mac := hmac.New(sha256.New, []byte(keyValue))
	mac.Write([]byte(fmt.Sprintf("%s\n%d", encodedURI, expiry)))
	signature := url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	return fmt.Sprintf("SharedAccessSignature sr=%s&sig=%s&se=%d&skn=%s",
		encodedURI, signature, expiry, keyName)
}
