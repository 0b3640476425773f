package cosmos

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// apiVersion is the Cosmos DB REST API version all requests are pinned to.
const apiVersion = "2018-12-31"

// decodeAccountKey decodes the base64 master key from account settings.
func decodeAccountKey(key string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		// Deliberately omit the key material from the error.
		return nil, fmt.Errorf("%w: account key is not valid base64", ErrUnauthorized)
	}
	return decoded, nil
}

// signRequest computes the master-key authorization header for one request.
//
// The signature covers the verb, resource type, resource link, and the
// x-ms-date value, per the Cosmos REST auth contract. The resource link is
// case-sensitive; verb, resource type, and date are lowercased.
func signRequest(key []byte, verb, resourceType, resourceLink, date string) string {
	payload := strings.ToLower(verb) + "\n" +
		strings.ToLower(resourceType) + "\n" +
		resourceLink + "\n" +
		strings.ToLower(date) + "\n" +
		"\n"

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(payload))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return url.QueryEscape("type=master&ver=1.0&sig=" + signature)
}
