package mailparse

import (
	"encoding/base64"
	"mime"
	"regexp"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text
func DecodeHeader(encoded string) (string, error) {
	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}

// Simple regex to extract the bare address from a header value, which may contain a display name
var addressRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// ExtractAddress returns the first email address found in a From/To header value
func ExtractAddress(header string) string {
	return addressRe.FindString(header)
}

// ExtractPlainText pulls the plain-text body out of a Gmail message payload.
// For multipart messages every text/plain part is concatenated; a single-part
// message has its one body decoded regardless of MIME type.
func ExtractPlainText(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if len(payload.Parts) == 0 {
		if payload.Body == nil {
			return ""
		}
		return decodeBody(payload.Body.Data)
	}

	var sb strings.Builder
	collectPlainText(payload, &sb)
	return sb.String()
}

func collectPlainText(part *gmail.MessagePart, sb *strings.Builder) {
	if part.MimeType == "text/plain" && part.Body != nil {
		sb.WriteString(decodeBody(part.Body.Data))
	}
	for _, p := range part.Parts {
		collectPlainText(p, sb)
	}
}

// The Gmail API encodes part bodies as base64url, padded or not depending on the part
func decodeBody(data string) string {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}
