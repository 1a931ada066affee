package mailparse

import (
	"bytes"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
)

// BuildMessage composes the raw RFC 822 message the Gmail API expects for
// draft creation and sending. The To header may carry a display name; only
// the bare address is used.
func BuildMessage(from, to, subject, body string) ([]byte, error) {
	toAddr := ExtractAddress(to)
	if toAddr == "" {
		toAddr = to
	}

	var h mail.Header
	h.SetDate(time.Now())
	if from != "" {
		h.SetAddressList("From", []*mail.Address{{Address: from}})
	}
	h.SetAddressList("To", []*mail.Address{{Address: toAddr}})
	h.SetSubject(subject)

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, body); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
