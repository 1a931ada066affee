package mailparse

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/emersion/go-message/mail"
)

func TestBuildMessage(t *testing.T) {
	raw, err := BuildMessage("me@example.com", "Alice <alice@example.com>", "Re: status update", "Dear Alice,\n\nAll good here.\n")
	if err != nil {
		t.Fatalf("BuildMessage() error: %v", err)
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to read built message: %v", err)
	}

	subject, err := mr.Header.Subject()
	if err != nil || subject != "Re: status update" {
		t.Errorf("Subject = %q (err %v), want 'Re: status update'", subject, err)
	}

	toList, err := mr.Header.AddressList("To")
	if err != nil || len(toList) != 1 {
		t.Fatalf("AddressList(To) = %v (err %v), want one address", toList, err)
	}
	if toList[0].Address != "alice@example.com" {
		t.Errorf("To = %q, want 'alice@example.com'", toList[0].Address)
	}

	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("NextPart() error: %v", err)
	}
	body, err := io.ReadAll(part.Body)
	if err != nil {
		t.Fatalf("Reading body: %v", err)
	}
	if !strings.Contains(string(body), "All good here.") {
		t.Errorf("Body %q does not contain the original text", string(body))
	}
}

func TestBuildMessageBareRecipient(t *testing.T) {
	raw, err := BuildMessage("", "bob@example.com", "hello", "hi")
	if err != nil {
		t.Fatalf("BuildMessage() error: %v", err)
	}
	if !strings.Contains(string(raw), "bob@example.com") {
		t.Errorf("Built message does not address the recipient")
	}
}
