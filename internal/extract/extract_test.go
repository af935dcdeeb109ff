package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExtractTextFromBytes_NonPDFRejected(t *testing.T) {
	tests := []struct {
		name string
		mime string
	}{
		{name: "zip", mime: "application/zip"},
		{name: "plain text", mime: "text/plain"},
		{name: "docx", mime: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTextFromBytes(context.Background(), []byte("data"), tt.mime)
			if !errors.Is(err, ErrUnsupportedType) {
				t.Fatalf("expected ErrUnsupportedType for %s, got %v", tt.mime, err)
			}
		})
	}
}

func TestExtractTextFromBytes_MimeParamsStripped(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("not a real pdf"), "application/pdf; charset=binary")
	if errors.Is(err, ErrUnsupportedType) {
		t.Fatal("pdf with mime params should reach the pdf parser, not be rejected as unsupported")
	}
	if err == nil {
		t.Fatal("expected parse error for bogus pdf payload")
	}
}

func TestExtractTextFromBytes_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ExtractTextFromBytes(ctx, []byte("%PDF-1.4"), "application/pdf")
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("expected context cancellation error, got %v", err)
	}
}
