package extract

import (
	"context"
	"errors"
	"testing"
)

func TestExtractTextFromBytesRejectsImages(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg", "scan.jpg")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestExtractable(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		fileName string
		want     bool
	}{
		{name: "pdf", mimeType: "application/pdf", fileName: "doc.pdf", want: true},
		{name: "pdf with charset", mimeType: "application/pdf; charset=binary", fileName: "doc.pdf", want: true},
		{name: "octet-stream with pdf ext", mimeType: "application/octet-stream", fileName: "doc.pdf", want: true},
		{name: "jpeg", mimeType: "image/jpeg", fileName: "scan.jpg", want: false},
		{name: "png", mimeType: "image/png", fileName: "scan.png", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Extractable(tt.mimeType, tt.fileName); got != tt.want {
				t.Fatalf("Extractable(%q, %q) = %v, want %v", tt.mimeType, tt.fileName, got, tt.want)
			}
		})
	}
}

func TestExtractPDFInvalidData(t *testing.T) {
	if _, err := ExtractTextFromBytes(context.Background(), []byte("not a pdf"), "application/pdf", "doc.pdf"); err == nil {
		t.Fatal("expected error for invalid pdf bytes")
	}
}
