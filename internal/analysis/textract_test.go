package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

type fakeTextract struct {
	out *textract.AnalyzeDocumentOutput
	err error
	got *textract.AnalyzeDocumentInput
}

func (f *fakeTextract) AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error) {
	f.got = params
	return f.out, f.err
}

func TestTextractAnalyzerRequestsTablesOnly(t *testing.T) {
	fake := &fakeTextract{out: &textract.AnalyzeDocumentOutput{}}
	a := &TextractAnalyzer{client: fake}

	if _, err := a.AnalyzeTables(context.Background(), []byte("png bytes"), AnalyzeOptions{}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if fake.got == nil || fake.got.Document == nil {
		t.Fatal("no request sent")
	}
	if string(fake.got.Document.Bytes) != "png bytes" {
		t.Fatalf("image bytes mismatch")
	}
	if len(fake.got.FeatureTypes) != 1 || fake.got.FeatureTypes[0] != types.FeatureTypeTables {
		t.Fatalf("unexpected feature types: %v", fake.got.FeatureTypes)
	}
}

func TestTextractAnalyzerRetainsImageEvenOnFailure(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "submitted", "42-page1.png")
	fake := &fakeTextract{err: errors.New("service exploded")}
	a := &TextractAnalyzer{client: fake}

	_, err := a.AnalyzeTables(context.Background(), []byte("png bytes"), AnalyzeOptions{SaveImagePath: keep})
	if err == nil {
		t.Fatal("expected analyze error")
	}
	data, readErr := os.ReadFile(keep)
	if readErr != nil {
		t.Fatalf("submitted copy missing: %v", readErr)
	}
	if string(data) != "png bytes" {
		t.Fatalf("submitted copy corrupted: %q", data)
	}
}
