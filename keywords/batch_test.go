package keywords

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestExtractBatch(t *testing.T) {
	t.Parallel()

	docs := [][]Token{
		toks(gardenText),
		toks("나무/NNG"),
		toks("나무/NNG 심/VV 꽃/NNG"),
		nil,
	}

	for _, limit := range []int{0, 1, 3, 16} {
		got, err := New().ExtractBatch(context.Background(), docs, 3, limit)
		if err != nil {
			t.Fatalf("limit %d: ExtractBatch() error = %v", limit, err)
		}
		if len(got) != len(docs) {
			t.Fatalf("limit %d: got %d results, want %d", limit, len(got), len(docs))
		}
		for i, doc := range docs {
			want := Extract(doc, 3)
			if !slices.Equal(got[i], want) {
				t.Errorf("limit %d: result[%d] = %v, want %v", limit, i, got[i], want)
			}
		}
	}
}

func TestExtractBatchEmpty(t *testing.T) {
	t.Parallel()

	got, err := New().ExtractBatch(context.Background(), nil, 5, 2)
	if err != nil {
		t.Fatalf("ExtractBatch() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ExtractBatch() = %v, want empty", got)
	}
}

func TestExtractBatchCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := [][]Token{toks(gardenText), toks(gardenText)}
	got, err := New().ExtractBatch(ctx, docs, 5, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ExtractBatch() error = %v, want context.Canceled", err)
	}
	if got != nil {
		t.Errorf("ExtractBatch() = %v, want nil", got)
	}
}
