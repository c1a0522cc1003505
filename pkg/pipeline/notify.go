package pipeline

import (
	"context"
	"fmt"
)

// Notifier delivers status updates and documents to the user. Delivery
// failures never fail a run; the controller logs and keeps going.
type Notifier interface {
	Notify(ctx context.Context, user string, text string) error
	SendDocument(ctx context.Context, user string, name string, content []byte) error
}

// NopNotifier drops everything. Useful for one-shot CLI runs where the
// progress display already covers the console.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string) error { return nil }

func (NopNotifier) SendDocument(context.Context, string, string, []byte) error { return nil }

// Chunk splits text into pieces of at most size runes, never cutting
// inside a multi-byte character. Pieces beyond the first carry a
// "Part n/total" header so the reader can reassemble them.
func Chunk(text string, size int) []string {
	if size <= 0 || len(text) <= size {
		return []string{text}
	}
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}
	var raw []string
	for len(runes) > 0 {
		n := size
		if n > len(runes) {
			n = len(runes)
		}
		raw = append(raw, string(runes[:n]))
		runes = runes[n:]
	}
	out := make([]string, len(raw))
	for i, piece := range raw {
		out[i] = fmt.Sprintf("Part %d/%d\n%s", i+1, len(raw), piece)
	}
	return out
}

// deliver sends text to the user, chunking when it exceeds chunkSize and
// falling back to a document attachment when it exceeds attachThreshold
// and the notifier accepts one. Errors are returned for logging only.
func deliver(ctx context.Context, n Notifier, user, name, text string, chunkSize, attachThreshold int) error {
	if attachThreshold > 0 && len(text) > attachThreshold {
		if err := n.SendDocument(ctx, user, name, []byte(text)); err == nil {
			return nil
		}
	}
	for _, piece := range Chunk(text, chunkSize) {
		if err := n.Notify(ctx, user, piece); err != nil {
			return err
		}
	}
	return nil
}
