package port

import "context"

// FetchedImage is a document retrieved by URL, ready for transmission.
type FetchedImage struct {
	Data        []byte
	Base64      string
	ContentType string
	Size        int64
}

// ImageFetcher retrieves an uploaded document from a public URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*FetchedImage, error)
}
