package services

import (
	"context"

	"github.com/otiai10/gosseract/v2"
)

// TesseractExtractor reads text with a local Tesseract install via
// gosseract. Useful when the service runs without AWS credentials.
type TesseractExtractor struct{}

func (t *TesseractExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", err
	}
	return client.Text()
}
