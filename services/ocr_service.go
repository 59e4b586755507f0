package services

import (
	"context"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// TextExtractor is the single OCR capability the prescription flow
// depends on. Backends are interchangeable; nothing downstream knows
// which engine produced the text.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// NewTextExtractor picks the backend from OCR_BACKEND ("tesseract" or
// "rekognition", default rekognition).
func NewTextExtractor() (TextExtractor, error) {
	if strings.EqualFold(os.Getenv("OCR_BACKEND"), "tesseract") {
		return &TesseractExtractor{}, nil
	}
	return NewRekognitionExtractor()
}

// RekognitionExtractor reads text with AWS Rekognition DetectText.
type RekognitionExtractor struct {
	client *rekognition.Client
}

func NewRekognitionExtractor() (*RekognitionExtractor, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionExtractor{client: rekognition.NewFromConfig(cfg)}, nil
}

func (r *RekognitionExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	out, err := r.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		return "", err
	}

	// keep LINE detections only; WORD entries duplicate their line
	var lines []string
	for _, d := range out.TextDetections {
		if d.Type == types.TextTypesLine && d.DetectedText != nil {
			lines = append(lines, *d.DetectedText)
		}
	}
	return strings.Join(lines, "\n"), nil
}
