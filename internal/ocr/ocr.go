// Package ocr reads text off uploaded certificate images with Google Cloud
// Vision.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// Reader returns the text found in an image.
type Reader interface {
	Text(ctx context.Context, image []byte) (string, error)
}

// Default is nil until Vision is configured.
var Default Reader

var ErrNoText = errors.New("could not extract text from image")

type Vision struct {
	credentialsFile string
}

// NewVision uses credentialsFile when set, application default credentials
// otherwise.
func NewVision(credentialsFile string) *Vision {
	return &Vision{credentialsFile: credentialsFile}
}

func (v *Vision) Text(ctx context.Context, image []byte) (string, error) {
	var opts []option.ClientOption
	if v.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(v.credentialsFile))
	}
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to init OCR client: %w", err)
	}
	defer client.Close()

	resp, err := client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_TEXT_DETECTION, MaxResults: 1}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("vision text detection failed: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return "", ErrNoText
	}
	r := resp.GetResponses()[0]
	if e := r.GetError(); e != nil && e.GetMessage() != "" {
		return "", fmt.Errorf("vision text detection failed: %s", e.GetMessage())
	}
	if full := r.GetFullTextAnnotation().GetText(); strings.TrimSpace(full) != "" {
		return full, nil
	}
	anns := r.GetTextAnnotations()
	if len(anns) == 0 || strings.TrimSpace(anns[0].GetDescription()) == "" {
		return "", ErrNoText
	}
	return anns[0].GetDescription(), nil
}
