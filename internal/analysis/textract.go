package analysis

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/config"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/models"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/util"
)

// analyzeDocumentAPI is the one Textract call we make, as an interface so
// tests can stand in for the service.
type analyzeDocumentAPI interface {
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
}

// TextractAnalyzer detects tables with the synchronous AnalyzeDocument
// API. Only table structure is requested; no forms, no queries.
type TextractAnalyzer struct {
	client analyzeDocumentAPI
}

func NewTextractAnalyzer(ctx context.Context, cfg config.Config) (*TextractAnalyzer, error) {
	if err := WriteSharedCredentials(cfg.CredentialBlob); err != nil {
		return nil, err
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithSharedConfigProfile(cfg.AWSProfile),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &TextractAnalyzer{client: textract.NewFromConfig(awsCfg)}, nil
}

func (a *TextractAnalyzer) Name() string { return "textract" }

func (a *TextractAnalyzer) AnalyzeTables(ctx context.Context, image []byte, opts AnalyzeOptions) ([]models.Table, error) {
	if opts.SaveImagePath != "" {
		if err := util.WriteBytesAtomic(opts.SaveImagePath, image); err != nil {
			return nil, fmt.Errorf("retain submitted image: %w", err)
		}
	}
	out, err := a.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document:     &types.Document{Bytes: image},
		FeatureTypes: []types.FeatureType{types.FeatureTypeTables},
	})
	if err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	return TablesFromBlocks(out.Blocks), nil
}
