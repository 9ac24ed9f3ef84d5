package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/config"
)

// NewAnalyzer builds the analyzer named by the config. "textract" is the
// production service; "mock" keeps local runs and tests off the network.
func NewAnalyzer(ctx context.Context, cfg config.Config) (TableAnalyzer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.AnalysisProvider)) {
	case "mock":
		return NewMockAnalyzer(), nil
	case "textract":
		return NewTextractAnalyzer(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported analysis provider: %s", cfg.AnalysisProvider)
	}
}
