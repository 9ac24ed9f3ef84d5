package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/util"
)

// WriteSharedCredentials materializes the credential blob the platform
// injects through the TOKEN environment variable into ~/.aws/credentials,
// where the SDK's shared-config loader expects it. An empty blob writes
// nothing, leaving whatever credentials the host already has.
func WriteSharedCredentials(blob string) error {
	if strings.TrimSpace(blob) == "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".aws")
	if err := util.EnsureDir(dir); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "credentials"), []byte(blob), 0o600); err != nil {
		return fmt.Errorf("write aws credentials: %w", err)
	}
	return nil
}
