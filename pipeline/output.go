package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bcroads/drivebc-kml/config"
)

// WriteFile persists a serialized document per the output configuration.
// Returns the path written.
func (p *Pipeline) WriteFile(data []byte) (string, error) {
	return WriteOutput(p.cfg.Output, data, time.Now())
}

// WriteOutput writes data into cfg.Dir, creating the directory when
// absent. Export mode stamps the filename with now; live mode reuses the
// fixed configured name so map viewers can poll a stable URL or path.
func WriteOutput(cfg config.OutputConfig, data []byte, now time.Time) (string, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", cfg.Dir, err)
	}

	name := cfg.Filename
	if cfg.Mode == "export" {
		name = fmt.Sprintf("drivebc_events_%s.kml", now.Format("20060102_150405"))
	}

	path := filepath.Join(cfg.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
