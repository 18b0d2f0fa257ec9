package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"verse-quiz-points/internal/domain"
	"verse-quiz-points/internal/points"
)

// TableLoader reads point tables from <dir>/<name>.yaml. Each file is laid
// over the built-in table, so it only needs the entries it changes.
type TableLoader struct {
	dir string
}

func NewTableLoader(dir string) *TableLoader {
	return &TableLoader{dir: dir}
}

func (l *TableLoader) LoadTable(_ context.Context, name string) (domain.PointTable, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return domain.PointTable{}, fmt.Errorf("%w: bad name %q", domain.ErrTableNotFound, name)
	}
	path := filepath.Join(l.dir, name+".yaml")
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.PointTable{}, fmt.Errorf("%w: %s", domain.ErrTableNotFound, path)
		}
		return domain.PointTable{}, err
	}
	cfg, err := ReadConfig(path)
	if err != nil {
		return domain.PointTable{}, err
	}
	return domain.PointTable{Name: name, Config: cfg, UpdatedAt: info.ModTime().UTC()}, nil
}

// ReadConfig decodes a YAML point table from path on top of the built-in table.
func ReadConfig(path string) (points.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return points.Config{}, err
	}
	return DecodeConfig(data)
}

// DecodeConfig decodes YAML on top of the built-in table. Level, threshold
// and tweak entries merge per field.
func DecodeConfig(data []byte) (points.Config, error) {
	cfg, err := points.OverlayYAML(points.DefaultConfig(), data)
	if err != nil {
		return points.Config{}, fmt.Errorf("decode point table: %w", err)
	}
	return cfg, nil
}
