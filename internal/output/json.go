package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/restodata/restogen/internal/models"
)

// JSONOutput writes one indented JSON array per collection. This is
// the canonical, environment-independent output format.
type JSONOutput struct {
	basePath string
	folder   string
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{basePath: basePath, folder: folder}
}

func (j *JSONOutput) WriteDataset(ctx context.Context, dataset *models.Dataset) error {
	dir := filepath.Join(j.basePath, j.folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return &SinkError{Sink: "json", Err: fmt.Errorf("creating output directory: %w", err)}
	}

	for _, collection := range dataset.Collections() {
		data, err := json.MarshalIndent(collection.Docs, "", "  ")
		if err != nil {
			return &SinkError{Sink: "json", Err: fmt.Errorf("encoding %s: %w", collection.Name, err)}
		}

		path := filepath.Join(dir, collection.Name+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return &SinkError{Sink: "json", Err: fmt.Errorf("writing %s: %w", collection.Name, err)}
		}

		log.WithFields(logrus.Fields{
			"collection": collection.Name,
			"records":    len(collection.Docs),
			"path":       path,
		}).Info("wrote collection")
	}
	return nil
}

func (j *JSONOutput) Close() error {
	return nil
}
