package output

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/restodata/restogen/internal/cloudwriter"
	"github.com/restodata/restogen/internal/models"
)

// S3Output uploads the canonical JSON arrays as one object per
// collection under <folder>/<collection>.json.
type S3Output struct {
	factory cloudwriter.CloudWriterFactory
	bucket  string
	folder  string
}

func NewS3Output(cfg models.CloudStorageConfig, folder string) (*S3Output, error) {
	if cfg.BucketName == "" {
		return nil, &SinkError{Sink: "s3", Err: fmt.Errorf("bucket name is required")}
	}

	factory, err := cloudwriter.NewS3WriterFactory(cfg.Region)
	if err != nil {
		return nil, &SinkError{Sink: "s3", Err: fmt.Errorf("creating writer factory: %w", err)}
	}
	return &S3Output{factory: factory, bucket: cfg.BucketName, folder: folder}, nil
}

func (s *S3Output) WriteDataset(ctx context.Context, dataset *models.Dataset) error {
	for _, collection := range dataset.Collections() {
		data, err := json.MarshalIndent(collection.Docs, "", "  ")
		if err != nil {
			return &SinkError{Sink: "s3", Err: fmt.Errorf("encoding %s: %w", collection.Name, err)}
		}

		objectPath := path.Join(s.folder, collection.Name+".json")
		w, err := s.factory.NewWriter(s.bucket, objectPath)
		if err != nil {
			return &SinkError{Sink: "s3", Err: fmt.Errorf("creating writer for %s: %w", objectPath, err)}
		}
		if _, err := w.Write(data); err != nil {
			return &SinkError{Sink: "s3", Err: fmt.Errorf("buffering %s: %w", objectPath, err)}
		}
		if err := w.Close(); err != nil {
			return &SinkError{Sink: "s3", Err: fmt.Errorf("uploading %s: %w", objectPath, err)}
		}

		log.WithFields(logrus.Fields{
			"collection": collection.Name,
			"records":    len(collection.Docs),
			"object":     objectPath,
		}).Info("uploaded collection")
	}
	return nil
}

func (s *S3Output) Close() error {
	return nil
}
