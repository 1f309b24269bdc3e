package output

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/restodata/restogen/internal/models"
)

var log = logrus.New()

// DatasetSink receives one finalized dataset. Sinks are independent:
// a failure in one never blocks or corrupts another, and none of them
// mutate the dataset.
type DatasetSink interface {
	WriteDataset(ctx context.Context, dataset *models.Dataset) error
	Close() error
}

// SinkError tags a persistence failure with the sink it came from so
// callers can report which stage failed and keep going.
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("%s sink: %v", e.Sink, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
