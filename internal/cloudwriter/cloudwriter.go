package cloudwriter

// CloudWriter buffers bytes for one remote object; Close flushes the
// object to the backing store.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
