package reports

import "context"

// Log port (interface untuk persistence)
//
// Append rewrites the whole backing file; LoadAll returns rows in file
// order. A missing backing file is not an error, just an empty log.
type Log interface {
	Append(ctx context.Context, rec *Record) error
	LoadAll(ctx context.Context) ([]*Record, error)

	// Path is the on-disk location of the backing file, for export/archive.
	Path() string
}

// Archiver port (interface untuk snapshot off-box)
type Archiver interface {
	Archive(ctx context.Context, localPath, key string) (string, error)
}
