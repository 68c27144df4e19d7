// Package storage stores order documents behind a disk abstraction. The
// "local" driver writes under STORAGE_LOCAL_ROOT; the "s3" driver talks to
// any S3-compatible bucket (AWS, MinIO, R2) and boots only when S3_BUCKET
// is set.
package storage

import "io"

// Disk is what a storage driver must provide. Paths use forward slashes
// regardless of platform.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	GetStream(path string) (io.ReadCloser, error)
	Exists(path string) bool
	Size(path string) (int64, error)
	URL(path string) string
	Delete(path string) error
	Files(directory string) ([]string, error)
}
