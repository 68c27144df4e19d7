package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/careerloft/careerloft/config"
	"github.com/careerloft/careerloft/pkg/logger"
)

var (
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
)

// Connect boots the configured disks. Called once at startup; calling it
// again rebuilds the disk map, which is what tests rely on.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	defaultDisk = config.Get("STORAGE_DISK", "local")
	disks = map[string]Disk{"local": newLocalDisk()}

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns a named disk. Unknown names panic: a misconfigured disk is a
// boot-time mistake, not a runtime condition.
func Use(name string) Disk {
	mu.RLock()
	d, ok := disks[name]
	mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk installs a custom driver under name.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

// The package-level helpers operate on the default disk.

func active() Disk { return Use(defaultDisk) }

func Put(path string, content []byte) error     { return active().Put(path, content) }
func PutStream(path string, r io.Reader) error  { return active().PutStream(path, r) }
func Get(path string) ([]byte, error)           { return active().Get(path) }
func GetStream(path string) (io.ReadCloser, error) { return active().GetStream(path) }
func Exists(path string) bool                   { return active().Exists(path) }
func Size(path string) (int64, error)           { return active().Size(path) }
func URL(path string) string                    { return active().URL(path) }
func Delete(path string) error                  { return active().Delete(path) }
func Files(directory string) ([]string, error)  { return active().Files(directory) }
