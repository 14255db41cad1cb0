// Package remote provides access to the remote file tree over SFTP.
package remote

import (
	"io"

	"github.com/lumipallolabs/sftpdive/internal/model"
)

// Port is the capability the browser and download workers consume: list a
// remote directory, open a remote file for reading. Implementations must be
// safe for concurrent use by multiple workers.
type Port interface {
	List(path string) ([]model.Entry, error)
	Open(path string) (io.ReadCloser, error)
	Close() error
}
