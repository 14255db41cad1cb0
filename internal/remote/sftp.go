package remote

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/lumipallolabs/sftpdive/internal/model"
)

// DialTimeout bounds the initial tcp+ssh handshake.
const DialTimeout = 15 * time.Second

// SFTPPort implements Port over a single sftp session. The sftp layer
// multiplexes concurrent requests, so one client serves all workers.
type SFTPPort struct {
	conn *ssh.Client
	sftp *sftp.Client
}

// Dial connects and authenticates with the given password. Host keys are not
// verified; the tool targets interactive ad-hoc use the way scp -o
// StrictHostKeyChecking=no does.
func Dial(target Target, password string) (*SFTPPort, error) {
	cfg := &ssh.ClientConfig{
		User:            target.User,
		Auth:            []ssh.AuthMethod{ssh.Password(password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         DialTimeout,
	}

	conn, err := ssh.Dial("tcp", target.Addr(), cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", target.Addr(), err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sftp session: %w", err)
	}

	return &SFTPPort{conn: conn, sftp: client}, nil
}

// List returns the sorted listing of a remote directory. Symlinks appear as
// files and are never followed.
func (p *SFTPPort) List(path string) ([]model.Entry, error) {
	infos, err := p.sftp.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	entries := make([]model.Entry, 0, len(infos))
	for _, fi := range infos {
		e := model.Entry{Name: fi.Name(), Kind: model.KindFile, Size: fi.Size()}
		if fi.IsDir() {
			e.Kind = model.KindDir
			e.Size = 0
		}
		entries = append(entries, e)
	}

	model.Sort(entries)
	return entries, nil
}

// Open opens a remote file for streaming read
func (p *SFTPPort) Open(path string) (io.ReadCloser, error) {
	f, err := p.sftp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Getwd resolves the session's initial working directory
func (p *SFTPPort) Getwd() (string, error) {
	return p.sftp.Getwd()
}

// Close tears down the sftp session and the ssh connection
func (p *SFTPPort) Close() error {
	sftpErr := p.sftp.Close()
	connErr := p.conn.Close()
	if sftpErr != nil {
		return sftpErr
	}
	return connErr
}
