package filesystem

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Exported constants.
const (
	// DefaultSFTPPort is used when an sftp:// URL names no port
	DefaultSFTPPort = 22
)

// Exported variables.
var (
	ErrInvalidSFTPURL = errors.New("invalid SFTP URL")
)

// ParsedPath represents either a local path or an SFTP URL.
type ParsedPath struct {
	IsRemote bool

	// For local paths
	LocalPath string

	// For SFTP paths
	Host string
	Port int
	User string
	Path string // Remote path
}

// ParsePath parses a path string, detecting whether it's a local path or SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/dir
// Port is optional (defaults to 22)
// Examples:
//   - sftp://joe@myserver.com/projects/show/scenes
//   - sftp://joe@myserver.com:2222//mnt/projects/scenes
//   - /local/path/to/scenes (local path)
func ParsePath(path string) (*ParsedPath, error) {
	if strings.HasPrefix(path, "sftp://") {
		return parseSFTPURL(path)
	}

	return &ParsedPath{
		IsRemote:  false,
		LocalPath: path,
	}, nil
}

// Display renders a path on the same filesystem as p, e.g. a saved scene
// file inside a remote folder, in the form the user typed the folder.
func (p *ParsedPath) Display(path string) string {
	if !p.IsRemote {
		return path
	}

	host := p.Host
	if p.Port != DefaultSFTPPort {
		host = net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	}

	// Inverse of the path convention in parseSFTPURL: an absolute remote
	// path keeps its slash and ends up after a double slash
	if path == "." {
		path = ""
	}

	return fmt.Sprintf("sftp://%s@%s/%s", p.User, host, strings.TrimPrefix(path, "./"))
}

// parseSFTPURL parses an SFTP URL into its components.
//
//nolint:cyclop // Complexity from comprehensive SFTP URL validation (scheme, user, host, port, path)
func parseSFTPURL(sftpURL string) (*ParsedPath, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSFTPURL, err)
	}

	if u.Scheme != "sftp" {
		return nil, fmt.Errorf("%w: expected sftp:// scheme, got %s://", ErrInvalidSFTPURL, u.Scheme)
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, fmt.Errorf("%w: must include username (sftp://user@host/path)", ErrInvalidSFTPURL)
	}
	user := u.User.Username()

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: must include host", ErrInvalidSFTPURL)
	}

	port := DefaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid port number: %w", ErrInvalidSFTPURL, err)
		}
		port = p
	}

	// SFTP path convention:
	//   sftp://user@host/path  → relative to home directory (strip leading /)
	//   sftp://user@host//path → absolute path /path (strip one /)
	//   sftp://user@host       → home directory (.)
	remotePath := u.Path
	//nolint:gocritic // if-else chain is clearer than switch for mixed conditions (OR, prefix check, fallthrough)
	if remotePath == "" || remotePath == "/" {
		remotePath = "."
	} else if strings.HasPrefix(remotePath, "//") {
		remotePath = remotePath[1:]
	} else {
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     user,
		Path:     remotePath,
	}, nil
}
