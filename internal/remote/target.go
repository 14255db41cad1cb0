package remote

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is the ssh port used when the target does not name one.
const DefaultPort = 22

// Target identifies the remote endpoint to connect to. PortSet records
// whether the target string itself named a port, so an explicit ":22"
// stays distinguishable from the default.
type Target struct {
	User    string
	Host    string
	Port    int
	PortSet bool
}

// ParseTarget parses a "user@host" or "user@host:port" string
func ParseTarget(s string) (Target, error) {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return Target{}, fmt.Errorf("invalid target %q: expected user@host[:port]", s)
	}

	user := s[:at]
	hostport := s[at+1:]
	if user == "" {
		return Target{}, fmt.Errorf("invalid target %q: empty user", s)
	}
	if hostport == "" {
		return Target{}, fmt.Errorf("invalid target %q: empty host", s)
	}

	t := Target{User: user, Host: hostport, Port: DefaultPort}

	if host, portStr, err := net.SplitHostPort(hostport); err == nil {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return Target{}, fmt.Errorf("invalid target %q: bad port %q", s, portStr)
		}
		t.Host = host
		t.Port = port
		t.PortSet = true
	}

	if t.Host == "" {
		return Target{}, fmt.Errorf("invalid target %q: empty host", s)
	}

	return t, nil
}

// Addr returns the host:port dial address
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// String renders the target back to user@host:port form
func (t Target) String() string {
	return t.User + "@" + t.Addr()
}
