package utils

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

/*
   URI parlance (see https://www.rfc-editor.org/rfc/rfc3986.html#section-3.2):

       foo://example.com:8042/over/there?name=ferret#nose
       \_/   \______________/\_________/ \_________/ \__/
        |           |            |            |        |
     scheme     authority       path        query   fragment

   Where:
     authority   = [ userinfo "@" ] host [ ":" port ]
*/

// Authority represents host, port and userinfo (user/pass) in a URI
type Authority struct {
	host string
	port uint16
	url  *url.URL
}

// UserInfo represents user/pass portion of a URI
type UserInfo struct {
	url *url.URL
}

// Username returns the username of a URI UserInfo.  May be an empty string.
func (u UserInfo) Username() string {
	return u.url.User.Username()
}

// Password returns the password of a URI UserInfo.  May be an empty string.
func (u UserInfo) Password() string {
	p, _ := u.url.User.Password()
	return p
}

// String returns a string representation of authority.  It does not include password per
// https://tools.ietf.org/html/rfc3986#section-3.2.1
func (a Authority) String() string {
	authority := a.HostPortStr()
	if a.UserInfo().Username() != "" {
		authority = fmt.Sprintf("%s@%s", a.UserInfo().Username(), authority)
	}
	return authority
}

// UserInfo returns the userinfo section of authority.
func (a Authority) UserInfo() UserInfo {
	return UserInfo{
		url: a.url,
	}
}

// Host returns the host portion of an authority
func (a Authority) Host() string {
	return a.host
}

// Port returns the port portion of an authority, 0 when none was given
func (a Authority) Port() uint16 {
	return a.port
}

// HostPortStr returns a concatenated string of host and port from authority, separated by a colon, ie "host.com:1234"
func (a Authority) HostPortStr() string {
	if a.Port() != 0 {
		return fmt.Sprintf("%s:%d", a.Host(), a.Port())
	}
	return a.Host()
}

// HostPortStrDefault is like HostPortStr but falls back to the given port when
// the authority carries none.
func (a Authority) HostPortStrDefault(port uint16) string {
	if a.Port() != 0 {
		return fmt.Sprintf("%s:%d", a.Host(), a.Port())
	}
	return fmt.Sprintf("%s:%d", a.Host(), port)
}

var schemeRE = regexp.MustCompile("^[A-Za-z][A-Za-z0-9+.-]*://")

// NewAuthority initializes Authority struct by parsing authority string.
func NewAuthority(authority string) (Authority, error) {
	if authority == "" {
		return Authority{}, errors.New("authority string may not be empty")
	}

	if !schemeRE.MatchString(authority) {
		authority = "scheme://" + authority
	}

	u, err := url.Parse(authority)
	if err != nil {
		return Authority{}, err
	}

	host, portStr := splitHostPort(u.Host)
	var port uint16
	if portStr != "" {
		val, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil {
			return Authority{}, err
		}
		port = uint16(val)
	}

	return Authority{
		host: host,
		port: port,
		url:  u,
	}, nil
}

// ParseURI splits a URI into its scheme, authority and path components.
// The path is returned with its leading slash intact.
func ParseURI(uri string) (scheme string, auth Authority, p string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", Authority{}, "", err
	}
	if u.Scheme == "" {
		return "", Authority{}, "", fmt.Errorf("uri %q has no scheme", uri)
	}

	auth, err = NewAuthority(uri)
	if err != nil {
		return "", Authority{}, "", err
	}

	return u.Scheme, auth, u.Path, nil
}

// splitHostPort separates host and port. Unlike net.SplitHostPort, but per
// RFC 3986, it requires ports to be numeric.
func splitHostPort(hostPort string) (host, port string) {
	host = hostPort

	colon := strings.LastIndexByte(host, ':')
	if colon != -1 && validOptionalPort(host[colon:]) {
		host, port = host[:colon], host[colon+1:]
	}

	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		host = host[1 : len(host)-1]
	}

	return host, port
}

// validOptionalPort reports whether port is either an empty string or matches /^:\d*$/
func validOptionalPort(port string) bool {
	if port == "" {
		return true
	}
	if port[0] != ':' {
		return false
	}
	for _, b := range port[1:] {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

// EnsureLeadingSlash adds the leading slash if needed.
func EnsureLeadingSlash(dir string) string {
	if strings.HasPrefix(dir, "/") {
		return dir
	}
	return "/" + dir
}

// RemoveLeadingSlash removes leading slash, if any
func RemoveLeadingSlash(path string) string {
	return strings.TrimLeft(path, "/")
}
