package utils

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

/**********************************
 ************TESTS*****************
 **********************************/

type authoritySuite struct {
	suite.Suite
}

type authorityTest struct {
	authorityString                    string
	host, user, pass, str, hostPortStr string
	port                               uint16
	hasError                           bool
	message                            string
}

func (a *authoritySuite) TestAuthority() {
	tests := []authorityTest{
		{
			authorityString: "",
			hasError:        true,
			message:         "empty input",
		},
		{
			authorityString: "some.host.com",
			host:            "some.host.com",
			str:             "some.host.com",
			hostPortStr:     "some.host.com",
			message:         "host-only",
		},
		{
			authorityString: "some.host.com:445",
			host:            "some.host.com",
			port:            445,
			str:             "some.host.com:445",
			hostPortStr:     "some.host.com:445",
			message:         "host and port",
		},
		{
			authorityString: "bob@some.host.com",
			host:            "some.host.com",
			user:            "bob",
			str:             "bob@some.host.com",
			hostPortStr:     "some.host.com",
			message:         "user and host",
		},
		{
			authorityString: "bob:secret@some.host.com:22",
			host:            "some.host.com",
			port:            22,
			user:            "bob",
			pass:            "secret",
			str:             "bob@some.host.com:22",
			hostPortStr:     "some.host.com:22",
			message:         "userinfo with password, password excluded from String",
		},
		{
			authorityString: "sftp://bob@some.host.com/path/",
			host:            "some.host.com",
			user:            "bob",
			str:             "bob@some.host.com",
			hostPortStr:     "some.host.com",
			message:         "full uri input",
		},
	}

	for _, test := range tests {
		actual, err := NewAuthority(test.authorityString)
		if test.hasError {
			a.Require().Error(err, test.message)
			continue
		}
		a.Require().NoError(err, test.message)
		a.Equal(test.host, actual.Host(), test.message)
		a.Equal(test.port, actual.Port(), test.message)
		a.Equal(test.user, actual.UserInfo().Username(), test.message)
		a.Equal(test.pass, actual.UserInfo().Password(), test.message)
		a.Equal(test.str, actual.String(), test.message)
		a.Equal(test.hostPortStr, actual.HostPortStr(), test.message)
	}
}

func (a *authoritySuite) TestHostPortStrDefault() {
	auth, err := NewAuthority("host.com")
	a.Require().NoError(err)
	a.Equal("host.com:445", auth.HostPortStrDefault(445))

	auth, err = NewAuthority("host.com:139")
	a.Require().NoError(err)
	a.Equal("host.com:139", auth.HostPortStrDefault(445), "explicit port wins")
}

func (a *authoritySuite) TestParseURI() {
	scheme, auth, p, err := ParseURI("s3://bucket/path/to/object.dat")
	a.Require().NoError(err)
	a.Equal("s3", scheme)
	a.Equal("bucket", auth.Host())
	a.Equal("/path/to/object.dat", p)

	scheme, auth, p, err = ParseURI("smb://user:pw@server:445/share/dir/file.dat")
	a.Require().NoError(err)
	a.Equal("smb", scheme)
	a.Equal("server", auth.Host())
	a.Equal(uint16(445), auth.Port())
	a.Equal("user", auth.UserInfo().Username())
	a.Equal("/share/dir/file.dat", p)

	_, _, _, err = ParseURI("/no/scheme/here")
	a.Require().Error(err, "scheme is required")
}

func TestAuthority(t *testing.T) {
	suite.Run(t, new(authoritySuite))
}
