package ftp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shuttlefs/shuttle/utils"
)

/**********************************
 ************TESTS*****************
 **********************************/

type ftpTestSuite struct {
	suite.Suite
}

func (ts *ftpTestSuite) TestCredentialResolution() {
	anon, err := utils.NewAuthority("host.com")
	ts.Require().NoError(err)
	withUser, err := utils.NewAuthority("bob:secret@host.com")
	ts.Require().NoError(err)

	tests := []struct {
		options            Options
		authority          utils.Authority
		username, password string
		message            string
	}{
		{Options{}, anon, "anonymous", "anonymous", "anonymous fallback"},
		{Options{}, withUser, "bob", "secret", "uri userinfo"},
		{Options{Username: "carol", Password: "pw"}, withUser, "carol", "pw", "options win over uri"},
		{Options{Username: "carol"}, anon, "carol", "anonymous", "partial options"},
	}

	for _, test := range tests {
		b := NewBackend().WithOptions(test.options)
		username, password := b.credentials(test.authority)
		ts.Equal(test.username, username, test.message)
		ts.Equal(test.password, password, test.message)
	}
}

func (ts *ftpTestSuite) TestOpenSourceBadURI() {
	b := NewBackend()
	for _, uri := range []string{"ftp://host.com", "ftp://host.com/", "s3://bucket/key"} {
		_, err := b.OpenSource(context.Background(), uri)
		ts.Require().Error(err, uri)
	}
}

func TestFTP(t *testing.T) {
	suite.Run(t, new(ftpTestSuite))
}
