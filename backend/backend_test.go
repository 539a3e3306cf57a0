package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shuttlefs/shuttle"
)

/**********************************
 ************TESTS*****************
 **********************************/

type backendTestSuite struct {
	suite.Suite
}

type noopSourceOpener struct{}

func (noopSourceOpener) OpenSource(context.Context, string) (shuttle.Source, error) {
	return nil, nil
}

type noopSinkOpener struct{}

func (noopSinkOpener) OpenSink(context.Context, string) (shuttle.Sink, error) {
	return nil, nil
}

func (ts *backendTestSuite) SetupTest() {
	UnregisterAll()
}

func (ts *backendTestSuite) TestRegisterAndLookup() {
	ts.Nil(Source("s3"), "unregistered scheme yields nil")
	ts.Nil(Sink("smb"), "unregistered scheme yields nil")

	src := &noopSourceOpener{}
	snk := &noopSinkOpener{}
	RegisterSource("s3", src)
	RegisterSink("smb", snk)

	ts.Same(src, Source("s3"))
	ts.Same(snk, Sink("smb"))
	ts.Nil(Source("smb"), "roles are independent")

	// re-registration replaces
	src2 := &noopSourceOpener{}
	RegisterSource("s3", src2)
	ts.Same(src2, Source("s3"))
}

func (ts *backendTestSuite) TestSchemes() {
	RegisterSource("sftp", noopSourceOpener{})
	RegisterSource("ftp", noopSourceOpener{})
	RegisterSource("s3", noopSourceOpener{})
	RegisterSink("smb", noopSinkOpener{})

	ts.Equal([]string{"ftp", "s3", "sftp"}, SourceSchemes(), "sorted")
	ts.Equal([]string{"smb"}, SinkSchemes())
}

func TestBackend(t *testing.T) {
	suite.Run(t, new(backendTestSuite))
}
