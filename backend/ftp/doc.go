/*
Package ftp provides the FTP source backend.

The source logs in (anonymously unless credentials are configured), resolves
the file's size with SIZE, then streams the body of a single RETR. Reads are
sequential; there is no ranged access.

	b := ftp.NewBackend().WithOptions(ftp.Options{Username: "bob", Password: "..."})
	src, err := b.OpenSource(ctx, "ftp://host/path/to/file.dat")
*/
package ftp
