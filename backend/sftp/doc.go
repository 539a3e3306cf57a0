/*
Package sftp provides the SFTP source and sink backends.

One SSH connection and SFTP client is established lazily per backend instance
and reused for subsequent opens against the same authority.

# Usage

	b := sftp.NewBackend().WithOptions(sftp.Options{Password: "..."})
	src, err := b.OpenSource(ctx, "sftp://user@host:22/path/to/file.dat")
	snk, err := b.OpenSink(ctx, "sftp://user@host/path/to/dest.dat")

# Authentication

Authentication methods are tried in order: keyfile (with optional
passphrase), then password. Host key verification resolves, in order: an
explicit callback in Options, an explicit known_hosts file in Options, the
user's ~/.ssh/known_hosts, then the system-wide /etc/ssh/ssh_known_hosts.
Set InsecureIgnoreHostKey to skip verification entirely (not for production).
*/
package sftp
