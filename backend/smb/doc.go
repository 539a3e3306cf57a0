/*
Package smb provides the SMB2 sink backend.

Opening a sink dials the server over TCP (port 445 unless the URI says
otherwise), authenticates the session with NTLM, mounts the share named by the
first path segment, and creates (or overwrites) the destination file. Writes
are strictly sequential append-style writes within the open session.

# Usage

	b := smb.NewBackend().WithOptions(smb.Options{
		Domain:   "CORP",
		Username: "svc-transfer",
		Password: password,
	})
	snk, err := b.OpenSink(ctx, "smb://fileserver/share/path/to/file.dat")

# Write ceiling

The session's maximum single-write size is the file-share analogue of a
protocol-negotiated maximum. The underlying SMB2 client does not surface the
negotiated value, so the sink advertises a configurable ceiling that defaults
to 1 MiB, the common SMB2 negotiated max write size. The transfer engine
clamps its write size to this ceiling.
*/
package smb
