package smb

import "time"

const (
	// DefaultPort is the SMB direct-TCP port.
	DefaultPort = 445

	// DefaultMaxWriteSize is the write ceiling advertised by the sink when no
	// override is configured: the max write size commonly negotiated by SMB2
	// servers.
	DefaultMaxWriteSize = 1 << 20

	// DefaultDialTimeout bounds the TCP dial to the server.
	DefaultDialTimeout = 30 * time.Second
)

// Options holds smb-specific options. Credentials come from Options when set,
// otherwise from the URI's userinfo.
type Options struct {
	Domain   string `json:"domain,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	// MaxWriteSize overrides the write ceiling advertised to the transfer
	// engine. Zero means DefaultMaxWriteSize.
	MaxWriteSize int64 `json:"maxWriteSize,omitempty"`

	DialTimeout time.Duration
}

// writeCeiling resolves the advertised max single-write size.
func (o Options) writeCeiling() int64 {
	if o.MaxWriteSize > 0 {
		return o.MaxWriteSize
	}
	return DefaultMaxWriteSize
}
