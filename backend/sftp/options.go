package sftp

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	_sftp "github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/shuttlefs/shuttle/utils"
)

const systemWideKnownHosts = "/etc/ssh/ssh_known_hosts"

// DefaultPort is the ssh port used when the URI carries none.
const DefaultPort = 22

// MaxPacketSize is the write ceiling advertised by the sftp sink: the sftp
// write packet payload limit.
const MaxPacketSize = 32768

// Options holds sftp-specific options.  Currently only client options are used.
type Options struct {
	Username              string              `json:"username,omitempty"`
	Password              string              `json:"password,omitempty"`
	KeyFilePath           string              `json:"keyFilePath,omitempty"`
	KeyPassphrase         string              `json:"keyPassphrase,omitempty"`
	KnownHostsFile        string              `json:"knownHostsFile,omitempty"`
	KnownHostsCallback    ssh.HostKeyCallback `json:"-"`
	InsecureIgnoreHostKey bool                `json:"insecureIgnoreHostKey,omitempty"`
}

func getClient(authority utils.Authority, opts Options) (*_sftp.Client, *ssh.Client, error) {
	// setup Authentication
	authMethods, err := getAuthMethods(opts)
	if err != nil {
		return nil, nil, err
	}

	// get callback for handling known_hosts man-in-the-middle checks
	hostKeyCallback, err := getHostKeyCallback(opts)
	if err != nil {
		return nil, nil, err
	}

	user := opts.Username
	if user == "" {
		user = authority.UserInfo().Username()
	}

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
	}

	sshClient, err := ssh.Dial("tcp", authority.HostPortStrDefault(DefaultPort), config)
	if err != nil {
		return nil, nil, err
	}

	client, err := _sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, nil, err
	}

	return client, sshClient, nil
}

func getAuthMethods(opts Options) ([]ssh.AuthMethod, error) {
	var auth []ssh.AuthMethod

	if opts.KeyFilePath != "" {
		secretKey, err := getKeyFile(opts.KeyFilePath, opts.KeyPassphrase)
		if err != nil {
			return nil, err
		}
		auth = append(auth, ssh.PublicKeys(secretKey))
	}

	if opts.Password != "" {
		auth = append(auth, ssh.Password(opts.Password))
	}

	if len(auth) == 0 {
		return nil, errors.New("no authentication method configured: set a password or a keyfile")
	}

	return auth, nil
}

func getKeyFile(file, passphrase string) (ssh.Signer, error) {
	buf, err := os.ReadFile(file) //nolint:gosec // keyfile path is operator-supplied
	if err != nil {
		return nil, err
	}

	if passphrase != "" {
		return ssh.ParsePrivateKeyWithPassphrase(buf, []byte(passphrase))
	}
	return ssh.ParsePrivateKey(buf)
}

// getHostKeyCallback gets the host key callback for all known_hosts files
func getHostKeyCallback(opts Options) (ssh.HostKeyCallback, error) {
	var knownHostsFiles []string
	switch {

	// use explicit callback in Options
	case opts.KnownHostsCallback != nil:
		return opts.KnownHostsCallback, nil

	case opts.InsecureIgnoreHostKey:
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec // explicit opt-in

	// use explicit known_hosts file path, ie, /home/bob/.ssh/known_hosts
	case opts.KnownHostsFile != "":
		// check first to prevent auto-vivification of file
		found, err := foundFile(opts.KnownHostsFile)
		if err != nil {
			return nil, err
		}
		if found {
			knownHostsFiles = append(knownHostsFiles, opts.KnownHostsFile)
			break
		}
		fallthrough

	// use user/system-wide known_hosts paths (as defined by OpenSSH https://man.openbsd.org/ssh)
	default:
		var err error
		knownHostsFiles, err = findHomeSystemKnownHosts(knownHostsFiles)
		if err != nil {
			return nil, err
		}
	}

	if len(knownHostsFiles) == 0 {
		return nil, errors.New("no known_hosts file found: configure KnownHostsFile or KnownHostsCallback")
	}

	return knownhosts.New(knownHostsFiles...)
}

func findHomeSystemKnownHosts(knownHostsFiles []string) ([]string, error) {
	// add ~/.ssh/known_hosts
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}
	homeKnownHostsPath := utils.EnsureLeadingSlash(path.Join(home, ".ssh/known_hosts"))

	found, err := foundFile(homeKnownHostsPath)
	if err != nil {
		return nil, err
	}
	if found {
		knownHostsFiles = append(knownHostsFiles, homeKnownHostsPath)
	}

	// add /etc/ssh/ssh_known_hosts
	found, err = foundFile(systemWideKnownHosts)
	if err != nil {
		return nil, err
	}
	if found {
		knownHostsFiles = append(knownHostsFiles, systemWideKnownHosts)
	}

	return knownHostsFiles, nil
}

func foundFile(file string) (bool, error) {
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", file, err)
	}
	return true, nil
}
