package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// credentials is the opaque credential bundle handed to sink construction.
// The transfer engine never sees it.
type credentials struct {
	domain   string
	username string
	password string
}

// authenticator interactively collects file-share credentials.
type authenticator struct {
	in  *bufio.Reader
	out io.Writer
}

func newAuthenticator() *authenticator {
	return &authenticator{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

// credentials fills the missing fields of partial by prompting. The password
// is read without echo.
func (a *authenticator) credentials(partial credentials) (credentials, error) {
	creds := partial

	if creds.username == "" {
		fmt.Fprintln(a.out, "SMB authentication required")
		fmt.Fprint(a.out, `Username (domain\username or username): `)
		line, err := a.in.ReadString('\n')
		if err != nil {
			return credentials{}, fmt.Errorf("read username: %w", err)
		}
		domain, username := splitDomainUser(strings.TrimSpace(line))
		creds.username = username
		if creds.domain == "" {
			creds.domain = domain
		}
	}

	if creds.password == "" {
		fmt.Fprint(a.out, "Password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return credentials{}, fmt.Errorf("read password: %w", err)
		}
		creds.password = string(pw)
	}

	return creds, nil
}

// splitDomainUser splits "DOMAIN\user" into its parts; a bare username yields
// an empty domain.
func splitDomainUser(s string) (domain, username string) {
	if d, u, found := strings.Cut(s, `\`); found {
		return d, u
	}
	return "", s
}
