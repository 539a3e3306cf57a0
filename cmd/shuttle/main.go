// Command shuttle copies a single object from a remote storage source to a
// remote file-share destination with a tunable write size, printing per-write
// progress and a throughput summary.
//
//	shuttle --write-size 256KB s3://bucket/big.dat smb://fileserver/share/big.dat
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/shuttlefs/shuttle"
	"github.com/shuttlefs/shuttle/backend"
	"github.com/shuttlefs/shuttle/backend/ftp"
	_ "github.com/shuttlefs/shuttle/backend/os"
	"github.com/shuttlefs/shuttle/backend/s3"
	"github.com/shuttlefs/shuttle/backend/sftp"
	"github.com/shuttlefs/shuttle/backend/smb"
	"github.com/shuttlefs/shuttle/transfer"
	"github.com/shuttlefs/shuttle/utils"
)

func main() {
	app := cli.NewApp()
	app.Name = "shuttle"
	app.Usage = "Copies one object from a storage source to a file-share destination, with a tunable write size"
	app.ArgsUsage = "source-uri dest-uri"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "write-size",
			Value:  "64KB",
			Usage:  "write size per operation (e.g. 16KB, 64KB, 256KB, 1MB)",
			EnvVar: "SHUTTLE_WRITE_SIZE",
		},
		cli.BoolFlag{
			Name:  "no-progress",
			Usage: "suppress the per-operation progress line",
		},
		cli.StringFlag{
			Name:   "awsKeyId",
			Usage:  "aws access key id for user",
			EnvVar: "AWS_ACCESS_KEY_ID",
		},
		cli.StringFlag{
			Name:   "awsSecretKey",
			Usage:  "aws secret key for user",
			EnvVar: "AWS_SECRET_ACCESS_KEY",
		},
		cli.StringFlag{
			Name:   "awsSessionToken",
			Usage:  "aws session token",
			EnvVar: "AWS_SESSION_TOKEN",
		},
		cli.StringFlag{
			Name:   "awsRegion",
			Usage:  "aws region",
			EnvVar: "AWS_REGION",
		},
		cli.StringFlag{
			Name:   "awsEndpoint",
			Usage:  "aws endpoint override (minio, localstack)",
			EnvVar: "AWS_ENDPOINT_URL",
		},
		cli.StringFlag{
			Name:   "smb-domain",
			Usage:  "smb/AD domain",
			EnvVar: "SHUTTLE_SMB_DOMAIN",
		},
		cli.StringFlag{
			Name:   "smb-user",
			Usage:  "smb username; prompted for when neither flag nor uri provides one",
			EnvVar: "SHUTTLE_SMB_USER",
		},
		cli.StringFlag{
			Name:   "smb-password",
			Usage:  "smb password; prompted for when not set",
			EnvVar: "SHUTTLE_SMB_PASSWORD",
		},
		cli.StringFlag{
			Name:  "smb-max-write",
			Usage: "override the smb session write ceiling (e.g. 64KB, 1MB)",
		},
		cli.StringFlag{
			Name:   "sftp-password",
			Usage:  "sftp password",
			EnvVar: "SHUTTLE_SFTP_PASSWORD",
		},
		cli.StringFlag{
			Name:   "sftp-keyfile",
			Usage:  "sftp private key file",
			EnvVar: "SHUTTLE_SFTP_KEYFILE",
		},
		cli.StringFlag{
			Name:   "sftp-key-passphrase",
			Usage:  "passphrase for the sftp private key",
			EnvVar: "SHUTTLE_SFTP_KEYFILE_PASSPHRASE",
		},
		cli.StringFlag{
			Name:   "sftp-known-hosts",
			Usage:  "known_hosts file for sftp host verification",
			EnvVar: "SHUTTLE_SFTP_KNOWN_HOSTS_FILE",
		},
		cli.BoolFlag{
			Name:  "sftp-insecure-known-hosts",
			Usage: "skip sftp host key verification (not for production)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Transfer failed: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) (runErr error) {
	if err := checkArgs(c.Args().Get(0), c.Args().Get(1)); err != nil {
		return err
	}
	srcURI, dstURI := c.Args().Get(0), c.Args().Get(1)

	// resolve the write size before opening any connection
	writeSize, err := utils.ParseWriteSize(c.String("write-size"))
	if err != nil {
		return err
	}

	ctx := context.Background()

	srcScheme, _, _, err := utils.ParseURI(srcURI)
	if err != nil {
		return fmt.Errorf("source uri: %w", err)
	}
	dstScheme, dstAuth, _, err := utils.ParseURI(dstURI)
	if err != nil {
		return fmt.Errorf("destination uri: %w", err)
	}

	if err := initializeSource(srcScheme, c); err != nil {
		return err
	}
	if err := initializeSink(dstScheme, dstAuth, c); err != nil {
		return err
	}

	opener := backend.Source(srcScheme)
	if opener == nil {
		return fmt.Errorf("no source backend for scheme %q (available: %s)",
			srcScheme, strings.Join(backend.SourceSchemes(), ", "))
	}
	sinkOpener := backend.Sink(dstScheme)
	if sinkOpener == nil {
		return fmt.Errorf("no sink backend for scheme %q (available: %s)",
			dstScheme, strings.Join(backend.SinkSchemes(), ", "))
	}

	source, err := opener.OpenSource(ctx, srcURI)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	sink, err := sinkOpener.OpenSink(ctx, dstURI)
	if err != nil {
		return err
	}
	// close is guaranteed on every exit path; a close failure on an otherwise
	// successful transfer is still a failure
	defer func() {
		if cerr := sink.Close(); cerr != nil && runErr == nil {
			runErr = cerr
		}
	}()

	fmt.Printf("Copying %s to %s\n", source, sink)

	var progress shuttle.ProgressFunc
	printer := newProgressPrinter(os.Stdout)
	if !c.Bool("no-progress") {
		progress = printer.update
	}

	result, err := transfer.NewEngine().Run(source, sink, writeSize, progress)
	printer.finish()
	if err != nil {
		return err
	}

	printSummary(os.Stdout, result)
	return nil
}

func checkArgs(a1, a2 string) error {
	if a1 == "" || a2 == "" {
		return errors.New("shuttle requires 2 non-empty arguments: source-uri dest-uri")
	}
	return nil
}

// initializeSource re-registers the source backend for the scheme with
// flag-derived options.
func initializeSource(scheme string, c *cli.Context) error {
	switch scheme {
	case s3.Scheme:
		backend.RegisterSource(s3.Scheme, s3.NewBackend().WithOptions(s3.Options{
			AccessKeyID:     c.String("awsKeyId"),
			SecretAccessKey: c.String("awsSecretKey"),
			SessionToken:    c.String("awsSessionToken"),
			Region:          c.String("awsRegion"),
			Endpoint:        c.String("awsEndpoint"),
		}))
	case sftp.Scheme:
		backend.RegisterSource(sftp.Scheme, sftp.NewBackend().WithOptions(sftpOptions(c)))
	case ftp.Scheme:
		backend.RegisterSource(ftp.Scheme, ftp.NewBackend())
	}
	return nil
}

// initializeSink re-registers the sink backend for the scheme with
// flag-derived options, prompting for smb credentials when they are missing.
func initializeSink(scheme string, auth utils.Authority, c *cli.Context) error {
	switch scheme {
	case smb.Scheme:
		creds := credentials{
			domain:   c.String("smb-domain"),
			username: c.String("smb-user"),
			password: c.String("smb-password"),
		}
		if creds.username == "" {
			creds.username = auth.UserInfo().Username()
		}
		if creds.password == "" {
			creds.password = auth.UserInfo().Password()
		}
		if creds.username == "" || creds.password == "" {
			prompted, err := newAuthenticator().credentials(creds)
			if err != nil {
				return err
			}
			creds = prompted
		}

		var maxWrite int64
		if spec := c.String("smb-max-write"); spec != "" {
			var err error
			maxWrite, err = utils.ParseWriteSize(spec)
			if err != nil {
				return err
			}
		}

		backend.RegisterSink(smb.Scheme, smb.NewBackend().WithOptions(smb.Options{
			Domain:       creds.domain,
			Username:     creds.username,
			Password:     creds.password,
			MaxWriteSize: maxWrite,
		}))
	case sftp.Scheme:
		backend.RegisterSink(sftp.Scheme, sftp.NewBackend().WithOptions(sftpOptions(c)))
	}
	return nil
}

func sftpOptions(c *cli.Context) sftp.Options {
	return sftp.Options{
		Password:              c.String("sftp-password"),
		KeyFilePath:           c.String("sftp-keyfile"),
		KeyPassphrase:         c.String("sftp-key-passphrase"),
		KnownHostsFile:        c.String("sftp-known-hosts"),
		InsecureIgnoreHostKey: c.Bool("sftp-insecure-known-hosts"),
	}
}
