/*
Package s3 provides the AWS S3 source backend.

The source resolves an object's total length with HeadObject once, at open
time, then serves each engine read with a ranged GetObject so only one write
buffer's worth of data is in flight at a time.

# Usage

	b := s3.NewBackend().WithOptions(s3.Options{Region: "us-west-2"})
	src, err := b.OpenSource(ctx, "s3://bucket/path/to/object.dat")

# Authentication

Authentication resolution follows the aws-sdk-go-v2 default credential chain
unless static credentials or a role ARN are supplied in Options:

  - static credentials (AccessKeyID + SecretAccessKey, optional SessionToken)
  - assumed role via STS (RoleARN)
  - default chain (env vars, shared config, IMDS)
*/
package s3
