/*
 * s3.go, part of gostoich.
 *
 *
 * Copyright 2026 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * gostoich is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//ObjectPutter is the part of *s3.Client used to upload results.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

//S3Config contains the parameters to build an S3 client. Empty fields
//fall back to the AWS defaults (environment, shared config files).
type S3Config struct {
	Region          string //default us-east-1
	Endpoint        string //for S3-compatible services, such as MinIO.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
}

//NewS3Client builds an S3 client from cfg.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return client, nil
}

//IsS3URI returns true if dest looks like s3://bucket/key
func IsS3URI(dest string) bool {
	return strings.HasPrefix(dest, "s3://")
}

//ParseS3URI splits an s3://bucket/key URI.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !IsS3URI(uri) {
		return "", "", fmt.Errorf("%q is not an s3:// URI", uri)
	}
	rest := strings.TrimPrefix(uri, "s3://")
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%q needs both a bucket and an object key", uri)
	}
	return bucket, key, nil
}

//S3Writer buffers everything written to it (compressing it if the key's extension says so)
//and uploads it as one object on Close.
type S3Writer struct {
	ctx    context.Context
	client ObjectPutter
	bucket string
	key    string
	buf    bytes.Buffer
	comp   io.WriteCloser
	closed bool
}

//NewS3Writer returns a writer for the object key in bucket.
func NewS3Writer(ctx context.Context, client ObjectPutter, bucket, key string) (*S3Writer, error) {
	if client == nil {
		return nil, errors.New("nil S3 client")
	}
	S := &S3Writer{ctx: ctx, client: client, bucket: bucket, key: key}
	var err error
	S.comp, err = NewWriter(&S.buf, Format(key))
	if err != nil {
		return nil, err
	}
	return S, nil
}

func (S *S3Writer) Write(p []byte) (int, error) {
	if S.closed {
		return 0, errors.New("write to closed S3Writer")
	}
	return S.comp.Write(p)
}

//Close flushes the compressor and uploads the object. It can only be called once.
func (S *S3Writer) Close() error {
	if S.closed {
		return nil
	}
	S.closed = true
	if err := S.comp.Close(); err != nil {
		return err
	}
	_, err := S.client.PutObject(S.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(S.bucket),
		Key:         aws.String(S.key),
		Body:        bytes.NewReader(S.buf.Bytes()),
		ContentType: aws.String(contentType(S.key)),
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", S.bucket, S.key, err)
	}
	return nil
}

func contentType(key string) string {
	switch Format(key) {
	case Zstd:
		return "application/zstd"
	case Gzip:
		return "application/gzip"
	case Flate:
		return "application/octet-stream"
	}
	return "application/x-ndjson"
}

//CreateSink returns a writer for dest, which is either a file name (see Create) or
//an s3://bucket/key URI. client is only used, and needed, for the latter.
func CreateSink(ctx context.Context, dest string, client ObjectPutter) (io.WriteCloser, error) {
	if !IsS3URI(dest) {
		return Create(dest)
	}
	bucket, key, err := ParseS3URI(dest)
	if err != nil {
		return nil, err
	}
	return NewS3Writer(ctx, client, bucket, key)
}
