package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the S3 client built by NewS3Client.
type S3Options struct {
	// Region is the bucket's region. Empty uses the environment's default.
	Region string

	// Endpoint overrides the service endpoint (e.g., a MinIO URL).
	Endpoint string

	// PathStyle addresses the bucket in the path instead of the host name.
	PathStyle bool
}

// NewS3Client builds an S3 client from the default credential chain.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	}), nil
}

// S3Lister lists "folders" of a bucket. Keys are split on "/": common
// prefixes become folders and objects become files.
//
// Example usage:
//
//	client, _ := explorer.NewS3Client(ctx, explorer.S3Options{Region: "eu-west-3"})
//	lister := explorer.NewS3Lister(client, "systra-files", "users/42/")
type S3Lister struct {
	client s3.ListObjectsV2APIClient
	bucket string
	prefix string
}

// NewS3Lister returns a lister for keys under prefix in bucket.
func NewS3Lister(client s3.ListObjectsV2APIClient, bucket, prefix string) *S3Lister {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Lister{client: client, bucket: bucket, prefix: prefix}
}

// List implements Lister. A non-root folder with no keys under it does
// not exist.
func (l *S3Lister) List(ctx context.Context, dir string) ([]Item, error) {
	prefix := l.prefix
	if dir != "" {
		prefix += dir + "/"
	}

	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(l.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var items []Item
	found := false
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			found = true
			if name == "" {
				continue
			}
			items = append(items, Item{Name: name, IsDir: true})
		}

		for _, obj := range page.Contents {
			found = true
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			// The folder's own marker object.
			if name == "" {
				continue
			}
			item := Item{Name: name, Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				item.ModTime = *obj.LastModified
			}
			items = append(items, item)
		}
	}

	if !found && dir != "" {
		return nil, ErrNotFound
	}
	return items, nil
}
