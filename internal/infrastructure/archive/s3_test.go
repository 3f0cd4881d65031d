package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"resume-analyzer/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = b
	return &s3.PutObjectOutput{}, f.err
}

func TestS3_Archive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 body"), 0o600))

	put := &fakePutter{}
	a := NewS3WithClient(put, "resumes", nil)
	require.NoError(t, a.Archive(context.Background(), "resumes/x.pdf", path))

	assert.Equal(t, "resumes", aws.ToString(put.input.Bucket))
	assert.Equal(t, "resumes/x.pdf", aws.ToString(put.input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(put.input.ContentType))
	assert.Equal(t, int64(13), aws.ToInt64(put.input.ContentLength))
	assert.Equal(t, []byte("%PDF-1.4 body"), put.body)
}

func TestS3_ArchiveErrors(t *testing.T) {
	a := NewS3WithClient(&fakePutter{}, "b", nil)
	assert.Error(t, a.Archive(context.Background(), "k", filepath.Join(t.TempDir(), "missing.pdf")))

	path := filepath.Join(t.TempDir(), "x.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	a = NewS3WithClient(&fakePutter{err: errors.New("denied")}, "b", nil)
	assert.ErrorContains(t, a.Archive(context.Background(), "k", path), "denied")

	var nilArchive *S3
	assert.NoError(t, nilArchive.Archive(context.Background(), "k", path))
}

func TestNewS3_RequiresBucket(t *testing.T) {
	_, err := NewS3(context.Background(), config.ArchiveConfig{}, nil)
	assert.Error(t, err)
}
