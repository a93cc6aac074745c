package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/greenkeeper/internal/client/store"
	"github.com/dmitrijs2005/greenkeeper/internal/common"
	"github.com/dmitrijs2005/greenkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	data     []byte
	modified time.Time
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	putErr  error
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]fakeObject{}}
}

func objectKey(bucket, key *string) string {
	return aws.ToString(bucket) + "/" + aws.ToString(key)
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	obj, ok := f.objects[objectKey(in.Bucket, in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(obj.data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.objects[objectKey(in.Bucket, in.Key)] = fakeObject{data: data, modified: time.Now()}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectKey(in.Bucket, in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[objectKey(in.Bucket, in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{LastModified: aws.Time(obj.modified)}, nil
}

func TestS3Backend_FailedPutKeepsPreviousProfile(t *testing.T) {
	fake := newFakeS3()
	s := store.New(NewS3Backend(fake, "profiles", "device"), logging.Nop())
	ctx := context.Background()

	before, err := s.SetProvince(ctx, "FI")
	require.NoError(t, err)

	fake.putErr = errors.New("connection reset")
	_, err = s.SetProvince(ctx, "PI")
	require.ErrorIs(t, err, common.ErrWrite)

	fake.putErr = nil
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, got)
}

func TestS3Backend_GetErrorIsReadError(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("access denied")

	_, err := store.New(NewS3Backend(fake, "profiles", "device"), logging.Nop()).Load(context.Background())
	require.ErrorIs(t, err, common.ErrRead)
}

func TestS3Backend_UsesBucketAndKey(t *testing.T) {
	fake := newFakeS3()
	require.NoError(t, NewS3Backend(fake, "bucket-a", "k").WriteBytes(context.Background(), []byte("x")))

	data, err := NewS3Backend(fake, "bucket-b", "k").ReadBytes(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = store.New(NewS3Backend(fake, "bucket-a", "k"), logging.Nop()).Load(context.Background())
	require.ErrorIs(t, err, common.ErrDecode, "raw bytes are not a profile")
}

func TestNewS3Client_AppliesSettings(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-south-1", lo.Region)
		require.NotNil(t, lo.Credentials, "static credentials expected")
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	c, err := NewS3Client(context.Background(), S3Settings{
		Region:       "eu-south-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Client_LoadError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}

	_, err := NewS3Client(context.Background(), S3Settings{})
	require.ErrorContains(t, err, "no region")
}

func TestS3Backend_SavedAtMissing(t *testing.T) {
	_, err := NewS3Backend(newFakeS3(), "b", "k").SavedAt(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)
}
