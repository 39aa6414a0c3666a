package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

type MockS3Client struct {
	mock.Mock
}

var _ Client = (*MockS3Client)(nil)

func (m *MockS3Client) out(args mock.Arguments) (any, error) {
	return args.Get(0), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.HeadObjectOutput)
	return o, err
}

func (m *MockS3Client) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.GetObjectOutput)
	return o, err
}

func (m *MockS3Client) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.PutObjectOutput)
	return o, err
}

func (m *MockS3Client) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.DeleteObjectOutput)
	return o, err
}

func (m *MockS3Client) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.ListObjectsV2Output)
	return o, err
}

func (m *MockS3Client) UploadPart(ctx context.Context, in *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.UploadPartOutput)
	return o, err
}

func (m *MockS3Client) CreateMultipartUpload(ctx context.Context, in *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.CreateMultipartUploadOutput)
	return o, err
}

func (m *MockS3Client) CompleteMultipartUpload(ctx context.Context, in *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.CompleteMultipartUploadOutput)
	return o, err
}

func (m *MockS3Client) AbortMultipartUpload(ctx context.Context, in *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	v, err := m.out(m.Called(ctx, in))
	o, _ := v.(*s3.AbortMultipartUploadOutput)
	return o, err
}
