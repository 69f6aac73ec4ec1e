package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/sha256-simd"
	"go.uber.org/zap"

	"datasetregistry/internal/core"
	"datasetregistry/internal/model"
	"datasetregistry/internal/storage"
)

// ArtifactKeyPrefix is the object key prefix of uploaded dataset files.
// A dataset whose DataURI starts with it is served through presigned URLs.
const ArtifactKeyPrefix = "datasets/"

// maxExtLen keeps generated keys well inside core.MaxDataURILen.
const maxExtLen = 16

func (s *registryService) UploadArtifact(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (a *model.Artifact, err error) {
	defer func() { s.metrics.observeError(opUploadArtifact, err) }()

	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	if size < 0 {
		return nil, ErrSizeRequired
	}
	if size > core.MaxFileSize {
		return nil, core.ErrFileTooLarge
	}

	key := ArtifactKeyPrefix + uuid.New().String() + artifactExt(originalFilename)

	h := sha256.New()
	objInfo, err := s.store.Put(ctx, key, io.TeeReader(r, h), storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	if objInfo.Size != size {
		// Rollback: a short object must not be referenced by a dataset.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("stored %d of %d bytes; rollback delete failed: %v", objInfo.Size, size, delErr)
		}
		return nil, fmt.Errorf("stored %d of %d bytes", objInfo.Size, size)
	}

	var digest model.Hash
	copy(digest[:], h.Sum(nil))

	s.log.Info("artifact_uploaded",
		zap.String("key", key),
		zap.Int64("size", objInfo.Size),
		zap.String("content_hash", digest.String()),
	)
	return &model.Artifact{
		Key:         key,
		ContentHash: digest,
		Size:        objInfo.Size,
		ContentType: contentType,
	}, nil
}

func artifactExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) > maxExtLen {
		return ""
	}
	return ext
}
