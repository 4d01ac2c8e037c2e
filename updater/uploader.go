package updater

import (
	"context"
	"fmt"
	"time"

	"github.com/ixonos/utp-com/protocol"
)

// UploadStats summarizes the Put exchanges of an upload.
type UploadStats struct {
	// Chunks is the number of Put exchanges that completed
	Chunks int

	// Bytes is the number of payload bytes those exchanges carried
	Bytes int
}

// ChunkCount returns the number of chunks of at most chunkSize bytes needed
// to carry length bytes.
func ChunkCount(length, chunkSize int) int {
	if length <= 0 || chunkSize <= 0 {
		return 0
	}
	return (length + chunkSize - 1) / chunkSize
}

// Uploader sends a payload to the target as a sequence of Put exchanges.
type Uploader struct {
	logHelper
	client  Exchanger
	config  Config
	started time.Time
}

// NewUploader creates an Uploader that sends through client.
func NewUploader(client Exchanger, opts ...Option) *Uploader {
	return newUploader(client, buildConfig(opts))
}

func newUploader(client Exchanger, cfg Config) *Uploader {
	return &Uploader{
		logHelper: logHelper{logger: cfg.Logger},
		client:    client,
		config:    cfg,
	}
}

// Upload splits data into chunks of at most the configured chunk size and
// sends one Put per chunk, in order.
//
// The first failed chunk stops the upload. Chunks already sent stay on the
// target; the returned stats say how far the upload got.
func (u *Uploader) Upload(ctx context.Context, data []byte) (UploadStats, error) {
	var stats UploadStats

	if u.started.IsZero() {
		u.started = time.Now()
	}

	chunkSize := u.config.ChunkSize
	total := ChunkCount(len(data), chunkSize)

	for offset := 0; offset < len(data); {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("upload canceled after %d of %d chunks: %w", stats.Chunks, total, err)
		}

		n := min(chunkSize, len(data)-offset)

		reply, err := u.client.Exchange(ctx, protocol.BuildPutCmd(), data[offset:offset+n])
		if err != nil {
			return stats, fmt.Errorf("put chunk %d/%d at offset %d: %w", stats.Chunks+1, total, offset, err)
		}
		if reply != protocol.ReplyPass {
			u.logDebug("put reply", "chunk", stats.Chunks+1, "reply", reply.String())
		}

		offset += n
		stats.Chunks++
		stats.Bytes += n

		u.config.reportProgress(Progress{
			Phase:       PhaseUploading,
			ChunksSent:  stats.Chunks,
			TotalChunks: total,
			BytesSent:   stats.Bytes,
			TotalBytes:  len(data),
			Percentage:  float64(stats.Bytes) / float64(len(data)) * 100,
			ElapsedTime: time.Since(u.started),
		})
	}

	u.logDebug("upload complete", "chunks", stats.Chunks, "bytes", stats.Bytes)
	return stats, nil
}
