// Package chunkio reads a single file through a fixed pool of workers,
// each pulling byte ranges from a shared queue, and reassembles the exact
// original byte sequence regardless of completion order.
package chunkio

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBlockSize is the chunk size used when none is configured.
	DefaultBlockSize = 16 * 1024
	// DefaultWorkers is the pool size used when none is configured.
	DefaultWorkers = 8
)

// Chunk is a contiguous byte range assigned to one worker.
type Chunk struct {
	Offset int64
	Size   int64
}

// Partition splits [0, length) into ascending fixed-size chunks that cover
// the range exactly, with no gaps or overlaps. The final chunk may be short.
func Partition(length, blockSize int64) []Chunk {
	if length <= 0 {
		return nil
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	chunks := make([]Chunk, 0, (length+blockSize-1)/blockSize)
	for off := int64(0); off < length; off += blockSize {
		size := blockSize
		if rest := length - off; rest < size {
			size = rest
		}
		chunks = append(chunks, Chunk{Offset: off, Size: size})
	}
	return chunks
}

// Reader reads files concurrently in fixed-size chunks.
type Reader struct {
	// Workers is the pool size; DefaultWorkers when <= 0.
	Workers int
	// BlockSize is the chunk size in bytes; DefaultBlockSize when <= 0.
	BlockSize int64
}

func (r *Reader) workerCount() int {
	if r == nil || r.Workers <= 0 {
		return DefaultWorkers
	}
	return r.Workers
}

func (r *Reader) blockSize() int64 {
	if r == nil || r.BlockSize <= 0 {
		return DefaultBlockSize
	}
	return r.BlockSize
}

// ReadFile reads the whole file at path and returns its exact content.
// The chunk queue is fully populated before any worker starts, so workers
// only ever wait on the queue, never on each other. Each worker opens its
// own file handle and must read exactly the chunk's length; a short or
// failed read aborts the whole call once all workers have finished, with
// no partial result. Reassembly is indexed by chunk, so the output is
// deterministic regardless of scheduling.
func (r *Reader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	length := info.Size()
	if length == 0 {
		return []byte{}, nil
	}

	chunks := Partition(length, r.blockSize())
	results := make([][]byte, len(chunks))

	queue := make(chan int, len(chunks))
	for i := range chunks {
		queue <- i
	}
	close(queue)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.workerCount(); w++ {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case i, ok := <-queue:
					if !ok {
						return nil
					}
					c := chunks[i]
					buf := make([]byte, c.Size)
					if _, err := f.ReadAt(buf, c.Offset); err != nil {
						return fmt.Errorf("read %s at offset %d: %w", path, c.Offset, err)
					}
					results[i] = buf
				}
			}
		})
	}
	// First-seen worker error wins; errgroup discards the rest.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, length)
	for _, b := range results {
		out = append(out, b...)
	}
	return out, nil
}
