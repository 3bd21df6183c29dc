// Copyright 2025 The casaflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package upload

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/casaflow-io/casaflow/pkg/media"
)

// taskState tracks where an asset is in its batch lifecycle.
type taskState int

const (
	taskPending taskState = iota
	taskUploading
	taskSucceeded
	taskFailed
)

// task is the coordinator's per-asset bookkeeping. Exactly one goroutine
// owns a task at a time; it is discarded once the batch result is built.
type task struct {
	index int
	asset media.Asset
	state taskState
	url   string
	err   error
}

// BatchResult summarizes one logical submission of N photos.
// Succeeded+Failed == Total always holds, and len(URLs) == Succeeded.
// Partial success is an ordinary outcome: the caller decides whether a
// submission with failures is acceptable.
type BatchResult struct {
	// URLs of the successfully uploaded assets, in the order their uploads
	// completed. With sequential processing that equals input order
	// restricted to successes.
	URLs []string
	// Errors holds the per-asset failure at each input position, nil where
	// the upload succeeded.
	Errors    []error
	Succeeded int
	Failed    int
	Total     int
}

// Coordinator runs one SingleAsset upload per input asset and isolates
// failures: a failed asset never prevents the remaining assets from being
// attempted.
type Coordinator struct {
	Uploader *Uploader
	// Concurrency bounds how many uploads run at once. Zero or one means
	// sequential, which preserves input order in URLs and progress.
	Concurrency int
}

// UploadAll pushes every asset through the uploader and aggregates the
// outcome. With no assets it returns an empty result without touching the
// network. The aggregate observer, when given, fires whenever any asset
// reports progress: finished assets count one unit each and the in-flight
// asset contributes its fraction, normalized over the batch size.
func (c *Coordinator) UploadAll(ctx context.Context, assets []media.Asset, endpoint string, opts Options, aggregate ProgressObserver) BatchResult {
	total := len(assets)
	result := BatchResult{
		URLs:   []string{},
		Errors: make([]error, total),
		Total:  total,
	}
	if total == 0 {
		return result
	}

	tasks := make([]*task, total)
	for i, asset := range assets {
		tasks[i] = &task{index: i, asset: asset}
	}

	if c.Concurrency > 1 {
		c.runConcurrent(ctx, tasks, endpoint, opts, aggregate, &result)
	} else {
		c.runSequential(ctx, tasks, endpoint, opts, aggregate, &result)
	}

	for _, t := range tasks {
		if t.state == taskFailed {
			result.Errors[t.index] = t.err
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	return result
}

func (c *Coordinator) runSequential(ctx context.Context, tasks []*task, endpoint string, opts Options, aggregate ProgressObserver, result *BatchResult) {
	completed := 0
	for _, t := range tasks {
		t.state = taskUploading
		observer := batchObserver(aggregate, &completed, len(tasks), nil)

		url, err := c.Uploader.Upload(ctx, t.asset, endpoint, opts, observer)
		if err != nil {
			t.state = taskFailed
			t.err = err
		} else {
			t.state = taskSucceeded
			t.url = url
			result.URLs = append(result.URLs, url)
		}
		completed++
	}
}

func (c *Coordinator) runConcurrent(ctx context.Context, tasks []*task, endpoint string, opts Options, aggregate ProgressObserver, result *BatchResult) {
	var mu sync.Mutex
	completed := 0

	g := new(errgroup.Group)
	g.SetLimit(c.Concurrency)
	for _, t := range tasks {
		g.Go(func() error {
			mu.Lock()
			t.state = taskUploading
			mu.Unlock()

			observer := batchObserver(aggregate, &completed, len(tasks), &mu)
			url, err := c.Uploader.Upload(ctx, t.asset, endpoint, opts, observer)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				t.state = taskFailed
				t.err = err
			} else {
				t.state = taskSucceeded
				t.url = url
				// Completion order, not input order.
				result.URLs = append(result.URLs, url)
			}
			completed++
			return nil
		})
	}
	// Workers record failures on their tasks instead of returning them, so
	// Wait never yields an error and never cancels sibling uploads.
	_ = g.Wait()
}

// batchObserver scales one asset's local progress into the whole batch.
func batchObserver(aggregate ProgressObserver, completed *int, total int, mu *sync.Mutex) ProgressObserver {
	if aggregate == nil {
		return nil
	}
	return ProgressFunc(func(local int) {
		if mu != nil {
			mu.Lock()
		}
		done := *completed
		if mu != nil {
			mu.Unlock()
		}
		pct := math.Round((float64(done) + float64(local)/100) / float64(total) * 100)
		aggregate.Progress(int(pct))
	})
}
