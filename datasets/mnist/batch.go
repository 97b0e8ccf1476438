// Copyright 2025 Primer ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mnist

import (
	"fmt"
	"math/rand"

	"github.com/primer-ml/primer/tensor"
)

// Batch is a mini-batch of images and labels ready for training.
type Batch[B tensor.Backend] struct {
	Images *tensor.Tensor[float32, B] // [batch_size, rows*cols]
	Labels *tensor.Tensor[int32, B]   // [batch_size]
	Size   int
}

// CreateBatches splits a dataset into uniform mini-batches.
//
// When shuffle is true the sample order is randomized with a
// Fisher-Yates pass first. A final batch shorter than batchSize is
// dropped so every batch tensor has the same shape; callers that need
// every sample should pick a batchSize dividing NumSamples.
func CreateBatches[B tensor.Backend](
	data *Dataset,
	batchSize int,
	shuffle bool,
	backend B,
) ([]*Batch[B], error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	numSamples := data.NumSamples()
	if numSamples != len(data.Labels) {
		return nil, fmt.Errorf("images and labels length mismatch: %d vs %d", numSamples, len(data.Labels))
	}

	indices := make([]int, numSamples)
	for i := range indices {
		indices[i] = i
	}

	if shuffle {
		for i := numSamples - 1; i > 0; i-- {
			j := rand.Intn(i + 1) //nolint:gosec // shuffling, not crypto
			indices[i], indices[j] = indices[j], indices[i]
		}
	}

	numPixels := data.NumPixels()
	batches := make([]*Batch[B], 0, numSamples/batchSize)

	for start := 0; start+batchSize <= numSamples; start += batchSize {
		imagesRaw, err := tensor.NewRaw(
			tensor.Shape{batchSize, numPixels},
			tensor.Float32,
			backend.Device(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create images tensor: %w", err)
		}

		labelsRaw, err := tensor.NewRaw(
			tensor.Shape{batchSize},
			tensor.Int32,
			backend.Device(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create labels tensor: %w", err)
		}

		imagesData := imagesRaw.AsFloat32()
		labelsData := labelsRaw.AsInt32()

		for j := 0; j < batchSize; j++ {
			idx := indices[start+j]
			copy(imagesData[j*numPixels:(j+1)*numPixels], data.Images[idx])
			labelsData[j] = data.Labels[idx]
		}

		batches = append(batches, &Batch[B]{
			Images: tensor.New[float32, B](imagesRaw, backend),
			Labels: tensor.New[int32, B](labelsRaw, backend),
			Size:   batchSize,
		})
	}

	return batches, nil
}
