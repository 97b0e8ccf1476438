// Copyright 2025 Primer ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mnist

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/primer-ml/primer/tensor"
)

// Dataset holds MNIST images and labels.
type Dataset struct {
	Images [][]float32 // [num_samples, rows*cols], values in [0, 1]
	Labels []int32     // [num_samples], values in [0, 9]
	Rows   int
	Cols   int
}

// NumSamples returns the total number of samples in the dataset.
func (d *Dataset) NumSamples() int {
	return len(d.Images)
}

// NumPixels returns the flattened image size.
func (d *Dataset) NumPixels() int {
	return d.Rows * d.Cols
}

// Split splits the dataset into train and validation sets.
//
// validationRatio is the fraction held out at the end, e.g. 0.2 for 20%.
func (d *Dataset) Split(validationRatio float32) (*Dataset, *Dataset) {
	numSamples := d.NumSamples()
	splitIdx := int(float32(numSamples) * (1.0 - validationRatio))

	return &Dataset{
			Images: d.Images[:splitIdx],
			Labels: d.Labels[:splitIdx],
			Rows:   d.Rows,
			Cols:   d.Cols,
		}, &Dataset{
			Images: d.Images[splitIdx:],
			Labels: d.Labels[splitIdx:],
			Rows:   d.Rows,
			Cols:   d.Cols,
		}
}

// Load loads MNIST from the official IDX binary files.
//
// Parameters:
//   - dataDir: directory containing the MNIST files
//   - train: if true, load the training set (60,000 samples), else the
//     test set (10,000 samples)
//   - maxSamples: maximum number of samples to load (0 = load all)
//
// Expected files in dataDir (plain or gzipped):
//   - train-images-idx3-ubyte (or t10k-images-idx3-ubyte for test)
//   - train-labels-idx1-ubyte (or t10k-labels-idx1-ubyte for test)
//
// Download MNIST from: http://yann.lecun.com/exdb/mnist/
func Load(dataDir string, train bool, maxSamples int) (*Dataset, error) {
	var imageFile, labelFile string

	if train {
		imageFile = filepath.Join(dataDir, "train-images-idx3-ubyte")
		labelFile = filepath.Join(dataDir, "train-labels-idx1-ubyte")
	} else {
		imageFile = filepath.Join(dataDir, "t10k-images-idx3-ubyte")
		labelFile = filepath.Join(dataDir, "t10k-labels-idx1-ubyte")
	}

	imgReader, err := openIDX(imageFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open images: %w", err)
	}
	defer imgReader.Close()

	imagesRaw, numRows, numCols, err := ReadImages(imgReader)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	lblReader, err := openIDX(labelFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open labels: %w", err)
	}
	defer lblReader.Close()

	labelsRaw, err := ReadLabels(lblReader)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	if len(imagesRaw) != len(labelsRaw) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(imagesRaw), len(labelsRaw))
	}

	numSamples := len(imagesRaw)
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
	}

	numPixels := numRows * numCols
	images := make([][]float32, numSamples)
	labels := make([]int32, numSamples)

	for i := 0; i < numSamples; i++ {
		images[i] = make([]float32, numPixels)
		for j := 0; j < numPixels; j++ {
			// Normalize: 0-255 -> 0.0-1.0
			images[i][j] = float32(imagesRaw[i][j]) / 255.0
		}
		labels[i] = int32(labelsRaw[i])
	}

	return &Dataset{Images: images, Labels: labels, Rows: numRows, Cols: numCols}, nil
}

// LoadCSV loads MNIST from a Kaggle-style CSV export.
//
// CSV format:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//	0,0,0,0,...,0
//
// maxSamples limits the number of rows loaded (0 = load all).
func LoadCSV(filename string, maxSamples int) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or missing header")
	}

	// Skip header row
	records = records[1:]

	numSamples := len(records)
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
		records = records[:numSamples]
	}

	images := make([][]float32, numSamples)
	labels := make([]int32, numSamples)

	for i, record := range records {
		if len(record) != 785 { // 1 label + 784 pixels
			return nil, fmt.Errorf("invalid record length at row %d: got %d, want 785", i+1, len(record))
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %w", i+1, err)
		}
		if label < 0 || label > 9 {
			return nil, fmt.Errorf("label out of range [0, 9] at row %d: %d", i+1, label)
		}
		labels[i] = int32(label)

		images[i] = make([]float32, 784)
		for j := 0; j < 784; j++ {
			pixel, err := strconv.Atoi(record[j+1])
			if err != nil {
				return nil, fmt.Errorf("invalid pixel at row %d, column %d: %w", i+1, j+1, err)
			}
			images[i][j] = float32(pixel) / 255.0
		}
	}

	return &Dataset{Images: images, Labels: labels, Rows: 28, Cols: 28}, nil
}

// Synthetic creates a deterministic synthetic digit dataset.
//
// Each class c paints a bright horizontal band whose vertical position
// encodes the class, plus a little seeded noise. The classes are cleanly
// separable, so pipelines can be exercised (and tested) without the real
// files. The same seed always produces the same dataset.
func Synthetic(numSamples int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // test data, not crypto

	images := make([][]float32, numSamples)
	labels := make([]int32, numSamples)

	for i := 0; i < numSamples; i++ {
		label := int32(i % 10)
		labels[i] = label

		img := make([]float32, 28*28)
		startRow := int(label)*2 + 2
		for row := startRow; row < startRow+4 && row < 28; row++ {
			for col := 6; col < 22; col++ {
				img[row*28+col] = 0.75 + rng.Float32()*0.25
			}
		}
		// Sprinkle faint background noise so pixels are not exactly zero
		// everywhere outside the band. Band pixels are left alone to keep
		// every value inside [0, 1].
		for n := 0; n < 20; n++ {
			if idx := rng.Intn(28 * 28); img[idx] == 0 {
				img[idx] = rng.Float32() * 0.1
			}
		}
		images[i] = img
	}

	return &Dataset{Images: images, Labels: labels, Rows: 28, Cols: 28}
}

// OneHot encodes labels as a [len(labels), numClasses] float32 tensor
// with a single 1 per row.
func OneHot[B tensor.Backend](labels []int32, numClasses int, backend B) *tensor.Tensor[float32, B] {
	raw, err := tensor.NewRaw(tensor.Shape{len(labels), numClasses}, tensor.Float32, backend.Device())
	if err != nil {
		panic(fmt.Sprintf("mnist: %v", err))
	}

	data := raw.AsFloat32()
	for i, label := range labels {
		if label < 0 || int(label) >= numClasses {
			panic(fmt.Sprintf("mnist: label %d out of range [0, %d)", label, numClasses))
		}
		data[i*numClasses+int(label)] = 1.0
	}

	return tensor.New[float32, B](raw, backend)
}
