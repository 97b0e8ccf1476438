package nn

import (
	"math"
	"math/rand"

	"github.com/primer-ml/primer/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	t := tensor.Zeros[float32](shape, backend)
	XavierUniform(fanIn, fanOut)(t.Data())
	return t
}

// Zeros creates a tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// Randn creates a tensor with random values from standard normal distribution.
//
// Values are drawn from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, backend)
}

// Initializer fills a parameter's storage in place.
//
// Initializers compose with Parameter.Init, which lets a live module be
// re-initialized without replacing its tensors. That matters for tied
// parameters: the new values are visible through every module that
// shares the storage.
type Initializer func(data []float32)

// XavierUniform returns an initializer drawing from
// U(-sqrt(6/(fanIn+fanOut)), +sqrt(6/(fanIn+fanOut))).
func XavierUniform(fanIn, fanOut int) Initializer {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return func(data []float32) {
		for i := range data {
			//nolint:gosec // Using math/rand for weight initialization (not security-critical)
			data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
		}
	}
}

// Normal returns an initializer drawing from N(mean, std^2).
func Normal(mean, std float64) Initializer {
	return func(data []float32) {
		for i := range data {
			//nolint:gosec // Using math/rand for weight initialization (not security-critical)
			data[i] = float32(rand.NormFloat64()*std + mean)
		}
	}
}

// Constant returns an initializer setting every element to value.
// Constant(0) and Constant(1) are the usual bias presets.
func Constant(value float32) Initializer {
	return func(data []float32) {
		for i := range data {
			data[i] = value
		}
	}
}
