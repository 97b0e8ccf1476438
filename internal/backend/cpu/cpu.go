// Package cpu implements the tensor.Backend contract in pure Go.
//
// Kernels are generic over the element type and dispatched once per call
// on the runtime dtype. Large kernels fan out across goroutines through
// internal/parallel; small tensors stay on the calling goroutine.
//
// Binary operations pick one of three paths:
//   - in place, when shapes match and the left operand's buffer is unique
//   - vectorized, when shapes match but the buffer is shared
//   - stride-broadcast, when shapes differ under NumPy rules
package cpu

import (
	"fmt"

	"github.com/primer-ml/primer/internal/parallel"
	"github.com/primer-ml/primer/internal/tensor"
)

// CPUBackend executes tensor operations on the host CPU.
type CPUBackend struct {
	device tensor.Device
	pool   parallel.Config
}

// New creates a CPU backend with a worker pool sized to the machine.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		pool:   parallel.DefaultConfig(),
	}
}

// NewWithPool creates a CPU backend with an explicit parallel config.
// Tests use this to pin kernels to one goroutine.
func NewWithPool(pool parallel.Config) *CPUBackend {
	return &CPUBackend{device: tensor.CPU, pool: pool}
}

// Name returns the backend name.
func (c *CPUBackend) Name() string {
	return "CPU"
}

// Device returns tensor.CPU.
func (c *CPUBackend) Device() tensor.Device {
	return c.device
}

// Add returns a + b with broadcasting.
func (c *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary(opAdd, a, b)
}

// Sub returns a - b with broadcasting.
func (c *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary(opSub, a, b)
}

// Mul returns the element-wise product with broadcasting.
func (c *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary(opMul, a, b)
}

// Div returns the element-wise quotient with broadcasting.
func (c *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary(opDiv, a, b)
}

func (c *CPUBackend) binary(op binOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}

	switch a.DType() {
	case tensor.Float32:
		return binaryDispatch[float32](c, op, a, b)
	case tensor.Float64:
		return binaryDispatch[float64](c, op, a, b)
	case tensor.Int32:
		return binaryDispatch[int32](c, op, a, b)
	case tensor.Int64:
		return binaryDispatch[int64](c, op, a, b)
	case tensor.Uint8:
		return binaryDispatch[uint8](c, op, a, b)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}
}

// newRaw allocates or panics; shape errors here are programmer errors.
func newRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	return raw
}

// compile-time interface check
var _ tensor.Backend = (*CPUBackend)(nil)
