package tensor

// Device identifies where tensor data lives and kernels execute.
type Device int

// Supported compute devices. Only CPU has a backend in this release;
// the remaining values reserve identifiers for future accelerators.
const (
	CPU Device = iota
	CUDA
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}
