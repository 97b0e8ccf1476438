package nn

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// loadInto copies a state-dict entry into a parameter's storage after
// validating shape and dtype. The parameter keeps its tensor identity,
// so tied modules and optimizer state observe the loaded values.
func loadInto[B tensor.Backend](state map[string]*tensor.RawTensor, key string, p *Parameter[B]) error {
	raw, ok := state[key]
	if !ok {
		return fmt.Errorf("missing %s in state dict", key)
	}
	want := p.Tensor().Shape()
	if !raw.Shape().Equal(want) {
		return fmt.Errorf("%s shape mismatch: expected %v, got %v", key, want, raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		return fmt.Errorf("%s dtype mismatch: expected float32, got %v", key, raw.DType())
	}
	copy(p.Tensor().Data(), raw.AsFloat32())
	return nil
}
