package ops

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// CrossEntropyOp records the fused softmax + negative log-likelihood
// loss over logits [batch, classes] and int32 class targets [batch].
//
// Fusing the two yields the famously simple gradient
//
//	grad_logits = (softmax(logits) - onehot(targets)) / batch
//
// which is why frameworks expose cross-entropy as a single primitive
// instead of composing log, softmax, and indexing.
//
// Targets are class indices, not probabilities; no gradient flows to
// them.
type CrossEntropyOp struct {
	logits  *tensor.RawTensor
	targets *tensor.RawTensor
	output  *tensor.RawTensor
}

func NewCrossEntropyOp(logits, targets, output *tensor.RawTensor) *CrossEntropyOp {
	return &CrossEntropyOp{logits: logits, targets: targets, output: output}
}

func (op *CrossEntropyOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	batch := op.logits.Shape()[0]

	probs := backend.Softmax(op.logits, 1)
	diff := backend.Sub(probs, oneHot(op.targets, op.logits))
	grad := backend.MulScalar(diff, scalarValue(outputGrad)/float64(batch))

	return []*tensor.RawTensor{grad}
}

func (op *CrossEntropyOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.logits} }
func (op *CrossEntropyOp) Output() *tensor.RawTensor   { return op.output }

// oneHot expands int32 class indices into a one-hot matrix matching the
// logits' shape and dtype.
func oneHot(targets, logits *tensor.RawTensor) *tensor.RawTensor {
	shape := logits.Shape()
	batch, classes := shape[0], shape[1]

	out := zerosLike(logits)
	idx := targets.AsInt32()

	switch logits.DType() {
	case tensor.Float32:
		data := out.AsFloat32()
		for b := 0; b < batch; b++ {
			data[b*classes+int(idx[b])] = 1
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for b := 0; b < batch; b++ {
			data[b*classes+int(idx[b])] = 1
		}
	default:
		panic(fmt.Sprintf("ops: one-hot requires float logits, got %s", logits.DType()))
	}
	return out
}
