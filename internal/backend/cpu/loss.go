package cpu

import (
	"fmt"
	"math"

	"github.com/primer-ml/primer/internal/tensor"
)

// CrossEntropy computes the mean negative log-likelihood of int32 class
// targets [batch] under logits [batch, classes], returned as a scalar
// tensor of the logits' dtype.
//
// Per row the loss is logsumexp(logits) - logits[target], evaluated with
// the max-shift so well-separated logits cannot overflow the exponent.
func (c *CPUBackend) CrossEntropy(logits, targets *tensor.RawTensor) *tensor.RawTensor {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("crossentropy: logits must be 2D [batch, classes], got %v", shape))
	}
	if targets.DType() != tensor.Int32 {
		panic(fmt.Sprintf("crossentropy: targets must be int32, got %s", targets.DType()))
	}
	if len(targets.Shape()) != 1 || targets.Shape()[0] != shape[0] {
		panic(fmt.Sprintf("crossentropy: targets shape %v does not match batch size %d",
			targets.Shape(), shape[0]))
	}

	out := newRaw(tensor.Shape{1}, logits.DType(), c.device)

	switch logits.DType() {
	case tensor.Float32:
		crossEntropyInto[float32](logits, targets, out)
	case tensor.Float64:
		crossEntropyInto[float64](logits, targets, out)
	default:
		panic(fmt.Sprintf("crossentropy: requires a float dtype, got %s", logits.DType()))
	}
	return out
}

func crossEntropyInto[T floats](logits, targets, out *tensor.RawTensor) {
	lv := tensor.View[T](logits)
	tv := targets.AsInt32()
	batch, classes := logits.Shape()[0], logits.Shape()[1]

	var total float64
	for n := 0; n < batch; n++ {
		row := lv[n*classes : (n+1)*classes]
		target := int(tv[n])
		if target < 0 || target >= classes {
			panic(fmt.Sprintf("crossentropy: target %d out of range for %d classes", target, classes))
		}

		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}

		var sumExp float64
		for _, v := range row {
			sumExp += math.Exp(float64(v - maxVal))
		}

		logSumExp := float64(maxVal) + math.Log(sumExp)
		total += logSumExp - float64(row[target])
	}

	tensor.View[T](out)[0] = T(total / float64(batch))
}
