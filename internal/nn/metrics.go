package nn

import (
	"fmt"

	"github.com/primer-ml/primer/internal/tensor"
)

// Accuracy returns the fraction of rows where the argmax of the logits
// matches the target class index.
//
// Logits have shape [batch_size, num_classes]; targets have shape
// [batch_size]. The comparison runs outside the tape, so calling it
// during training does not record anything.
func Accuracy[B tensor.Backend](
	logits *tensor.Tensor[float32, B],
	targets *tensor.Tensor[int32, B],
) float64 {
	predictions := logits.Argmax(1)

	hits := predictions.Equal(targets)
	hitData := hits.Data()
	if len(hitData) == 0 {
		panic(fmt.Sprintf("Accuracy: empty batch (logits shape %v)", logits.Shape()))
	}

	correct := 0
	for _, hit := range hitData {
		if hit {
			correct++
		}
	}
	return float64(correct) / float64(len(hitData))
}
