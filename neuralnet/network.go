// Package neuralnet implements a small fully-connected feedforward
// network with an analytic per-sample parameter gradient, sized for
// SARSA(λ) training rather than batched gradient descent.
package neuralnet

import (
	"fmt"
	"math/rand"
)

// NeuralNet is an ordered stack of fully-connected layers. Layer i's
// output width must equal layer i+1's input width.
type NeuralNet struct {
	layers       []*layer
	learningRate float64
	step         int

	// Forward/backward scratch, reused across Evaluate/
	// EvaluateWithGradient calls so the per-layer activation and
	// derivative buffers are not reallocated on every step.
	layerInputs [][]float64 // layerInputs[l] is the input to layer l
	preActs     [][]float64 // preActs[l] is layer l's pre-activation
	deltas      [][]float64 // deltas[l] is ∂y/∂(layer l pre-activation)
	upstream    [][]float64 // upstream[l] is ∂y/∂(layer l output), one buffer per layer boundary
}

// New builds a network from descs, validating that adjacent layers'
// widths agree. initializerName selects a registered Initializer
// (empty string uses the registry's default, "source").
func New(descs []LayerDesc, learningRate float64, initializerName string, rng *rand.Rand) (*NeuralNet, error) {
	if len(descs) == 0 {
		return nil, fmt.Errorf("neuralnet: at least one layer is required")
	}
	for i := 0; i+1 < len(descs); i++ {
		if descs[i].NumOutputs != descs[i+1].NumInputs {
			return nil, fmt.Errorf("neuralnet: layer %d outputs %d but layer %d expects %d inputs",
				i, descs[i].NumOutputs, i+1, descs[i+1].NumInputs)
		}
	}

	name := initializerName
	if name == "" {
		names := InitializerNames()
		if len(names) == 0 {
			return nil, fmt.Errorf("neuralnet: no initializers registered")
		}
		name = names[0]
	}
	init, ok := globalInitializers.get(name)
	if !ok {
		return nil, fmt.Errorf("neuralnet: unknown initializer %q", name)
	}

	n := &NeuralNet{learningRate: learningRate}
	n.layers = make([]*layer, len(descs))
	n.layerInputs = make([][]float64, len(descs))
	n.preActs = make([][]float64, len(descs))
	n.deltas = make([][]float64, len(descs))
	n.upstream = make([][]float64, len(descs))
	for i, d := range descs {
		n.layers[i] = newLayer(d, init, rng)
		n.layerInputs[i] = make([]float64, d.NumInputs)
		n.preActs[i] = make([]float64, d.NumOutputs)
		n.deltas[i] = make([]float64, d.NumOutputs)
		n.upstream[i] = make([]float64, d.NumOutputs)
	}
	return n, nil
}

// NumInputs returns the input width of the first layer.
func (n *NeuralNet) NumInputs() int {
	return n.layers[0].numInputs
}

// NumOutputs returns the output width of the last layer.
func (n *NeuralNet) NumOutputs() int {
	return n.layers[len(n.layers)-1].numOutputs
}

// NumParameters returns the total parameter count across all layers.
func (n *NeuralNet) NumParameters() int {
	total := 0
	for _, l := range n.layers {
		total += l.numParameters()
	}
	return total
}

// Evaluate runs the forward pass, writing the result into out (which
// must have length NumOutputs()).
func (n *NeuralNet) Evaluate(x []float64, out []float64) {
	if len(x) != n.NumInputs() {
		panic("neuralnet: Evaluate input length mismatch")
	}
	if len(out) != n.NumOutputs() {
		panic("neuralnet: Evaluate output length mismatch")
	}

	cur := x
	for i, l := range n.layers {
		copy(n.layerInputs[i], cur)
		var dst []float64
		if i == len(n.layers)-1 {
			dst = out
		} else {
			dst = n.layerInputs[i+1]
		}
		l.evaluate(n.layerInputs[i], n.preActs[i], dst)
		cur = dst
	}
}

// EvaluateWithGradient runs the forward pass and fills grad (length
// NumParameters()) with ∂y/∂θ for every parameter θ, assuming the
// network's final layer has exactly one output. grad is fully
// overwritten on every call — per spec.md Design Note 9, callers must
// never assume gradient state survives or accumulates across calls.
func (n *NeuralNet) EvaluateWithGradient(x []float64, grad []float64) float64 {
	if n.NumOutputs() != 1 {
		panic("neuralnet: EvaluateWithGradient requires a single-output network")
	}
	if len(grad) != n.NumParameters() {
		panic("neuralnet: EvaluateWithGradient gradient buffer length mismatch")
	}

	var out [1]float64
	n.Evaluate(x, out[:])
	y := out[0]

	offsets := n.parameterOffsets()

	n.upstream[len(n.layers)-1][0] = 1.0
	for li := len(n.layers) - 1; li >= 0; li-- {
		l := n.layers[li]
		delta := n.deltas[li]
		upstream := n.upstream[li]

		for o := range delta {
			delta[o] = l.act.FPrime(n.preActs[li][o]) * upstream[o]
		}

		block := grad[offsets[li] : offsets[li]+l.numParameters()]
		wBlock := block[:l.numOutputs*l.numInputs]
		bBlock := block[l.numOutputs*l.numInputs:]
		for o := 0; o < l.numOutputs; o++ {
			row := wBlock[o*l.numInputs : (o+1)*l.numInputs]
			for i, xi := range n.layerInputs[li] {
				row[i] = delta[o] * xi
			}
			bBlock[o] = delta[o]
		}

		if li > 0 {
			prevUpstream := n.upstream[li-1]
			for i := 0; i < l.numInputs; i++ {
				var sum float64
				for o := 0; o < l.numOutputs; o++ {
					sum += l.weightAt(o, i) * delta[o]
				}
				prevUpstream[i] = sum
			}
		}
	}

	return y
}

func (n *NeuralNet) parameterOffsets() []int {
	offsets := make([]int, len(n.layers))
	acc := 0
	for i, l := range n.layers {
		offsets[i] = acc
		acc += l.numParameters()
	}
	return offsets
}

// UpdateWeights applies θ ← θ + (learningRate · err · decay(step)) ·
// gradLike to every parameter, then advances the decay step counter.
// decay(step) = 1/(1 + 0.001·step).
func (n *NeuralNet) UpdateWeights(err float64, gradLike []float64) {
	if len(gradLike) != n.NumParameters() {
		panic("neuralnet: UpdateWeights gradient buffer length mismatch")
	}

	decay := 1.0 / (1.0 + 0.001*float64(n.step))
	scale := n.learningRate * err * decay

	offsets := n.parameterOffsets()
	for i, l := range n.layers {
		block := gradLike[offsets[i] : offsets[i]+l.numParameters()]
		for j := range l.weights {
			l.weights[j] += scale * block[j]
		}
		for j := range l.bias {
			l.bias[j] += scale * block[len(l.weights)+j]
		}
	}
	n.step++
}

// Weights returns the full flattened parameter vector (all layers'
// weight rows then bias, in layer order).
func (n *NeuralNet) Weights() []float64 {
	out := make([]float64, n.NumParameters())
	offsets := n.parameterOffsets()
	for i, l := range n.layers {
		l.flattenParametersInto(out[offsets[i] : offsets[i]+l.numParameters()])
	}
	return out
}

// loadParameters overwrites every layer's parameters from a flattened
// vector in the same layout Weights() returns. Used by tests that need
// to perturb a single parameter and re-evaluate.
func (n *NeuralNet) loadParameters(theta []float64) {
	offsets := n.parameterOffsets()
	for i, l := range n.layers {
		l.loadParametersFrom(theta[offsets[i] : offsets[i]+l.numParameters()])
	}
}

// SplitAt splits the network into the first k layers and the rest,
// both sharing this network's learning rate. The two halves share no
// layer state with each other or with n's scratch buffers.
func (n *NeuralNet) SplitAt(k int) (head, tail *NeuralNet) {
	if k <= 0 || k >= len(n.layers) {
		panic("neuralnet: SplitAt requires 0 < k < number of layers")
	}
	head = newNetworkFromLayers(n.layers[:k], n.learningRate)
	tail = newNetworkFromLayers(n.layers[k:], n.learningRate)
	return head, tail
}

func newNetworkFromLayers(layers []*layer, learningRate float64) *NeuralNet {
	n := &NeuralNet{learningRate: learningRate}
	n.layers = make([]*layer, len(layers))
	copy(n.layers, layers)
	n.layerInputs = make([][]float64, len(layers))
	n.preActs = make([][]float64, len(layers))
	n.deltas = make([][]float64, len(layers))
	n.upstream = make([][]float64, len(layers))
	for i, l := range n.layers {
		n.layerInputs[i] = make([]float64, l.numInputs)
		n.preActs[i] = make([]float64, l.numOutputs)
		n.deltas[i] = make([]float64, l.numOutputs)
		n.upstream[i] = make([]float64, l.numOutputs)
	}
	return n
}

// centralDifference approximates a scalar function's derivative at x
// via (f(x+h)-f(x-h))/(2h); used by the P8/P9 gradient-correctness
// tests.
func centralDifference(f func(float64) float64, x, h float64) float64 {
	return (f(x+h) - f(x-h)) / (2 * h)
}
