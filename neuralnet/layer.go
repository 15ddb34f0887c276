package neuralnet

import "math/rand"

// LayerDesc describes one fully-connected layer before it is built:
// its input/output widths and activation.
type LayerDesc struct {
	NumInputs  int
	NumOutputs int
	Activation Activation
}

func (d LayerDesc) numParameters() int {
	return d.NumOutputs * (d.NumInputs + 1)
}

// layer holds one fully-connected layer's parameters. Weights are
// stored row-major (outputs x inputs); the bias vector follows
// conceptually in the flattened parameter layout spec.md §4.5
// describes, but is kept as a separate slice here for direct indexing
// during the forward and gradient passes.
type layer struct {
	weights []float64 // len = numOutputs * numInputs, row-major
	bias    []float64 // len = numOutputs
	act     Activation

	numInputs  int
	numOutputs int
}

func newLayer(desc LayerDesc, init Initializer, rng *rand.Rand) *layer {
	return &layer{
		weights:    init(rng, desc.NumInputs, desc.NumOutputs),
		bias:       make([]float64, desc.NumOutputs),
		act:        desc.Activation,
		numInputs:  desc.NumInputs,
		numOutputs: desc.NumOutputs,
	}
}

func (l *layer) numParameters() int {
	return l.numOutputs * (l.numInputs + 1)
}

func (l *layer) weightAt(out, in int) float64 {
	return l.weights[out*l.numInputs+in]
}

// preActivation computes a = W·x + b for every output unit.
func (l *layer) preActivation(x []float64, out []float64) {
	for o := 0; o < l.numOutputs; o++ {
		sum := l.bias[o]
		row := l.weights[o*l.numInputs : (o+1)*l.numInputs]
		for i, xi := range x {
			sum += row[i] * xi
		}
		out[o] = sum
	}
}

// evaluate runs the forward pass for this layer, writing f(a) to out.
func (l *layer) evaluate(x []float64, pre, out []float64) {
	l.preActivation(x, pre)
	for o := 0; o < l.numOutputs; o++ {
		out[o] = l.act.F(pre[o])
	}
}

// flattenParametersInto writes this layer's parameter block (weights
// row-major, then bias) into dst, which must have length
// numParameters().
func (l *layer) flattenParametersInto(dst []float64) {
	n := copy(dst, l.weights)
	copy(dst[n:], l.bias)
}

// loadParametersFrom reads this layer's parameter block back out of
// src (inverse of flattenParametersInto).
func (l *layer) loadParametersFrom(src []float64) {
	n := copy(l.weights, src)
	copy(l.bias, src[n:])
}
