// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Used when a buffer's rate differs from the fixed device rate
package resample

// Resampler performs linear interpolation to convert between sample rates.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
}

// New creates a new resampler.
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts interleaved samples at inputRate to outputRate using
// linear interpolation. Identical rates pass the input through.
func (r *Resampler) Resample(input []float32) []float32 {
	if r.inputRate == r.outputRate || len(input) == 0 {
		return input
	}

	inputFrames := len(input) / r.channels
	outputFrames := r.OutputFrames(inputFrames)
	output := make([]float32, outputFrames*r.channels)

	for outIdx := 0; outIdx < outputFrames; outIdx++ {
		inputPos := float64(outIdx) * r.ratio
		inputIdx := int(inputPos)
		frac := float32(inputPos - float64(inputIdx))

		for ch := 0; ch < r.channels; ch++ {
			sample1 := input[inputIdx*r.channels+ch]
			sample2 := sample1
			if inputIdx+1 < inputFrames {
				sample2 = input[(inputIdx+1)*r.channels+ch]
			}

			output[outIdx*r.channels+ch] = sample1*(1.0-frac) + sample2*frac
		}
	}

	return output
}

// OutputFrames returns how many frames resampling inputFrames produces.
func (r *Resampler) OutputFrames(inputFrames int) int {
	if r.inputRate == r.outputRate {
		return inputFrames
	}
	return int(float64(inputFrames) / r.ratio)
}
