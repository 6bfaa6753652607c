package material

import "github.com/achilleasa/vincent/types"

// FurnaceEstimate summarizes a single-scattering white furnace run: the
// bsdf is lit by uniform unit radiance and the estimator f·|cosθi|/pdf is
// averaged over many importance-sampled directions.
type FurnaceEstimate struct {
	Samples int

	// Mean estimator value.
	Throughput types.Vec3

	// Mean estimator value with the (nt/ni)² radiance factor removed from
	// transmitted samples.
	UnscaledThroughput types.Vec3

	Reflected   int
	Transmitted int
	Absorbed    int
}

// Run a white furnace estimate for outgoing direction wo.
func EstimateThroughput(b *Bsdf, wo types.Vec3, samples int, rng Sampler) FurnaceEstimate {
	est := FurnaceEstimate{Samples: samples}
	if samples <= 0 {
		return est
	}

	var sum, unscaledSum [3]float64
	for i := 0; i < samples; i++ {
		s := b.Sample(wo, rng)
		if s.Pdf <= 0 {
			est.Absorbed++
			continue
		}

		weight := s.F.Mul(abs32(s.Wi[2]) / s.Pdf)
		unscaled := weight
		switch s.Lobe {
		case LobeSpecularTransmission:
			est.Transmitted++
			unscaled = weight.Mul(1 / b.RadianceScale(wo))
		default:
			est.Reflected++
		}

		for c := 0; c < 3; c++ {
			sum[c] += float64(weight[c])
			unscaledSum[c] += float64(unscaled[c])
		}
	}

	for c := 0; c < 3; c++ {
		est.Throughput[c] = float32(sum[c] / float64(samples))
		est.UnscaledThroughput[c] = float32(unscaledSum[c] / float64(samples))
	}
	return est
}
