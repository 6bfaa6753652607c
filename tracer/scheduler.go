package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign to the pool
	// of tracers using feedback collected from previous frames.
	//
	// This function returns the block height assignment for each tracer
	// in the input list.
	Schedule(tracers []Tracer, frameH uint32) []uint32
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance
func NewPerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split frame into blocks of variable height and assign to the pool
// of tracers using feedback collected from previous frames.
//
// The first frame is split according to each tracer's speed estimate. When
// previous frame information is available the scheduler uses the following
// formula for estimating the workload for tracer w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
//
// The returned rows always add up to frameH. A tracer is assigned 0 rows
// only when there are more tracers than rows.
func (sch *perfectScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	if len(tracers) == 0 {
		return nil
	}

	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(tracers) || !haveStats(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
		weights := make([]float64, len(tracers))
		for idx, tr := range tracers {
			weights[idx] = float64(tr.SpeedEstimate())
		}
		sch.assign(weights, frameH)
		return sch.blockAssignment
	}

	// Use last frame statistics
	weights := make([]float64, len(tracers))
	for idx, tr := range tracers {
		stats := tr.Stats()
		weights[idx] = float64(stats.BlockH) / float64(stats.BlockTime)
	}
	sch.assign(weights, frameH)
	return sch.blockAssignment
}

// Distribute frameH rows proportionally to the weights.
func (sch *perfectScheduler) assign(weights []float64, frameH uint32) {
	var total float64
	for _, w := range weights {
		total += w
	}
	if !(total > 0) || math.IsInf(total, 0) {
		for idx := range weights {
			weights[idx] = 1
		}
		total = float64(len(weights))
	}

	scaler := float64(frameH) / total
	var scheduledRows uint32 = 0
	for idx, w := range weights {
		rows := uint32(math.Max(1.0, math.Floor(w*scaler)))
		if scheduledRows+rows > frameH {
			rows = frameH - scheduledRows
		}
		sch.blockAssignment[idx] = rows
		scheduledRows += rows
	}

	// In case rows don't add up to the frame height append the missing ones to the first tracer
	sch.blockAssignment[0] += frameH - scheduledRows
}

// Returns true if all tracers have rendered a block.
func haveStats(tracers []Tracer) bool {
	for _, tr := range tracers {
		stats := tr.Stats()
		if stats == nil || stats.BlockTime <= 0 {
			return false
		}
	}
	return true
}
