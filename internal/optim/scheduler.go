package optim

// StepLR decays an optimizer's learning rate by gamma every stepSize
// epochs.
//
//	sched := optim.NewStepLR(opt, 20, 0.5)
//	for epoch := 0; epoch < epochs; epoch++ {
//	    ...
//	    sched.Step()
//	}
type StepLR struct {
	opt      Optimizer
	stepSize int
	gamma    float64
	epoch    int
}

// NewStepLR creates a scheduler over opt.
func NewStepLR(opt Optimizer, stepSize int, gamma float64) *StepLR {
	if stepSize <= 0 {
		stepSize = 1
	}
	if gamma == 0 {
		gamma = 0.1
	}
	return &StepLR{opt: opt, stepSize: stepSize, gamma: gamma}
}

// Step advances one epoch, decaying the learning rate on boundaries.
func (s *StepLR) Step() {
	s.epoch++
	if s.epoch%s.stepSize == 0 {
		s.opt.SetLR(s.opt.GetLR() * s.gamma)
	}
}

// Epoch returns the number of completed epochs.
func (s *StepLR) Epoch() int { return s.epoch }
