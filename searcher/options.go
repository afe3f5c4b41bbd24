package searcher

import "scotlandyard/experiments/metrics"

type Option func(s *Session)

func WithDangerThreshold(threshold int) Option {
	return func(s *Session) {
		if threshold > 0 {
			s.policy.DangerThreshold = threshold
		}
	}
}

func WithDoubleGateDistance(distance int) Option {
	return func(s *Session) {
		if distance > 0 {
			s.policy.DoubleGateDistance = distance
		}
	}
}

func WithKillerSlots(slots int) Option {
	return func(s *Session) {
		s.killerSlots = slots
	}
}

// WithoutKillers searches every node in its natural move order.
func WithoutKillers() Option {
	return func(s *Session) {
		s.useKillers = false
	}
}

// WithFixedDepth skips the shallower passes and searches max depth at once.
func WithFixedDepth() Option {
	return func(s *Session) {
		s.fixedDepth = true
	}
}

func WithEvaluationFn(evaluate Evaluate) Option {
	return func(s *Session) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Session) {
		s.metrics = metrics.NewCollector()
	}
}
