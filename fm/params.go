// SPDX-License-Identifier: MIT

package fm

// Reference hyperparameters.
const (
	DefaultK            = 10
	DefaultLearningRate = 0.99
	DefaultMR           = 0.1
	DefaultML           = 0.1
)

// Params holds the hyperparameters of one update step.
// No bounds are enforced; positive values are the intended usage.
type Params struct {
	// K is the factor count. Zero means "all columns of V";
	// any other value must equal V.Cols().
	K int `json:"k" yaml:"k"`

	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"`

	// MR weighs the previous momentum ΔV.
	MR float64 `json:"m_r" yaml:"m_r"`

	// ML is the L2 weight decay applied to V.
	ML float64 `json:"m_l" yaml:"m_l"`
}

// DefaultParams returns {K: 10, LearningRate: 0.99, MR: 0.1, ML: 0.1}.
func DefaultParams() Params {
	return Params{
		K:            DefaultK,
		LearningRate: DefaultLearningRate,
		MR:           DefaultMR,
		ML:           DefaultML,
	}
}
