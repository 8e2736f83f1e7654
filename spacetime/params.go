// Copyright (c) 2026 The Lightcore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package spacetime

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Default protocol constants.
const (
	DefaultEraLength           uint64 = 2048 // slots per era
	DefaultSaltInterval        uint64 = 256  // slots per salt era
	DefaultSlotsPerBlock       uint64 = 6    // expected slots between two consecutive blocks
	DefaultMaxAdjustmentFactor uint64 = 4

	// MaxSaltsPerEra caps EraLength/SaltInterval, which bounds the salt rotations a
	// verifier folds for a header that skips eras.
	MaxSaltsPerEra uint64 = 64

	// DefaultInitialSolutionRange gives every audited piece a 1/SlotsPerBlock chance per slot.
	DefaultInitialSolutionRange uint64 = math.MaxUint64 / (2 * DefaultSlotsPerBlock)
)

// Params is the set of protocol-wide consensus constants. Every verifier of a network must
// use identical params, otherwise they disagree on salts, randomness and solution ranges.
type Params struct {
	EraLength           uint64 `yaml:"eraLength" json:"eraLength"`                     // slots per era, randomness and solution range are fixed within an era
	SaltInterval        uint64 `yaml:"saltInterval" json:"saltInterval"`               // slots per salt era
	SlotsPerBlock       uint64 `yaml:"slotsPerBlock" json:"slotsPerBlock"`             // expected slots between blocks, the retarget goal
	MaxAdjustmentFactor uint64 `yaml:"maxAdjustmentFactor" json:"maxAdjustmentFactor"` // max factor the solution range may move per era

	InitialSolutionRange uint64  `yaml:"initialSolutionRange" json:"initialSolutionRange"`
	MinSolutionRange     uint64  `yaml:"minSolutionRange" json:"minSolutionRange"`
	GenesisRandomness    Bytes32 `yaml:"genesisRandomness" json:"genesisRandomness"`
	GenesisSalt          Salt    `yaml:"genesisSalt" json:"genesisSalt"`
}

// DefaultParams returns the default params.
func DefaultParams() Params {
	return Params{
		EraLength:            DefaultEraLength,
		SaltInterval:         DefaultSaltInterval,
		SlotsPerBlock:        DefaultSlotsPerBlock,
		MaxAdjustmentFactor:  DefaultMaxAdjustmentFactor,
		InitialSolutionRange: DefaultInitialSolutionRange,
		MinSolutionRange:     1,
		GenesisRandomness:    Blake2b([]byte("spacetime genesis randomness")),
		GenesisSalt:          BytesToSalt(Blake2b([]byte("spacetime genesis salt")).Bytes()),
	}
}

// Validate checks the params for values that would break scheduling or retargeting.
func (p *Params) Validate() error {
	switch {
	case p.EraLength == 0:
		return errors.New("era length must be positive")
	case p.SaltInterval == 0:
		return errors.New("salt interval must be positive")
	case p.EraLength%p.SaltInterval != 0:
		return errors.Errorf("era length %d not a multiple of salt interval %d", p.EraLength, p.SaltInterval)
	case p.EraLength/p.SaltInterval > MaxSaltsPerEra:
		return errors.Errorf("era length %d spans %d salt eras, max %d", p.EraLength, p.EraLength/p.SaltInterval, MaxSaltsPerEra)
	case p.SlotsPerBlock == 0:
		return errors.New("slots per block must be positive")
	case p.SlotsPerBlock > p.EraLength:
		return errors.Errorf("slots per block %d exceeds era length %d", p.SlotsPerBlock, p.EraLength)
	case p.MaxAdjustmentFactor < 2:
		return errors.New("max adjustment factor must be at least 2")
	case p.MinSolutionRange == 0:
		return errors.New("min solution range must be positive")
	case p.InitialSolutionRange < p.MinSolutionRange:
		return errors.Errorf("initial solution range %d below minimum %d", p.InitialSolutionRange, p.MinSolutionRange)
	}
	return nil
}

// LoadParams reads params from a yaml file. Fields absent from the file keep their default values.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, errors.Wrap(err, "read params")
	}
	params := DefaultParams()
	if err := yaml.Unmarshal(data, &params); err != nil {
		return Params{}, errors.Wrap(err, "decode params")
	}
	if err := params.Validate(); err != nil {
		return Params{}, errors.WithMessage(err, "invalid params")
	}
	return params, nil
}
