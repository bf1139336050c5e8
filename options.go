package unicart

import (
	"go.uber.org/zap"

	"github.com/xenking/unicart/money"
)

// SpendGetMode decides when a spend-x-get-y promotion consumes its single
// use per cart.
type SpendGetMode int

const (
	// SpendGetLockOnValidate consumes the single use on the first fully
	// validated attempt, even when the spend threshold is not met and the
	// payable stays unchanged. This is the default.
	SpendGetLockOnValidate SpendGetMode = iota
	// SpendGetLockOnEffect consumes the single use only when the promotion
	// actually reduces the payable.
	SpendGetLockOnEffect
)

type config struct {
	stacking     bool
	itemOverride bool
	rounding     money.Rounding
	spendGetMode SpendGetMode
	logger       *zap.Logger
}

func defaultConfig() config {
	return config{
		stacking: true,
		rounding: money.RoundNearest,
		logger:   zap.NewNop(),
	}
}

// Option configures a Cart at construction.
type Option func(*config)

// WithStacking allows or forbids more than one discount across the cart's
// lifetime. When disabled, at most one discount of any kind (flat,
// percentage, BxGy, spend-get) may ever be applied, at item or cart level.
// Stacking is allowed by default.
func WithStacking(allowed bool) Option {
	return func(c *config) { c.stacking = allowed }
}

// WithItemOverride makes AddItem silently replace an existing item with the
// same id instead of failing. Disabled by default.
func WithItemOverride(allowed bool) Option {
	return func(c *config) { c.itemOverride = allowed }
}

// WithRounding sets the rounding mode applied to all numeric outputs at the
// summary and detail boundaries. Defaults to money.RoundNearest.
func WithRounding(mode money.Rounding) Option {
	return func(c *config) { c.rounding = mode }
}

// WithSpendGetMode sets when a spend-get promotion consumes its single use.
// Defaults to SpendGetLockOnValidate.
func WithSpendGetMode(mode SpendGetMode) Option {
	return func(c *config) { c.spendGetMode = mode }
}

// WithLogger sets a logger for per-operation debug logging. Defaults to a
// nop logger.
func WithLogger(lg *zap.Logger) Option {
	return func(c *config) {
		if lg != nil {
			c.logger = lg
		}
	}
}
