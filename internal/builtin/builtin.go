// Package builtin registers the engine's default indicator set — EMA, ATR,
// and Stochastic RSI — against an indicator.Registry. It is grounded on the
// teacher's internal/webhooks package-init pattern of wiring a fixed set of
// named components into a registry at startup, adapted here to indicators
// rather than webhook matchers.
package builtin

import (
	"errors"

	"barcore/internal/barerrors"
	"barcore/internal/indicator"
)

// Init registers EMA, ATR, and StochasticRSI into reg. It is idempotent:
// calling it more than once against the same registry is a no-op for
// indicators already present, so callers don't need to guard against
// double-initialization at process startup.
func Init(reg *indicator.Registry) error {
	for _, spec := range []indicator.Spec{emaSpec(), atrSpec(), stochRSISpec()} {
		if err := reg.Register(spec); err != nil {
			var dup *barerrors.DuplicateIndicator
			if errors.As(err, &dup) {
				continue
			}
			return err
		}
	}
	return nil
}

func paramInt(p indicator.Params, key string, fallback int) int {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return fallback
	}
}
