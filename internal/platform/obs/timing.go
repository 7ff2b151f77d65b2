package obs

import (
	"time"

	"go.uber.org/zap"
)

// Time logs the duration of an operation on return. Usage:
//
//	defer obs.Time(log, "store.append")(&err)
func Time(log *zap.Logger, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Warn("operation failed",
				zap.String("op", name),
				zap.Duration("dur", dur),
				zap.Error(*errp),
			)
			return
		}

		log.Debug("operation complete",
			zap.String("op", name),
			zap.Duration("dur", dur),
		)
	}
}
