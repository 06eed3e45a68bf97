package obs

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores the request id used to correlate operation logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time logs the duration of one operation; call the returned func with a
// pointer to the operation's named error result.
//
//	defer obs.Time(ctx, logger, "ors.geocode")(&err)
func Time(ctx context.Context, logger log.Logger, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			level.Error(logger).Log("req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		level.Debug(logger).Log("req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
