package logger

import (
	"time"

	"go.uber.org/zap"
)

// Standard fields: HTTP.

// RequestID creates a field for the request ID.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method creates a field for the HTTP method.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path creates a field for the request path.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status creates a field for the HTTP status code.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Duration creates a field for the request duration.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// Standard fields: domain.

// Provider creates a field for the identity provider name.
func Provider(v string) zap.Field {
	return zap.String("provider", v)
}

// Stage creates a field for the flow stage that failed or completed
// (initiate, csrf, exchange, userinfo).
func Stage(v string) zap.Field {
	return zap.String("stage", v)
}

// Standard fields: system.

// Component creates a field for the component/module.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Err creates a field for an error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// String creates a generic string field.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}

// Int creates a generic int field.
func Int(key string, v int) zap.Field {
	return zap.Int(key, v)
}
