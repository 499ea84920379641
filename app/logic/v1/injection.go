package v1

import (
	"context"
)

const (
	LANGUAGE_KEY   = "__study.accept_language"
	REQUEST_ID_KEY = "__study.request_id"
)

func InjectLanguage(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(LANGUAGE_KEY).(string)
	return val, ok
}

func InjectRequestID(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(REQUEST_ID_KEY).(string)
	return val, ok
}
