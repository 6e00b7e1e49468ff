package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newCapturedLogger() (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	return zap.New(core), &buf
}

func TestWithContextRoundTrip(t *testing.T) {
	log, buf := newCapturedLogger()
	ctx := WithContext(context.Background(), log)

	FromContext(ctx).Info("case created")

	assert.Contains(t, buf.String(), "case created")
}

func TestFromContext_Missing(t *testing.T) {
	log := FromContext(context.Background())

	// a bare context yields a no-op logger, never nil
	assert.NotNil(t, log)
	assert.NotPanics(t, func() {
		log.Info("document recorded")
	})
}

func TestRequestID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-42")
		assert.Equal(t, "req-42", GetRequestID(ctx))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
	})

	t.Run("latest value wins", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "first")
		ctx = WithRequestID(ctx, "second")
		assert.Equal(t, "second", GetRequestID(ctx))
	})
}

func TestL_InjectsRequestID(t *testing.T) {
	log, buf := newCapturedLogger()

	ctx := WithContext(context.Background(), log)
	ctx = WithRequestID(ctx, "req-7f3a")

	L(ctx).Info("case status transitioned", zap.String("new_status", "CREMATION"))

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-7f3a"`)
	assert.Contains(t, output, `"new_status":"CREMATION"`)
	assert.Contains(t, output, `"msg":"case status transitioned"`)
}

func TestL_NoRequestID(t *testing.T) {
	log, buf := newCapturedLogger()

	ctx := WithContext(context.Background(), log)
	L(ctx).Info("record number generated")

	output := buf.String()
	assert.Contains(t, output, `"msg":"record number generated"`)
	assert.NotContains(t, output, `"request_id"`)
}

func TestL_EmptyContext(t *testing.T) {
	cl := L(context.Background())

	assert.NotPanics(t, func() {
		cl.Debug("gate check detail")
		cl.Info("document confirmed")
		cl.Warn("upload still pending")
		cl.Error("transition rejected")
	})
}

func TestContextLogger_With(t *testing.T) {
	log, buf := newCapturedLogger()
	ctx := WithContext(context.Background(), log)

	L(ctx).
		With(zap.String("case_id", "b1de")).
		Info("audit entry written")

	output := buf.String()
	assert.Contains(t, output, `"case_id":"b1de"`)
	assert.Contains(t, output, `"msg":"audit entry written"`)
}

func TestContextLogger_Zap(t *testing.T) {
	log, buf := newCapturedLogger()
	ctx := WithRequestID(WithContext(context.Background(), log), "req-z")

	zl := L(ctx).Zap()
	zl.Info("handed to gorm adapter")

	assert.Contains(t, buf.String(), `"request_id":"req-z"`)
}
