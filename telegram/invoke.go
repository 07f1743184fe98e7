package telegram

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gramkit/gram/bin"
)

// Invoke invokes raw MTProto RPC method. It sends input and decodes
// result into output.
func (c *Client) Invoke(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
	if c.tracer != nil {
		spanName := "Invoke"
		var attrs []attribute.KeyValue
		if t, ok := input.(interface{ TypeID() uint32 }); ok {
			id := t.TypeID()
			attrs = append(attrs,
				attribute.Int64("tg.method.id_int", int64(id)),
				attribute.String("tg.method.id", fmt.Sprintf("%x", id)),
			)
			name := c.types.Get(id)
			if name == "" {
				name = fmt.Sprintf("0x%x", id)
			} else {
				attrs = append(attrs, attribute.String("tg.method.name", name))
			}
			spanName = fmt.Sprintf("Invoke: %s", name)
		}
		spanCtx, span := c.tracer.Start(ctx, spanName,
			trace.WithAttributes(attrs...),
			trace.WithSpanKind(trace.SpanKindClient),
		)
		ctx = spanCtx
		defer span.End()
	}

	return c.invokeConn(ctx, input, output)
}

// invokeConn invokes the call on the current connection. Calls marked
// idempotent are replayed on a fresh connection after a connection
// loss, others fail with ErrConnectionLost.
func (c *Client) invokeConn(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
	for {
		conn, err := c.waitConn(ctx)
		if err != nil {
			return err
		}

		err = conn.Invoke(ctx, input, output)
		if err == nil || !isConnectionLost(err) {
			return err
		}
		if !isIdempotent(ctx) {
			return multierr.Append(ErrConnectionLost, err)
		}
		c.log.Debug("Replaying idempotent call after connection loss",
			zap.Error(err),
		)
	}
}
