package db

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
)

const maxStatementLength = 512

type querySpanKey struct{}

// queryTracer records a Sentry child span for every statement executed while
// a transaction span is active on the context.
type queryTracer struct{}

func newQueryTracer() *queryTracer {
	return &queryTracer{}
}

func (queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if sentry.SpanFromContext(ctx) == nil {
		return ctx
	}

	statement := compactStatement(data.SQL)
	span := sentry.StartSpan(ctx, "db.sql.query",
		sentry.WithDescription(statement),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	span.SetData("db.system", "postgresql")
	if verb := statementVerb(statement); verb != "" {
		span.SetData("db.operation", verb)
	}
	if table := statementTable(statement); table != "" {
		span.SetData("db.sql.table", table)
	}

	return context.WithValue(span.Context(), querySpanKey{}, span)
}

func (queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(querySpanKey{}).(*sentry.Span)
	if !ok || span == nil {
		return
	}

	span.Status = sentry.SpanStatusOK
	if data.Err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("db.error", data.Err.Error())
	}
	if rows := data.CommandTag.RowsAffected(); rows >= 0 {
		span.SetData("db.rows_affected", rows)
	}
	span.Finish()
}

func compactStatement(sql string) string {
	compact := strings.Join(strings.Fields(sql), " ")
	if compact == "" {
		return "sql.query"
	}
	if len(compact) > maxStatementLength {
		return compact[:maxStatementLength]
	}
	return compact
}

func statementVerb(statement string) string {
	fields := strings.Fields(statement)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// statementTable returns the first table named after FROM, INTO or UPDATE.
func statementTable(statement string) string {
	fields := strings.Fields(statement)
	for i := 0; i < len(fields)-1; i++ {
		switch strings.ToUpper(fields[i]) {
		case "FROM", "INTO", "UPDATE":
			table := strings.Trim(fields[i+1], "(),;")
			if table != "" && !strings.HasPrefix(table, "$") && !strings.EqualFold(table, "SELECT") {
				return strings.ToLower(table)
			}
		}
	}
	return ""
}
