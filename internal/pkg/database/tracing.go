// Copyright 2025 healthproof
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const instrumentationName = "internal/pkg/database/tracing"

const spanKey = "tracing:span"

// GormTracingPlugin 给所有数据库操作挂 OpenTelemetry span
type GormTracingPlugin struct {
	tracer trace.Tracer
}

func NewGormTracingPlugin() *GormTracingPlugin {
	return &GormTracingPlugin{
		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
	}
}

func (p *GormTracingPlugin) Name() string {
	return "GormTracingPlugin"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").
		Register("tracing:before_query", p.beforeOp("SELECT")); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").
		Register("tracing:after_query", p.after); err != nil {
		return err
	}
	if err := db.Callback().Create().Before("gorm:create").
		Register("tracing:before_create", p.beforeOp("INSERT")); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").
		Register("tracing:after_create", p.after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").
		Register("tracing:before_update", p.beforeOp("UPDATE")); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").
		Register("tracing:after_update", p.after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").
		Register("tracing:before_delete", p.beforeOp("DELETE")); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").
		Register("tracing:after_delete", p.after); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").
		Register("tracing:before_raw", p.beforeOp("RAW")); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").
		Register("tracing:after_raw", p.after)
}

func (p *GormTracingPlugin) beforeOp(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		p.before(db, op)
	}
}

func (p *GormTracingPlugin) before(db *gorm.DB, op string) {
	ctx := context.Background()
	if db.Statement != nil {
		ctx = db.Statement.Context
	}
	spanName := op
	if db.Statement.Table != "" {
		spanName = fmt.Sprintf("%s %s", db.Statement.Table, op)
	}
	ctx, span := p.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient))
	db.Statement.Context = ctx
	db.Set(spanKey, span)
}

func (p *GormTracingPlugin) after(db *gorm.DB) {
	val, ok := db.Get(spanKey)
	if !ok {
		return
	}
	span, ok := val.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	attributes := []attribute.KeyValue{
		attribute.String("db.system", "mysql"),
		attribute.String("db.name", db.Dialector.Name()),
	}
	if db.Statement.Schema != nil {
		attributes = append(attributes, attribute.String("db.table", db.Statement.Schema.Table))
	} else if db.Statement.Table != "" {
		attributes = append(attributes, attribute.String("db.table", db.Statement.Table))
	}
	if sql := db.Statement.SQL.String(); sql != "" {
		attributes = append(attributes, attribute.String("db.statement", sql))
	}
	if db.Statement.RowsAffected > 0 {
		attributes = append(attributes, attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	span.SetAttributes(attributes...)

	// 没查到不算错
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
