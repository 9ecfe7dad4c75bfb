package logger

import (
	"go.uber.org/zap"

	"github.com/dropDatabas3/minimalapi/internal/util"
)

// Field es un campo estructurado de log.
type Field = zap.Field

// ─── HTTP ───

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }
func Route(v string) zap.Field     { return zap.String("route", v) }

// ─── Negocio ───

// Email del administrador (usar con cuidado en prod).
func Email(v string) zap.Field { return zap.String("email", v) }

// MaskedEmail para emails no autenticados (login fallido, duplicados).
func MaskedEmail(v string) zap.Field { return zap.String("email", util.MaskEmail(v)) }

func Role(v string) zap.Field      { return zap.String("role", v) }
func AdminID(v int64) zap.Field    { return zap.Int64("admin_id", v) }
func VehicleID(v int64) zap.Field  { return zap.Int64("vehicle_id", v) }
func Page(v int) zap.Field         { return zap.Int("page", v) }
func Operation(v string) zap.Field { return zap.String("operation", v) }
func Decision(v string) zap.Field  { return zap.String("decision", v) }

// ─── Sistema ───

// Component identifica el módulo (account, fleet, store.sqlite...).
func Component(v string) zap.Field { return zap.String("component", v) }

// Op es la operación actual dentro del componente.
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer: handler, service, repository.
func Layer(v string) zap.Field { return zap.String("layer", v) }

func Err(err error) zap.Field { return zap.Error(err) }

// ─── Genéricos ───

func Count(v int) zap.Field             { return zap.Int("count", v) }
func String(key, v string) zap.Field    { return zap.String(key, v) }
func Int(key string, v int) zap.Field   { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field   { return zap.Any(key, v) }
