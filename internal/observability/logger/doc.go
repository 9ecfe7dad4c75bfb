// Package logger provee un logger Zap singleton con scoping por contexto.
//
//   - Singleton: una sola instancia global inicializada con Init().
//   - Context Scoping: cada request lleva su logger con request_id, method, path
//     y el email del administrador autenticado.
//   - Environments: "dev" usa consola con colores, "prod" usa JSON.
//
// Inicialización (una vez en main.go):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
// En handlers/services:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("fleet"))
//	log.Info("vehicle created", logger.VehicleID(v.ID))
package logger
