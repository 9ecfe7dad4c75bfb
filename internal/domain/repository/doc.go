// Package repository define las interfaces de repositorio de dominio.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente (memoria, SQLite, PostgreSQL vía pgx o GORM).
//
// Las implementaciones concretas viven en internal/store/adapters/.
//
//	┌──────────────────────────────────────────────────┐
//	│      Services (account, fleet) / Controllers     │
//	└──────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌──────────────────────────────────────────────────┐
//	│          domain/repository (interfaces)          │
//	│  AdministratorRepository, VehicleRepository      │
//	└──────────────────────────────────────────────────┘
//	                        │
//	   ┌──────────────┬─────┴────────┬──────────────┐
//	   ▼              ▼              ▼              ▼
//	 memory         sqlite          pg           gormpg
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Los filtros y la paginación se resuelven en el almacenamiento
//   - Errores de dominio están en errors.go
package repository
