// Package dal importa todos los adapters para auto-registro.
// Importar este paquete en main.go para habilitar todos los drivers.
//
// Uso:
//
//	import _ "github.com/dropDatabas3/minimalapi/internal/store/adapters/dal"
package dal

import (
	_ "github.com/dropDatabas3/minimalapi/internal/store/adapters/gormpg"
	_ "github.com/dropDatabas3/minimalapi/internal/store/adapters/memory"
	_ "github.com/dropDatabas3/minimalapi/internal/store/adapters/pg"
	_ "github.com/dropDatabas3/minimalapi/internal/store/adapters/sqlite"
)
