package repository

import "math"

// PageSize es el tamaño fijo de página para todos los listados.
const PageSize = 10

// MaxPage es la última página cuyo offset entra en un int.
// Páginas mayores se recortan a MaxPage, que siempre queda vacía.
const MaxPage = Page(math.MaxInt / PageSize)

// Page es un número de página 1-based.
type Page int

// Normalize devuelve 1 para páginas no positivas y MaxPage para las que desbordarían el offset.
func (p Page) Normalize() Page {
	switch {
	case p < 1:
		return 1
	case p > MaxPage:
		return MaxPage
	}
	return p
}

// Offset es la cantidad de registros a saltar antes de la página. Nunca negativo.
func (p Page) Offset() int {
	return (int(p.Normalize()) - 1) * PageSize
}

// Limit es la cantidad máxima de registros de la página.
func (p Page) Limit() int { return PageSize }

// Slice recorta una secuencia ya ordenada a la ventana [offset, offset+PageSize).
// Usado por los adapters que filtran en memoria.
func Slice[T any](items []T, p Page) []T {
	off := p.Offset()
	if off < 0 || off >= len(items) {
		return []T{}
	}
	end := off + PageSize
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-off)
	copy(out, items[off:end])
	return out
}
