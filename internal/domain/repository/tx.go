package repository

import "context"

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a ella.
// Es el único punto de escritura concurrente: cada adaptador serializa los escritores
// (bloqueo de fila en PostgreSQL, conexión única en SQLite, mutex en memoria).
type TxRunner interface {
	Run(ctx context.Context, fn func(products ProductRepository, sales SalesRepository) error) error
}
