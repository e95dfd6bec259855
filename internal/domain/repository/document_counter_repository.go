package repository

import "time"

// DocumentCounterRepository entrega consecutivos de documento por
// (prefijo, día). Next es atómico: dos llamadas concurrentes jamás
// devuelven el mismo valor (upsert-incremento a nivel de almacenamiento).
type DocumentCounterRepository interface {
	Next(prefix string, day time.Time) (int64, error)
}
