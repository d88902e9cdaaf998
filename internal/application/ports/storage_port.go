package ports

import "context"

// ImageStorage define el puerto de salida para el almacenamiento de imágenes de productos.
// El adaptador (Supabase Storage, disco, mock) devuelve la URL pública del objeto subido.
type ImageStorage interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}
