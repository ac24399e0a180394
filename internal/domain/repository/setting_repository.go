package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// SettingRepository define el puerto del almacén clave/valor de configuración.
type SettingRepository interface {
	Get(key string) (*entity.Setting, error)
	Set(key, value, category string) (*entity.Setting, error)
	List() ([]*entity.Setting, error)
}
