package app

import (
	"github.com/uniedit/orderflow/internal/infra/config"
)

// LoadConfig loads configuration from file, or from the default search paths
// and ORDERFLOW_* environment when file is empty.
func LoadConfig(file string) (*config.Config, error) {
	return config.LoadFrom(file)
}
