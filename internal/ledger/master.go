package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/ledger-insights/internal/models"
)

// Master data file names inside the data directory.
const (
	ProductsFile  = "products.yaml"
	CustomersFile = "customers.yaml"
	SuppliersFile = "suppliers.yaml"
	InvoicesFile  = "invoices.yaml"
	InventoryFile = "inventory.yaml"
)

// MasterData holds the reference entities the analysis resolves IDs against.
// Every collection is optional; an absent file simply yields no entities.
type MasterData struct {
	Products  []models.Product        `yaml:"products"`
	Customers []models.Customer       `yaml:"customers"`
	Suppliers []models.Supplier       `yaml:"suppliers"`
	Invoices  []models.Invoice        `yaml:"invoices"`
	Inventory []models.InventoryLevel `yaml:"inventory"`
}

// loadMasterData reads the master data YAML files from the data directory.
func loadMasterData(dir string) (*MasterData, error) {
	md := &MasterData{}

	if err := loadYAMLList(filepath.Join(dir, ProductsFile), "products", &md.Products); err != nil {
		return nil, err
	}
	if err := loadYAMLList(filepath.Join(dir, CustomersFile), "customers", &md.Customers); err != nil {
		return nil, err
	}
	if err := loadYAMLList(filepath.Join(dir, SuppliersFile), "suppliers", &md.Suppliers); err != nil {
		return nil, err
	}
	if err := loadYAMLList(filepath.Join(dir, InvoicesFile), "invoices", &md.Invoices); err != nil {
		return nil, err
	}
	if err := loadYAMLList(filepath.Join(dir, InventoryFile), "inventory", &md.Inventory); err != nil {
		return nil, err
	}

	return md, nil
}

// loadYAMLList reads a YAML file holding a single named list into out. The
// file may be absent. Both the wrapped form ("products: [...]") and a bare
// top-level list are accepted.
func loadYAMLList[T any](path, key string, out *[]T) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.WithField("file", path).Debug("Master data file not present, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	var wrapped map[string][]T
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped[key]) > 0 {
		*out = wrapped[key]
		return nil
	}

	var bare []T
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	*out = bare
	return nil
}
