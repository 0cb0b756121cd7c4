// Package store owns the flat-file collections: the read-only inventory and
// policy index loaded once at startup, and the append-only ticket ledger.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/ops-assistant/internal/domain"
)

// LoadInventory parses the inventory CSV at path. A missing file is a valid
// empty state, not an error. Rows with a non-numeric quantity are skipped
// with a warning.
func LoadInventory(path string, logger *zap.Logger) ([]domain.InventoryItem, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.InventoryItem{}, nil
		}
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []domain.InventoryItem{}, nil
		}
		return nil, fmt.Errorf("read inventory header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	items := []domain.InventoryItem{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read inventory row: %w", err)
		}
		quantity, err := strconv.Atoi(field(row, "quantity"))
		if err != nil {
			if logger != nil {
				logger.Warn("skipping inventory row with bad quantity",
					zap.String("item_id", field(row, "item_id")),
					zap.String("quantity", field(row, "quantity")))
			}
			continue
		}
		items = append(items, domain.InventoryItem{
			ItemID:      field(row, "item_id"),
			Name:        field(row, "name"),
			Category:    field(row, "category"),
			Quantity:    quantity,
			Location:    field(row, "location"),
			Status:      field(row, "status"),
			LastUpdated: field(row, "last_updated"),
		})
	}
	return items, nil
}
