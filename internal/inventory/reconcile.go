// Package inventory merges raw stock lines into one row per distinct item.
package inventory

import "github.com/seaquill/ferrylink/internal/model"

// Reconcile folds duplicate-named raw lines into single rows: stock sums,
// reorder level takes the maximum, the unit comes from the first-seen line.
// Output keeps first-seen order so a refresh never shuffles the list under
// the user. Nil and unnamed lines are skipped and counted in the second
// return value; a bad line never halts rendering of the rest.
func Reconcile(items []*model.InventoryItem) ([]model.InventoryRow, int) {
	rows := make([]model.InventoryRow, 0, len(items))
	index := make(map[string]int, len(items))
	skipped := 0

	for _, it := range items {
		if it == nil || it.Name == "" {
			skipped++
			continue
		}
		i, ok := index[it.Name]
		if !ok {
			index[it.Name] = len(rows)
			rows = append(rows, model.InventoryRow{
				Name:         it.Name,
				Stock:        it.Stock,
				ReorderLevel: it.ReorderLevel,
				Unit:         it.Unit,
			})
			continue
		}
		rows[i].Stock += it.Stock
		if it.ReorderLevel > rows[i].ReorderLevel {
			rows[i].ReorderLevel = it.ReorderLevel
		}
	}

	for i := range rows {
		rows[i].Status = Classify(rows[i].Stock, rows[i].ReorderLevel)
	}
	return rows, skipped
}

// Classify orders its checks so zero stock with a zero reorder level reads
// as out of stock, not merely low.
func Classify(stock, reorderLevel float64) model.StockStatus {
	switch {
	case stock == 0:
		return model.OutOfStock
	case stock <= reorderLevel:
		return model.LowStock
	default:
		return model.InStock
	}
}
