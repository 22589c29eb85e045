package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

type demoStore struct {
	name      string
	storeType string
	lat, lon  float64
}

type demoProduct struct {
	name  string
	cost  string
	price string
}

var demoStores = []demoStore{
	{"Istanbul Center", "CENTER", 41.015, 28.979},
	{"Anadolu Hub", "HUB", 41.035, 29.030},
	{"Avrupa Hub", "HUB", 41.043, 28.920},
	{"Kadikoy", "STORE", 40.990, 29.030},
	{"Besiktas", "STORE", 41.042, 29.008},
	{"Bakirkoy", "STORE", 40.980, 28.874},
}

var demoProducts = []demoProduct{
	{"Espresso Beans", "62.50", "120.00"},
	{"Filter Coffee", "40.00", "85.00"},
	{"Oat Milk", "18.00", "42.50"},
	{"Ceramic Mug", "55.00", "149.90"},
}

func seedDemo(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	storeIDs := make([]int64, 0, len(demoStores))
	for _, s := range demoStores {
		var id int64
		err := db.QueryRowContext(c.Context, `
			INSERT INTO stores (name, store_type, lat, lon, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			ON CONFLICT (name) DO UPDATE SET store_type = EXCLUDED.store_type
			RETURNING id
		`, s.name, s.storeType, s.lat, s.lon).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed store %s: %w", s.name, err)
		}
		storeIDs = append(storeIDs, id)
	}

	productIDs := make([]int64, 0, len(demoProducts))
	for _, p := range demoProducts {
		var id int64
		err := db.QueryRowContext(c.Context, `
			INSERT INTO products (name, cost, price, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price
			RETURNING id
		`, p.name, p.cost, p.price).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.name, err)
		}
		productIDs = append(productIDs, id)
	}

	// Hubs and the center hold deep stock; leaf stores start near their
	// safety floor so the first recommendation run has work to do.
	for i, storeID := range storeIDs {
		for _, productID := range productIDs {
			quantity, safety := 8, 10
			switch demoStores[i].storeType {
			case "CENTER":
				quantity, safety = 500, 50
			case "HUB":
				quantity, safety = 150, 20
			}

			_, err := db.ExecContext(c.Context, `
				INSERT INTO inventories (store_id, product_id, quantity, safety_stock, created_at, updated_at)
				VALUES ($1, $2, $3, $4, NOW(), NOW())
				ON CONFLICT (store_id, product_id) DO UPDATE
				SET quantity = EXCLUDED.quantity, safety_stock = EXCLUDED.safety_stock
			`, storeID, productID, quantity, safety)
			if err != nil {
				return fmt.Errorf("seed inventory for store %d: %w", storeID, err)
			}
		}
	}

	log.Printf("seeded %d stores, %d products", len(storeIDs), len(productIDs))
	return nil
}

// seedSales loads historical sales from a CSV with columns
// store_id,product,quantity,date so forecasts have a history to fit.
func seedSales(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("open sales file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(strings.ToLower(col))] = i
	}
	for _, col := range []string{"store_id", "product", "quantity", "date"} {
		if _, ok := colMap[col]; !ok {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read csv record: %w", err)
		}

		storeID, err := strconv.ParseInt(record[colMap["store_id"]], 10, 64)
		if err != nil {
			return fmt.Errorf("row %d: invalid store_id", rows+1)
		}
		quantity, err := strconv.Atoi(record[colMap["quantity"]])
		if err != nil {
			return fmt.Errorf("row %d: invalid quantity", rows+1)
		}
		date, err := time.Parse("2006-01-02", record[colMap["date"]])
		if err != nil {
			return fmt.Errorf("row %d: invalid date", rows+1)
		}

		var productID int64
		var price string
		err = db.QueryRowContext(c.Context,
			`SELECT id, price FROM products WHERE name = $1`,
			strings.TrimSpace(record[colMap["product"]])).Scan(&productID, &price)
		if err == sql.ErrNoRows {
			return fmt.Errorf("row %d: unknown product %q", rows+1, record[colMap["product"]])
		}
		if err != nil {
			return fmt.Errorf("row %d: lookup product: %w", rows+1, err)
		}

		_, err = db.ExecContext(c.Context, `
			INSERT INTO sales (store_id, product_id, customer_id, date, quantity, total_price, created_at)
			VALUES ($1, $2, 0, $3, $4, $5::numeric * $4, NOW())
		`, storeID, productID, date, quantity, price)
		if err != nil {
			return fmt.Errorf("row %d: insert sale: %w", rows+1, err)
		}
		rows++
	}

	log.Printf("loaded %d sale rows", rows)
	return nil
}
