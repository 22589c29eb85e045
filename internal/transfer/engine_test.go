package transfer

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/retailpulse/backend/internal/domain"
)

func store(id int64, name string, t domain.StoreType, lat, lon float64, lines ...domain.InventoryLine) domain.Store {
	return domain.Store{ID: id, Name: name, StoreType: t, Lat: lat, Lon: lon, Inventory: lines}
}

func item(productID int64, name string, qty, safety int) domain.InventoryLine {
	return domain.InventoryLine{ProductID: productID, ProductName: name, Quantity: qty, SafetyStock: safety}
}

func TestRecommend_HubToStore(t *testing.T) {
	stores := []domain.Store{
		store(1, "Kadikoy", domain.StoreTypeStore, 40.99, 29.03, item(7, "Espresso Beans", 2, 10)),
		// ~5 km north of the store
		store(2, "Anadolu Hub", domain.StoreTypeHub, 41.035, 29.03, item(7, "Espresso Beans", 100, 20)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}

	rec := recs[0]
	if rec.Source.ID != 2 || rec.Target.ID != 1 {
		t.Errorf("route = %d→%d, want 2→1", rec.Source.ID, rec.Target.ID)
	}
	if rec.Amount != 8 {
		t.Errorf("amount = %d, want min(8, 80, 50) = 8", rec.Amount)
	}
	if rec.Explanation.Score != 80 {
		t.Errorf("score = %d, want 80", rec.Explanation.Score)
	}
	if rec.TransferID != "TRF-100" {
		t.Errorf("transfer id = %s, want TRF-100", rec.TransferID)
	}
	if rec.Algorithm != Algorithm {
		t.Errorf("algorithm = %s, want %s", rec.Algorithm, Algorithm)
	}
	if len(rec.Explanation.Reasons) != 3 {
		t.Errorf("reasons = %v, want 3 entries", rec.Explanation.Reasons)
	}
	if rec.Explanation.Summary != "Anadolu Hub → Kadikoy" {
		t.Errorf("summary = %q", rec.Explanation.Summary)
	}
}

func TestRecommend_TruckCapacityCapsAmount(t *testing.T) {
	stores := []domain.Store{
		store(1, "Outlet", domain.StoreTypeStore, 41.0, 29.0, item(3, "Cola", 0, 200)),
		store(2, "Hub", domain.StoreTypeHub, 41.1, 29.0, item(3, "Cola", 500, 20)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 1 || recs[0].Amount != 50 {
		t.Fatalf("amount capped = %v, want single transfer of 50", recs)
	}
}

func TestRecommend_StoreDonorKeepsDoubleBuffer(t *testing.T) {
	stores := []domain.Store{
		store(1, "Needy", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", 1, 10)),
		// No HUB or CENTER stocks the product: hierarchy falls through to
		// a peer store, which only gives above twice its safety stock.
		store(2, "Peer", domain.StoreTypeStore, 41.1, 29.0, item(5, "Shampoo", 30, 10)),
		store(3, "Hub", domain.StoreTypeHub, 41.05, 29.0, item(9, "Other", 100, 10)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}

	rec := recs[0]
	if rec.Source.Type != domain.StoreTypeStore {
		t.Errorf("source type = %s, want STORE", rec.Source.Type)
	}
	// Donor excess is 30 - 2*10 = 10, not 30 - 10 = 20. Shortage is 9.
	if rec.Amount != 9 {
		t.Errorf("amount = %d, want 9", rec.Amount)
	}
}

func TestRecommend_HierarchyBeatsDistance(t *testing.T) {
	stores := []domain.Store{
		store(1, "Needy", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", 1, 10)),
		// Peer store right next door with plenty of excess.
		store(2, "Neighbor", domain.StoreTypeStore, 41.001, 29.0, item(5, "Shampoo", 100, 10)),
		// Hub far away still wins the search.
		store(3, "Far Hub", domain.StoreTypeHub, 39.0, 35.0, item(5, "Shampoo", 100, 20)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Source.ID != 3 {
		t.Errorf("source = %d, want the far hub (3) over the near peer", recs[0].Source.ID)
	}
}

func TestRecommend_NearestDonorWithinType(t *testing.T) {
	stores := []domain.Store{
		store(1, "Needy", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", 1, 10)),
		store(2, "Far Hub", domain.StoreTypeHub, 38.42, 27.14, item(5, "Shampoo", 100, 20)),
		store(3, "Near Hub", domain.StoreTypeHub, 41.05, 29.0, item(5, "Shampoo", 100, 20)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 1 || recs[0].Source.ID != 3 {
		t.Fatalf("recs = %v, want single transfer from near hub 3", recs)
	}
}

func TestRecommend_NoDonorDoubleSpend(t *testing.T) {
	stores := []domain.Store{
		// Priority 1.0: empty shelf.
		store(1, "Urgent", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", 0, 40)),
		// Priority 0.5.
		store(2, "Less Urgent", domain.StoreTypeStore, 41.2, 29.0, item(5, "Shampoo", 20, 40)),
		// Single donor with 30 excess in total.
		store(3, "Hub", domain.StoreTypeHub, 41.1, 29.0, item(5, "Shampoo", 50, 20)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	// The urgent receiver drains the donor completely; the second receiver
	// finds no remaining excess and is left unserved.
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Target.ID != 1 || recs[0].Amount != 30 {
		t.Errorf("got target %d amount %d, want target 1 amount 30", recs[0].Target.ID, recs[0].Amount)
	}
}

func TestRecommend_SpentDonorServesNothingMore(t *testing.T) {
	stores := []domain.Store{
		store(1, "Urgent", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", 0, 20)),
		store(2, "Second", domain.StoreTypeStore, 41.2, 29.0, item(5, "Shampoo", 5, 20)),
		// 25 excess: first takes 20, second gets only the remaining 5.
		store(3, "Hub", domain.StoreTypeHub, 41.1, 29.0, item(5, "Shampoo", 45, 20)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Amount != 20 {
		t.Errorf("first amount = %d, want 20", recs[0].Amount)
	}
	if recs[1].Amount != 5 {
		t.Errorf("second amount = %d, want remaining 5", recs[1].Amount)
	}
	if recs[1].TransferID != "TRF-101" {
		t.Errorf("second id = %s, want TRF-101", recs[1].TransferID)
	}
}

func TestRecommend_NoFeasibleDonor(t *testing.T) {
	stores := []domain.Store{
		store(1, "Needy", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", 1, 10)),
		store(2, "Hub", domain.StoreTypeHub, 41.1, 29.0, item(9, "Other", 100, 10)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want none", len(recs))
	}
}

func TestRecommend_SkipsStoreWithoutCoordinate(t *testing.T) {
	stores := []domain.Store{
		store(1, "Needy", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", 1, 10)),
		store(2, "Broken Hub", domain.StoreTypeHub, math.NaN(), 29.0, item(5, "Shampoo", 100, 20)),
		store(3, "Good Hub", domain.StoreTypeHub, 41.1, 29.0, item(5, "Shampoo", 100, 20)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 1 || recs[0].Source.ID != 3 {
		t.Fatalf("recs = %v, want single transfer from hub 3", recs)
	}
}

func TestRecommend_ZeroSafetyStockShortage(t *testing.T) {
	stores := []domain.Store{
		// Negative on-hand with zero target: maximal urgency, no division
		// by zero.
		store(1, "Odd", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", -3, 0)),
		store(2, "Hub", domain.StoreTypeHub, 41.1, 29.0, item(5, "Shampoo", 100, 20)),
	}

	recs, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Explanation.Score != 100 {
		t.Errorf("score = %d, want 100", recs[0].Explanation.Score)
	}
	if recs[0].Amount != 3 {
		t.Errorf("amount = %d, want shortage of 3", recs[0].Amount)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	stores := []domain.Store{
		store(1, "A", domain.StoreTypeStore, 41.0, 29.0, item(5, "Shampoo", 1, 10), item(6, "Soap", 3, 12)),
		store(2, "B", domain.StoreTypeStore, 40.9, 29.1, item(5, "Shampoo", 4, 10)),
		store(3, "Hub", domain.StoreTypeHub, 41.1, 29.0, item(5, "Shampoo", 80, 20), item(6, "Soap", 60, 10)),
		store(4, "Center", domain.StoreTypeCenter, 41.2, 28.9, item(5, "Shampoo", 300, 50)),
	}

	first, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	second, err := Recommend(stores, 50)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("output not reproducible:\n%s\nvs\n%s", a, b)
	}
}

func TestRecommend_NegativeCapacity(t *testing.T) {
	_, err := Recommend(nil, -1)
	if !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("err = %v, want ErrInvalidCapacity", err)
	}
}

func TestRecommend_ZeroCapacityUsesDefault(t *testing.T) {
	stores := []domain.Store{
		store(1, "Outlet", domain.StoreTypeStore, 41.0, 29.0, item(3, "Cola", 0, 200)),
		store(2, "Hub", domain.StoreTypeHub, 41.1, 29.0, item(3, "Cola", 500, 20)),
	}

	recs, err := Recommend(stores, 0)
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if len(recs) != 1 || recs[0].Amount != DefaultMaxTruckCapacity {
		t.Fatalf("recs = %v, want single transfer of %d", recs, DefaultMaxTruckCapacity)
	}
}
