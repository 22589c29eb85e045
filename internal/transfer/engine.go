// Package transfer implements the inter-store stock rebalancing engine.
// It matches shortage stores with surplus donors using a hierarchy-first
// nearest-donor search and explains every suggestion in natural language.
package transfer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/geo"
)

const (
	// DefaultMaxTruckCapacity caps a single shipment when the caller does
	// not configure one.
	DefaultMaxTruckCapacity = 50

	// Algorithm tags the engine version on every recommendation.
	Algorithm = "Hierarchical-XAI v1.0"

	transferIDBase = 100

	// Retail stores only donate above a double safety buffer. Warehouses
	// give everything down to their safety floor.
	storeDonorBuffer = 2
)

// ErrInvalidCapacity indicates a caller bug, not a data condition.
var ErrInvalidCapacity = errors.New("transfer: max truck capacity must not be negative")

// searchOrder is the donor hierarchy: depots are exhausted before peer
// retail stores, regardless of distance.
var searchOrder = [...]domain.StoreType{
	domain.StoreTypeHub,
	domain.StoreTypeCenter,
	domain.StoreTypeStore,
}

type receiver struct {
	store       *domain.Store
	productID   int64
	productName string
	shortage    int
	priority    float64
	quantity    int
	safetyStock int
}

type giver struct {
	store        *domain.Store
	productID    int64
	excess       int
	currentStock int
}

// Recommend computes transfer suggestions over a fresh inventory snapshot.
// A zero maxTruckCapacity falls back to DefaultMaxTruckCapacity; a
// negative one fails fast. Output is deterministic for identical input.
func Recommend(stores []domain.Store, maxTruckCapacity int) ([]domain.TransferRecommendation, error) {
	if maxTruckCapacity < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, maxTruckCapacity)
	}
	if maxTruckCapacity == 0 {
		maxTruckCapacity = DefaultMaxTruckCapacity
	}

	receivers, givers := buildPools(stores)

	// Most urgent shortages are served first. Stable sort keeps input
	// iteration order on ties.
	sort.SliceStable(receivers, func(i, j int) bool {
		return receivers[i].priority > receivers[j].priority
	})

	recommendations := make([]domain.TransferRecommendation, 0, len(receivers))
	transferID := transferIDBase

	for i := range receivers {
		req := &receivers[i]

		source, dist := findDonor(req, givers)
		if source == nil {
			// No feasible donor anywhere: a normal outcome, not an error.
			continue
		}

		amount := minInt(req.shortage, source.excess, maxTruckCapacity)

		// Spend the donor's working excess so the same units are not
		// promised to a later receiver in this run.
		source.excess -= amount

		recommendations = append(recommendations, domain.TransferRecommendation{
			TransferID: fmt.Sprintf("TRF-%d", transferID),
			Source: domain.StoreRef{
				ID:   source.store.ID,
				Name: source.store.Name,
				Type: source.store.StoreType,
			},
			Target: domain.StoreRef{
				ID:   req.store.ID,
				Name: req.store.Name,
				Type: req.store.StoreType,
			},
			ProductID: req.productID,
			Product:   req.productName,
			Amount:    amount,
			Explanation: domain.Explanation{
				Summary: fmt.Sprintf("%s → %s", source.store.Name, req.store.Name),
				Reasons: explain(req, source, dist),
				Score:   score(req.priority),
			},
			Algorithm: Algorithm,
		})
		transferID++
	}

	return recommendations, nil
}

// buildPools scans every (store, line) pair once and splits it into
// receiver candidates and type-bucketed giver pools.
func buildPools(stores []domain.Store) ([]receiver, map[domain.StoreType][]*giver) {
	var receivers []receiver
	givers := map[domain.StoreType][]*giver{
		domain.StoreTypeHub:    {},
		domain.StoreTypeCenter: {},
		domain.StoreTypeStore:  {},
	}

	for i := range stores {
		store := &stores[i]
		if !hasCoordinate(store) {
			// Without a coordinate the store cannot take part in the
			// distance comparison on either side.
			continue
		}

		for _, line := range store.Inventory {
			switch {
			case line.Quantity < line.SafetyStock:
				priority := 1.0
				if line.SafetyStock > 0 {
					priority = 1 - float64(line.Quantity)/float64(line.SafetyStock)
				}
				receivers = append(receivers, receiver{
					store:       store,
					productID:   line.ProductID,
					productName: line.ProductName,
					shortage:    line.SafetyStock - line.Quantity,
					priority:    priority,
					quantity:    line.Quantity,
					safetyStock: line.SafetyStock,
				})

			case line.Quantity > line.SafetyStock:
				excess := 0
				switch store.StoreType {
				case domain.StoreTypeHub, domain.StoreTypeCenter:
					excess = line.Quantity - line.SafetyStock
				case domain.StoreTypeStore:
					if line.Quantity > line.SafetyStock*storeDonorBuffer {
						excess = line.Quantity - line.SafetyStock*storeDonorBuffer
					}
				}
				if excess > 0 {
					givers[store.StoreType] = append(givers[store.StoreType], &giver{
						store:        store,
						productID:    line.ProductID,
						excess:       excess,
						currentStock: line.Quantity,
					})
				}
			}
		}
	}

	return receivers, givers
}

// findDonor walks the type hierarchy and returns the nearest donor from
// the first pool that has any match. An empty type pool falls through;
// once a pool matches, closer donors of later types are never considered.
func findDonor(req *receiver, givers map[domain.StoreType][]*giver) (*giver, float64) {
	for _, sourceType := range searchOrder {
		var best *giver
		minDist := math.Inf(1)

		for _, g := range givers[sourceType] {
			if g.productID != req.productID || g.excess <= 0 {
				continue
			}
			dist := geo.HaversineKm(req.store.Lat, req.store.Lon, g.store.Lat, g.store.Lon)
			if dist < minDist {
				minDist = dist
				best = g
			}
		}

		if best != nil {
			return best, minDist
		}
	}
	return nil, 0
}

// explain builds the ordered reason list: why the target, why the source,
// and the logistics check.
func explain(req *receiver, source *giver, dist float64) []string {
	stockRatio := 0
	if req.safetyStock > 0 {
		stockRatio = int(float64(req.quantity) / float64(req.safetyStock) * 100)
	}

	reasons := []string{
		fmt.Sprintf("Stock at %s is critically low (%d%% of safety stock).", req.store.Name, stockRatio),
	}

	switch source.store.StoreType {
	case domain.StoreTypeHub:
		reasons = append(reasons, fmt.Sprintf("Priority rule: nearest HUB (%s) preferred.", source.store.Name))
	case domain.StoreTypeCenter:
		reasons = append(reasons, "Priority rule: no regional stock available, central warehouse stepped in.")
	default:
		reasons = append(reasons, fmt.Sprintf("Efficiency: idle stock (%d units) detected at %s.", source.currentStock, source.store.Name))
	}

	reasons = append(reasons, fmt.Sprintf("Logistics: distance %.1f km (acceptable).", dist))
	return reasons
}

// score maps urgency priority to 0-100. Negative on-hand quantities can
// push the raw priority above 1, so the score is capped.
func score(priority float64) int {
	s := int(math.Round(priority * 100))
	if s > 100 {
		return 100
	}
	if s < 0 {
		return 0
	}
	return s
}

func hasCoordinate(store *domain.Store) bool {
	return !math.IsNaN(store.Lat) && !math.IsInf(store.Lat, 0) &&
		!math.IsNaN(store.Lon) && !math.IsInf(store.Lon, 0)
}

func minInt(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
