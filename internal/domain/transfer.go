package domain

// StoreRef is the slim store identity embedded in a recommendation.
type StoreRef struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Type StoreType `json:"type"`
}

// Explanation carries the human-readable justification for one
// recommendation.
type Explanation struct {
	Summary string   `json:"summary"`
	Reasons []string `json:"reasons"`
	Score   int      `json:"score"`
}

// TransferRecommendation is an ephemeral engine output. TransferID is
// assigned sequentially within one engine run and is not stable across
// runs.
type TransferRecommendation struct {
	TransferID  string      `json:"transfer_id"`
	Source      StoreRef    `json:"source"`
	Target      StoreRef    `json:"target"`
	ProductID   int64       `json:"product_id"`
	Product     string      `json:"product"`
	Amount      int         `json:"amount"`
	Explanation Explanation `json:"xai_explanation"`
	Algorithm   string      `json:"algorithm"`
}

// TransferRequest is the payload to apply an accepted recommendation.
type TransferRequest struct {
	SourceStoreID int64 `json:"source_store_id" binding:"required"`
	TargetStoreID int64 `json:"target_store_id" binding:"required"`
	ProductID     int64 `json:"product_id" binding:"required"`
	Amount        int   `json:"amount" binding:"required"`
}

// RejectionRequest is the payload to decline a recommendation.
type RejectionRequest struct {
	SourceStoreID int64  `json:"source_store_id" binding:"required"`
	TargetStoreID int64  `json:"target_store_id" binding:"required"`
	ProductID     int64  `json:"product_id" binding:"required"`
	Reason        string `json:"reason"`
}
