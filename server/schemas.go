package server

// recommendRequest 是 /recommend 与 /recommend_with_mood 的请求体。
type recommendRequest struct {
	UserID string `json:"user_id" binding:"required"`
	TopK   int    `json:"top_k" binding:"omitempty,min=1,max=50"`

	// MoodText 只在 /recommend_with_mood 使用
	MoodText string `json:"mood_text"`

	City        string   `json:"city"`
	Tags        []string `json:"tags" binding:"omitempty,max=10"`
	Alpha       *float64 `json:"alpha" binding:"omitempty,gte=0,lte=1"`
	IncludeSeen bool     `json:"include_seen"`
	Interests   string   `json:"interests"`
}

// sentimentRequest 是 /sentiment 的请求体。
type sentimentRequest struct {
	Text string `json:"text" binding:"required"`
}

// interactionRequest 是 /log_interaction 的请求体。
type interactionRequest struct {
	UserID     string   `json:"user_id" binding:"required"`
	ActivityID string   `json:"activity_id" binding:"required"`
	Event      string   `json:"event" binding:"required"`
	Rating     *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

// retrainRequest 是 /admin/retrain_cf 的请求体。
type retrainRequest struct {
	NFactors int `json:"n_factors" binding:"required,min=2,max=512"`
}
