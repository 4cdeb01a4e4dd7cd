package block_date

// BlockDateRequest HTTP request model. Тело может отсутствовать
type BlockDateRequest struct {
	Reason *string `json:"reason,omitempty"`
}
