package handler

type AcknowledgeRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}
