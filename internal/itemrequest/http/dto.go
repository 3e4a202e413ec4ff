package http

import (
	"time"

	"github.com/Raf4ok0/shareit/internal/item"
	"github.com/Raf4ok0/shareit/internal/itemrequest"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type AnswerTag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId"`
}

func newAnswerTag(it *item.Item) AnswerTag {
	return AnswerTag{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
	}
}

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func NewRequestResponse(req *itemrequest.ItemRequest) RequestResponse {
	return RequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
	}
}

type RequestWithAnswersResponse struct {
	RequestResponse
	Items []AnswerTag `json:"items"`
}

func NewRequestWithAnswersResponse(view *itemrequest.WithAnswers) RequestWithAnswersResponse {
	items := make([]AnswerTag, len(view.Items))
	for i, it := range view.Items {
		items[i] = newAnswerTag(it)
	}
	return RequestWithAnswersResponse{
		RequestResponse: NewRequestResponse(view.Request),
		Items:           items,
	}
}
