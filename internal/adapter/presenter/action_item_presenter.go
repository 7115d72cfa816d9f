package presenter

import (
	actionItemDTO "github.com/meetscribe-team/meetscribe/internal/adapter/dto/actionitem"
	"github.com/meetscribe-team/meetscribe/internal/domain/entities"
)

// ToActionItemResponse converts an ActionItem entity to its DTO
func ToActionItemResponse(item *entities.ActionItem) *actionItemDTO.ActionItemResponse {
	if item == nil {
		return nil
	}
	return &actionItemDTO.ActionItemResponse{
		ID:          item.ID.String(),
		MeetingID:   item.MeetingID.String(),
		Description: item.Description,
		Assignee:    item.Assignee,
		DueDate:     item.DueDate,
		Completed:   item.Completed,
		CreatedAt:   item.CreatedAt,
	}
}

// ToActionItemList converts a slice of action items
func ToActionItemList(items []*entities.ActionItem) []*actionItemDTO.ActionItemResponse {
	out := make([]*actionItemDTO.ActionItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToActionItemResponse(item))
	}
	return out
}
