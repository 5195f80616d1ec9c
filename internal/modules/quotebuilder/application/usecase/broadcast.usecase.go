package usecase

import (
	"context"

	"mealQuote/internal/modules/quotebuilder/application/port"
	"mealQuote/internal/modules/quotebuilder/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	uc.broadcaster.Broadcast(ctx, msg)
}
