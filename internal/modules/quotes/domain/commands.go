package domain

// AskCommand is the chat websocket payload for a conversational question.
type AskCommand struct {
	Question string `json:"question" validate:"required"`
}

// ResizeDiningRoomsCommand asks for the dining room list to be resized to Count.
type ResizeDiningRoomsCommand struct {
	Rooms []DiningRoom `json:"rooms" validate:"dive"`
	Count int          `json:"count" validate:"gte=0,lte=50"`
}

// EditCategoryPriceCommand edits one price of one meal category.
type EditCategoryPriceCommand struct {
	Categories []MealCategory `json:"categories" validate:"dive"`
	Name       string         `json:"name" validate:"required"`
	Field      string         `json:"field"`
	Price      float64        `json:"price" validate:"gte=0"`
}

// LaborCommand carries the labor section of the form.
type LaborCommand struct {
	Roles   []LaborRole  `json:"laborRoles" validate:"dive"`
	Apetito ApetitoLabor `json:"apetitoLabor"`
}
