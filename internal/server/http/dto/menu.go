package dto

import "github.com/tulamia/orderdesk/internal/domain/model"

// MenuItemResponse is one purchasable dish as served to the storefront.
type MenuItemResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Emoji       string   `json:"emoji,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// NewMenuItemResponse maps a catalog item, resolving the description for
// the requested locale.
func NewMenuItemResponse(item model.MenuItem, locale string) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description.Resolve(locale),
		Price:       item.Price,
		Emoji:       item.Emoji,
		Tags:        item.Tags,
	}
}

// UpsertMenuItemRequest is the admin payload for creating or replacing a
// catalog item. Description accepts either a plain string or a map of
// locale to text.
type UpsertMenuItemRequest struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description model.LocalizedText `json:"description"`
	Price       float64             `json:"price"`
	Emoji       string              `json:"emoji"`
	Tags        []string            `json:"tags"`
}

// Item converts the request into the domain shape.
func (r UpsertMenuItemRequest) Item() model.MenuItem {
	return model.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Emoji:       r.Emoji,
		Tags:        r.Tags,
		Active:      true,
	}
}
