package translations

import (
	"context"

	"menu-app/internal/domain/i18n"
	"menu-app/internal/translation"
)

// sourceFields returns the default-language text of every translatable field of one entity.
func (h *Handler) sourceFields(ctx context.Context, entityType, entityID string) (map[string]string, error) {
	switch entityType {
	case i18n.EntityCategory:
		cat, err := h.menu.GetCategory(ctx, nil, entityID)
		if err != nil {
			return nil, err
		}
		return map[string]string{i18n.FieldName: cat.Name, i18n.FieldDescription: cat.DescriptionText()}, nil
	case i18n.EntityMenuItem:
		item, err := h.menu.GetItem(ctx, nil, entityID)
		if err != nil {
			return nil, err
		}
		return map[string]string{i18n.FieldName: item.Name, i18n.FieldDescription: item.DescriptionText()}, nil
	case i18n.EntityRestaurantSettings:
		s, err := h.settings.Get(ctx, nil)
		if err != nil {
			return nil, err
		}
		if s.ID != entityID {
			return nil, &translation.ValidationError{Field: "entity_id", Reason: "unknown restaurant settings id"}
		}
		return map[string]string{i18n.FieldTagline: s.TaglineText(), i18n.FieldDescription: s.DescriptionText()}, nil
	}
	return nil, &translation.ValidationError{Field: "entity_type", Reason: "unknown entity type " + entityType}
}
