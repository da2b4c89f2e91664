package business

import (
	"github.com/Legend-Systems/service-media/service/types"
)

// VariantSpec is one derivative the planner decided to produce.
type VariantSpec struct {
	Kind types.VariantKind
	Box  types.BoundingBox
}

// variantOrder fixes the generation order, smallest first so the
// cheapest derivative survives an interrupted upload.
var variantOrder = []types.VariantKind{
	types.VariantThumbnail,
	types.VariantMedium,
	types.VariantLarge,
}

// PlanVariants decides which derivatives to produce for an upload.
// Only images get variants. When no explicit set is requested the
// default is a thumbnail, and requests are capped to the known
// derivable kinds, anything else is silently dropped.
func PlanVariants(kind types.MediaKind, generate bool, requested []types.VariantKind) []VariantSpec {
	if kind != types.KindImage || !generate {
		return nil
	}

	if len(requested) == 0 {
		requested = []types.VariantKind{types.VariantThumbnail}
	}

	wanted := make(map[types.VariantKind]bool, len(requested))
	for _, vk := range requested {
		if _, ok := types.VariantBounds[vk]; ok {
			wanted[vk] = true
		}
	}

	plan := make([]VariantSpec, 0, len(wanted))
	for _, vk := range variantOrder {
		if wanted[vk] {
			plan = append(plan, VariantSpec{Kind: vk, Box: types.VariantBounds[vk]})
		}
	}

	return plan
}
