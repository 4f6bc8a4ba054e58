package production

import (
	"sort"

	"github.com/atelierlab/aurum/internal/erp/entity"
)

// GenderUnknown 产品缺失或性别未知时的看板分组
const GenderUnknown = "unknown"

// DefaultCollection 产品未关联系列时的兜底分组
const DefaultCollection = "General"

// genderOrder 看板固定的性别列顺序
var genderOrder = []string{entity.GenderWomen, entity.GenderMen, entity.GenderUnisex, GenderUnknown}

// CollectionGroup 看板叶子分组：同系列的批次，按SKU排序
type CollectionGroup struct {
	Name    string          `json:"name"`
	Batches []EnrichedBatch `json:"batches"`
}

// GenderGroup 看板二级分组
type GenderGroup struct {
	Gender      string            `json:"gender"`
	Collections []CollectionGroup `json:"collections"`
}

// GroupForBoard 把某道工序上的批次投影成 性别→系列→批次 的看板结构。
// 纯推导，结果确定：性别顺序固定，系列按名称排序，批次按SKU+变体排序。
func GroupForBoard(batches []EnrichedBatch, stage entity.Stage, collectionNames map[int64]string) []GenderGroup {
	byGender := make(map[string]map[string][]EnrichedBatch)

	for _, b := range batches {
		if b.CurrentStage != stage {
			continue
		}

		// 枚举之外的性别值一律归入 unknown，批次不得从看板消失
		gender := GenderUnknown
		if b.Product != nil {
			switch b.Product.Gender {
			case entity.GenderWomen, entity.GenderMen, entity.GenderUnisex:
				gender = b.Product.Gender
			}
		}

		collection := DefaultCollection
		if b.Product != nil && len(b.Product.Collections) > 0 {
			if name, ok := collectionNames[b.Product.Collections[0]]; ok {
				collection = name
			}
		}

		if byGender[gender] == nil {
			byGender[gender] = make(map[string][]EnrichedBatch)
		}
		byGender[gender][collection] = append(byGender[gender][collection], b)
	}

	var groups []GenderGroup
	for _, gender := range genderOrder {
		byCollection, ok := byGender[gender]
		if !ok {
			continue
		}

		names := make([]string, 0, len(byCollection))
		for name := range byCollection {
			names = append(names, name)
		}
		sort.Strings(names)

		group := GenderGroup{Gender: gender}
		for _, name := range names {
			items := byCollection[name]
			sort.Slice(items, func(i, j int) bool {
				return items[i].SKU+items[i].VariantSuffix < items[j].SKU+items[j].VariantSuffix
			})
			group.Collections = append(group.Collections, CollectionGroup{Name: name, Batches: items})
		}
		groups = append(groups, group)
	}
	return groups
}
