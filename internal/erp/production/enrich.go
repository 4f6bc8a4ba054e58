package production

import (
	"time"

	"github.com/atelierlab/aurum/internal/erp/entity"
)

// RefData 加工视图所需的参照数据快照。由取数层构建，只读共享。
type RefData struct {
	Products  map[string]*entity.Product  // by SKU
	Materials map[string]*entity.Material // by ID
	Orders    map[string]*entity.Order    // by ID
}

// BuildRefData 把列表索引成查找表
func BuildRefData(products []entity.Product, materials []entity.Material, orders []entity.Order) RefData {
	refs := RefData{
		Products:  make(map[string]*entity.Product, len(products)),
		Materials: make(map[string]*entity.Material, len(materials)),
		Orders:    make(map[string]*entity.Order, len(orders)),
	}
	for i := range products {
		refs.Products[products[i].SKU] = &products[i]
	}
	for i := range materials {
		refs.Materials[materials[i].ID] = &materials[i]
	}
	for i := range orders {
		refs.Orders[orders[i].ID] = &orders[i]
	}
	return refs
}

// EnrichedBatch 批次加工视图。每次取数后重算，不落库。
type EnrichedBatch struct {
	entity.ProductionBatch
	Product         *entity.Product `json:"product_details,omitempty"`
	DiffHours       int             `json:"diff_hours"`
	IsDelayed       bool            `json:"is_delayed"`
	RequiresSetting bool            `json:"requires_setting"`
	CustomerName    string          `json:"customer_name,omitempty"`
}

// RequiresSetting 判断产品是否需要镶嵌工序：配方中任一原材料行项
// 对应的材料分类为 stone 即需要。产品缺失时默认不需要。
func RequiresSetting(p *entity.Product, materials map[string]*entity.Material) bool {
	if p == nil {
		return false
	}
	for _, item := range p.Recipe {
		if item.Type != entity.RecipeItemRaw {
			continue
		}
		mat, ok := materials[item.MaterialID]
		if ok && mat.Category == entity.MaterialCategoryStone {
			return true
		}
	}
	return false
}

// Enrich 计算单个批次的加工视图。参照数据缺失时降级为零值，
// 不中断整板渲染。
func Enrich(b entity.ProductionBatch, refs RefData, now time.Time) EnrichedBatch {
	eb := EnrichedBatch{ProductionBatch: b}

	eb.Product = refs.Products[b.SKU]
	eb.RequiresSetting = RequiresSetting(eb.Product, refs.Materials)

	eb.DiffHours = int(now.Sub(b.UpdatedAt).Hours())

	if b.CurrentStage != entity.StageReady {
		if threshold, ok := SLAHours(b.CurrentStage); ok {
			eb.IsDelayed = eb.DiffHours > threshold
		}
	}

	if b.OrderID != nil {
		if order, ok := refs.Orders[*b.OrderID]; ok {
			eb.CustomerName = order.CustomerName
		}
	}

	return eb
}

// EnrichAll 批量计算加工视图
func EnrichAll(batches []entity.ProductionBatch, refs RefData, now time.Time) []EnrichedBatch {
	out := make([]EnrichedBatch, 0, len(batches))
	for _, b := range batches {
		out = append(out, Enrich(b, refs, now))
	}
	return out
}
