// Package production 是生产看板的纯领域核心：工序拓扑、批次加工视图、
// 看板分组投影。不依赖存储层，所有函数均为纯推导。
package production

import (
	"github.com/atelierlab/aurum/internal/erp/entity"
)

// Stages 流水线固定顺序。AwaitingDelivery 仅用于外购件收货，
// Ready 为终态。
var Stages = []entity.Stage{
	entity.StageAwaitingDelivery,
	entity.StageWaxing,
	entity.StageCasting,
	entity.StageSetting,
	entity.StagePolishing,
	entity.StageLabeling,
	entity.StageReady,
}

// slaHours 各工序延误阈值（小时）。收货与终态不设阈值。
var slaHours = map[entity.Stage]int{
	entity.StageWaxing:    48,
	entity.StageCasting:   24,
	entity.StageSetting:   72,
	entity.StagePolishing: 48,
	entity.StageLabeling:  24,
}

// StageIndex 返回工序在流水线中的位置，未知工序返回 -1
func StageIndex(s entity.Stage) int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// ValidStage 校验工序取值
func ValidStage(s entity.Stage) bool {
	return StageIndex(s) >= 0
}

// SLAHours 返回工序的延误阈值；ok=false 表示该工序不计延误
func SLAHours(s entity.Stage) (int, bool) {
	h, ok := slaHours[s]
	return h, ok
}

// NextStage 计算批次的下一道工序。
// 外购件从收货直接进入贴标；无需镶嵌的批次跳过镶嵌工序；
// 终态或未知工序没有后继。
func NextStage(current entity.Stage, requiresSetting, imported bool) (entity.Stage, bool) {
	if current == entity.StageAwaitingDelivery && imported {
		return entity.StageLabeling, true
	}

	idx := StageIndex(current)
	if idx < 0 || idx == len(Stages)-1 {
		return "", false
	}

	next := Stages[idx+1]
	if next == entity.StageSetting && !requiresSetting {
		next = Stages[idx+2]
	}
	return next, true
}

// StageLabel 工序显示名
func StageLabel(s entity.Stage) string {
	switch s {
	case entity.StageAwaitingDelivery:
		return "Awaiting Delivery"
	case entity.StageWaxing:
		return "Waxing"
	case entity.StageCasting:
		return "Casting"
	case entity.StageSetting:
		return "Setting"
	case entity.StagePolishing:
		return "Polishing"
	case entity.StageLabeling:
		return "Labeling"
	case entity.StageReady:
		return "Ready"
	}
	return string(s)
}

// StageColor 看板列颜色
func StageColor(s entity.Stage) string {
	switch s {
	case entity.StageAwaitingDelivery:
		return "#94A3B8"
	case entity.StageWaxing:
		return "#F59E0B"
	case entity.StageCasting:
		return "#EF4444"
	case entity.StageSetting:
		return "#8B5CF6"
	case entity.StagePolishing:
		return "#3B82F6"
	case entity.StageLabeling:
		return "#14B8A6"
	case entity.StageReady:
		return "#22C55E"
	}
	return "#64748B"
}
