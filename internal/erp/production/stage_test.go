package production

import (
	"testing"

	"github.com/atelierlab/aurum/internal/erp/entity"
)

func TestNextStage(t *testing.T) {
	tests := []struct {
		name            string
		current         entity.Stage
		requiresSetting bool
		imported        bool
		want            entity.Stage
		wantOK          bool
	}{
		{"waxing advances to casting", entity.StageWaxing, true, false, entity.StageCasting, true},
		{"casting advances to setting when stones present", entity.StageCasting, true, false, entity.StageSetting, true},
		{"casting skips setting without stones", entity.StageCasting, false, false, entity.StagePolishing, true},
		{"setting advances to polishing", entity.StageSetting, true, false, entity.StagePolishing, true},
		{"polishing advances to labeling", entity.StagePolishing, false, false, entity.StageLabeling, true},
		{"labeling advances to ready", entity.StageLabeling, false, false, entity.StageReady, true},
		{"imported receive jumps to labeling", entity.StageAwaitingDelivery, false, true, entity.StageLabeling, true},
		{"imported receive jumps regardless of stones", entity.StageAwaitingDelivery, true, true, entity.StageLabeling, true},
		{"non-imported awaiting delivery walks the line", entity.StageAwaitingDelivery, true, false, entity.StageWaxing, true},
		{"ready is terminal", entity.StageReady, true, false, "", false},
		{"unknown stage has no successor", entity.Stage("engraving"), true, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextStage(tt.current, tt.requiresSetting, tt.imported)
			if ok != tt.wantOK {
				t.Fatalf("NextStage(%s) ok = %v, want %v", tt.current, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("NextStage(%s) = %s, want %s", tt.current, got, tt.want)
			}
		})
	}
}

func TestSLAHours(t *testing.T) {
	expected := map[entity.Stage]int{
		entity.StageWaxing:    48,
		entity.StageCasting:   24,
		entity.StageSetting:   72,
		entity.StagePolishing: 48,
		entity.StageLabeling:  24,
	}
	for stage, want := range expected {
		got, ok := SLAHours(stage)
		if !ok || got != want {
			t.Errorf("SLAHours(%s) = %d,%v, want %d,true", stage, got, ok, want)
		}
	}

	for _, stage := range []entity.Stage{entity.StageAwaitingDelivery, entity.StageReady} {
		if _, ok := SLAHours(stage); ok {
			t.Errorf("SLAHours(%s) should not define a threshold", stage)
		}
	}
}

func TestStageOrderIsFixed(t *testing.T) {
	want := []entity.Stage{
		entity.StageAwaitingDelivery,
		entity.StageWaxing,
		entity.StageCasting,
		entity.StageSetting,
		entity.StagePolishing,
		entity.StageLabeling,
		entity.StageReady,
	}
	if len(Stages) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(Stages))
	}
	for i, s := range want {
		if Stages[i] != s {
			t.Errorf("Stages[%d] = %s, want %s", i, Stages[i], s)
		}
		if StageIndex(s) != i {
			t.Errorf("StageIndex(%s) = %d, want %d", s, StageIndex(s), i)
		}
	}
	if ValidStage(entity.Stage("engraving")) {
		t.Error("unknown stage should not validate")
	}
}

func TestStageLabelCoversAllStages(t *testing.T) {
	for _, s := range Stages {
		if StageLabel(s) == string(s) {
			t.Errorf("StageLabel(%s) fell through to raw value", s)
		}
		if StageColor(s) == "#64748B" {
			t.Errorf("StageColor(%s) fell through to fallback", s)
		}
	}
}
