package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shootout-game/shootout-go/internal/model"
)

func TestResolveRound(t *testing.T) {
	tests := []struct {
		name     string
		kickCell model.Cell
		saveCell model.Cell
		expected model.Outcome
	}{
		{"different cells is a goal", 0, 5, model.OutcomeGoal},
		{"same cell is a save", 3, 3, model.OutcomeSaved},
		{"adjacent cells still score", 2, 3, model.OutcomeGoal},
		{"corner save", 0, 0, model.OutcomeSaved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := resolveRound(2, "kicker", "keeper",
				model.Move{Cell: tt.kickCell, Role: model.RoleKicker},
				model.Move{Cell: tt.saveCell, Role: model.RoleGoalkeeper},
			)

			assert.Equal(t, tt.expected, record.Outcome)
			assert.Equal(t, 2, record.Round)
			assert.Equal(t, model.PlayerID("kicker"), record.KickerID)
			assert.Equal(t, model.PlayerID("keeper"), record.KeeperID)
			assert.Equal(t, tt.kickCell, record.KickerCell)
			assert.Equal(t, tt.saveCell, record.KeeperCell)
		})
	}
}

func TestApplyRecordGoalScoresKickerSlot(t *testing.T) {
	g := &model.Game{
		Players: []model.PlayerID{"p1", "p2"},
		Pending: map[model.PlayerID]model.Move{"p1": {}, "p2": {}},
	}

	applyRecord(g, model.RoundRecord{
		Round:    0,
		KickerID: "p2",
		KeeperID: "p1",
		Outcome:  model.OutcomeGoal,
	})

	assert.Equal(t, [2]int{0, 1}, g.Scores)
	assert.Equal(t, 1, g.CurrentRound)
	assert.Len(t, g.Rounds, 1)
	assert.Empty(t, g.Pending)
}

func TestApplyRecordSaveScoresNoOne(t *testing.T) {
	g := &model.Game{
		Players: []model.PlayerID{"p1", "p2"},
		Pending: map[model.PlayerID]model.Move{"p1": {}, "p2": {}},
	}

	applyRecord(g, model.RoundRecord{
		Round:    0,
		KickerID: "p1",
		KeeperID: "p2",
		Outcome:  model.OutcomeSaved,
	})

	assert.Equal(t, [2]int{0, 0}, g.Scores)
	assert.Equal(t, 1, g.CurrentRound)
}
