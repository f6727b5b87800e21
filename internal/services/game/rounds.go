package game

import "github.com/shootout-game/shootout-go/internal/model"

// resolveRound derives the record for one completed round from the two
// submitted moves. It is a pure function: the kick beats the keeper unless
// the keeper picked the same cell.
func resolveRound(round int, kickerID, keeperID model.PlayerID, kick, save model.Move) model.RoundRecord {
	outcome := model.OutcomeGoal
	if kick.Cell == save.Cell {
		outcome = model.OutcomeSaved
	}

	return model.RoundRecord{
		Round:      round,
		KickerID:   kickerID,
		KeeperID:   keeperID,
		KickerCell: kick.Cell,
		KeeperCell: save.Cell,
		Outcome:    outcome,
	}
}

// applyRecord folds a resolved round into the game: history, score tally and
// round counter. Only the kicker's slot can score; a save scores no one.
func applyRecord(g *model.Game, record model.RoundRecord) {
	g.Rounds = append(g.Rounds, record)
	if record.Outcome == model.OutcomeGoal {
		if slot := g.SlotOf(record.KickerID); slot >= 0 {
			g.Scores[slot]++
		}
	}
	g.CurrentRound++
	g.Pending = make(map[model.PlayerID]model.Move)
}
