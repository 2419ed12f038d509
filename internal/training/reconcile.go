package training

import (
	"fitvalle/coaching-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reconcile merges pending edits into the displayed list and returns the
// updated list. For every record with a matching edit, the five numeric
// parameters are replaced with the edited values while the record's own
// Completed flag is preserved unconditionally; edits never change the
// in-session checkbox state. Records with no matching edit come back
// unchanged.
//
// The mailbox payload, when present, is applied after the edit-store
// snapshot, so for the same exercise the hand-back wins: it is the value
// the detail screen committed on navigating back, i.e. the most recently
// authored one. It also carries the authoritative SessionID.
func Reconcile(displayed []domain.SessionExercise, edits map[primitive.ObjectID]domain.SessionExercise, pending *domain.SessionExercise) []domain.SessionExercise {
	if len(edits) == 0 && pending == nil {
		return displayed
	}

	result := make([]domain.SessionExercise, len(displayed))
	for i, record := range displayed {
		if edit, ok := edits[record.ExerciseID]; ok {
			record = applyEdit(record, edit, false)
		}
		if pending != nil && pending.ExerciseID == record.ExerciseID {
			record = applyEdit(record, *pending, true)
		}
		result[i] = record
	}
	return result
}

// applyEdit copies the numeric parameters from the edit onto the record.
// Completed always stays the record's; SessionID is only taken from a
// hand-back payload.
func applyEdit(record, edit domain.SessionExercise, fromHandback bool) domain.SessionExercise {
	record.Sets = edit.Sets
	record.Reps = edit.Reps
	record.Weight = edit.Weight
	record.Speed = edit.Speed
	record.Duration = edit.Duration
	if fromHandback && edit.SessionID != primitive.NilObjectID {
		record.SessionID = edit.SessionID
	}
	return record
}

// Eligible filters the current list down to the records worth persisting
// at finish time: explicitly checked complete, or with numeric parameters
// changed from the baseline record with the same exercise ID. A record
// absent from the baseline counts as unchanged, so it is kept only when
// completed.
func Eligible(current, baseline []domain.SessionExercise) []domain.SessionExercise {
	byID := make(map[primitive.ObjectID]domain.SessionExercise, len(baseline))
	for _, b := range baseline {
		byID[b.ExerciseID] = b
	}

	var eligible []domain.SessionExercise
	for _, record := range current {
		if record.Completed {
			eligible = append(eligible, record)
			continue
		}
		if base, ok := byID[record.ExerciseID]; ok && !record.SameParameters(base) {
			eligible = append(eligible, record)
		}
	}
	return eligible
}

// CompletedOnly filters the current list down to the records explicitly
// checked complete. Template-started sessions persist only these; a
// parameter change alone does not save a planned exercise.
func CompletedOnly(current []domain.SessionExercise) []domain.SessionExercise {
	var done []domain.SessionExercise
	for _, record := range current {
		if record.Completed {
			done = append(done, record)
		}
	}
	return done
}
