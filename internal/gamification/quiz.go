package gamification

import (
	"fmt"

	"github.com/carboloom/carboloom/internal/content"
)

// completeQuiz records a finished attempt. The quiz reward is paid only on the
// first completion.
func completeQuiz(d *Data, quiz content.Quiz, score int, today string) error {
	if score < 0 || score > len(quiz.Questions) {
		return fmt.Errorf("%w: score %d outside 0..%d", ErrInvalidInput, score, len(quiz.Questions))
	}

	prev, seen := d.QuizStates[quiz.ID]
	if !seen || prev.Attempts == 0 {
		d.Points += quiz.Reward.Points
		if quiz.Reward.BadgeID != "" {
			if badge, ok := BadgeByID(quiz.Reward.BadgeID); ok {
				d.AddBadges(badge)
			}
		}
	}

	d.QuizStates[quiz.ID] = QuizState{
		Attempts:       prev.Attempts + 1,
		HighestScore:   max(prev.HighestScore, score),
		TotalQuestions: len(quiz.Questions),
		LastAttempted:  today,
	}
	return nil
}

func saveQuizProgress(d *Data, quizID string, progress QuizProgress) {
	state, ok := d.QuizStates[quizID]
	if !ok {
		state = QuizState{TotalQuestions: len(progress.ShuffledQuestions)}
	}
	if progress.SelectedAnswers == nil {
		progress.SelectedAnswers = map[string]int{}
	}
	state.Progress = &progress
	d.QuizStates[quizID] = state
}

// clearQuizProgress reports whether there was anything to clear.
func clearQuizProgress(d *Data, quizID string) bool {
	state, ok := d.QuizStates[quizID]
	if !ok || state.Progress == nil {
		return false
	}
	state.Progress = nil
	d.QuizStates[quizID] = state
	return true
}
