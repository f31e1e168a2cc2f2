package services

import "beakers-site/pkg/models"

// GradeQuiz scores selected answers against art's questions by position.
// Missing or empty selections count as unanswered.
func GradeQuiz(art *models.Article, selected []string) models.QuizResult {
	result := models.QuizResult{
		Total:     len(art.Questions),
		Questions: make([]models.QuestionGrade, len(art.Questions)),
	}
	for i, q := range art.Questions {
		grade := models.QuestionGrade{
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
		}
		if i < len(selected) && selected[i] != "" {
			grade.Selected = selected[i]
			grade.Answered = true
			grade.Correct = selected[i] == q.CorrectAnswer
		}
		if grade.Correct {
			result.Score++
		}
		result.Questions[i] = grade
	}
	return result
}
