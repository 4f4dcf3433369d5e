package service_test

import (
	"sort"

	"github.com/unsa-memon/quiz-app-backend/internal/model"
	"gorm.io/gorm"
)

// In-memory stand-ins for the gorm repositories, so service tests run
// against the repository interfaces without a database.

type fakeQuizRepo struct {
	quizzes map[uint]*model.Quiz
	nextID  uint
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[uint]*model.Quiz)}
}

func (r *fakeQuizRepo) Create(quiz *model.Quiz) error {
	r.nextID++
	quiz.ID = r.nextID
	for i := range quiz.Questions {
		quiz.Questions[i].ID = quiz.ID*100 + uint(i) + 1
		quiz.Questions[i].QuizID = quiz.ID
	}
	stored := *quiz
	stored.Questions = append([]model.Question(nil), quiz.Questions...)
	r.quizzes[quiz.ID] = &stored
	return nil
}

func (r *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *quiz
	copied.Questions = nil
	return &copied, nil
}

func (r *fakeQuizRepo) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *quiz
	copied.Questions = append([]model.Question(nil), quiz.Questions...)
	return &copied, nil
}

func (r *fakeQuizRepo) FindBySubject(subject string) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range r.quizzes {
		if q.Subject == subject && q.IsPublic {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) FindByOwner(owner string) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range r.quizzes {
		if q.CreatedBy == owner {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) FindAllPublic() ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range r.quizzes {
		if q.IsPublic {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuizRepo) Update(quiz *model.Quiz) error {
	existing, ok := r.quizzes[quiz.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *quiz
	if quiz.Questions == nil {
		// Metadata-only save, mirrors gorm leaving associations alone.
		stored.Questions = existing.Questions
	} else {
		stored.Questions = append([]model.Question(nil), quiz.Questions...)
	}
	r.quizzes[quiz.ID] = &stored
	return nil
}

func (r *fakeQuizRepo) ReplaceQuestions(quizID uint, questions []model.Question) error {
	quiz, ok := r.quizzes[quizID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range questions {
		questions[i].ID = quizID*100 + uint(i) + 50
		questions[i].QuizID = quizID
	}
	quiz.Questions = append([]model.Question(nil), questions...)
	return nil
}

func (r *fakeQuizRepo) Delete(id uint) error {
	if _, ok := r.quizzes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.quizzes, id)
	return nil
}

type fakeAttemptRepo struct {
	attempts  map[uint]*model.Attempt
	nextID    uint
	quizRepo  *fakeQuizRepo
	updateErr error
	deleteErr error
	updates   int
}

func newFakeAttemptRepo(quizRepo *fakeQuizRepo) *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: make(map[uint]*model.Attempt), quizRepo: quizRepo}
}

func (r *fakeAttemptRepo) Create(attempt *model.Attempt) error {
	r.nextID++
	attempt.ID = r.nextID
	for i := range attempt.Responses {
		attempt.Responses[i].ID = attempt.ID*100 + uint(i) + 1
		attempt.Responses[i].AttemptID = attempt.ID
	}
	stored := *attempt
	stored.Quiz = model.Quiz{}
	stored.Responses = append([]model.Response(nil), attempt.Responses...)
	r.attempts[attempt.ID] = &stored
	return nil
}

func (r *fakeAttemptRepo) FindByID(id uint) (*model.Attempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *attempt
	copied.Responses = append([]model.Response(nil), attempt.Responses...)
	return &copied, nil
}

func (r *fakeAttemptRepo) FindByIDWithQuiz(id uint) (*model.Attempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *attempt
	copied.Responses = append([]model.Response(nil), attempt.Responses...)
	if quiz, err := r.quizRepo.FindByIDWithQuestions(attempt.QuizID); err == nil {
		copied.Quiz = *quiz
	}
	return &copied, nil
}

func (r *fakeAttemptRepo) FindAllByUser(userID string) ([]model.Attempt, error) {
	var out []model.Attempt
	for _, a := range r.attempts {
		if a.UserID != userID {
			continue
		}
		copied := *a
		if quiz, err := r.quizRepo.FindByIDWithQuestions(a.QuizID); err == nil {
			copied.Quiz = *quiz
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out, nil
}

func (r *fakeAttemptRepo) UpdateDerivedFields(id uint, totalMarks, percentage int) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	attempt, ok := r.attempts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	attempt.TotalMarks = totalMarks
	attempt.Percentage = percentage
	r.updates++
	return nil
}

func (r *fakeAttemptRepo) DeleteByQuiz(quizID uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for id, a := range r.attempts {
		if a.QuizID == quizID {
			delete(r.attempts, id)
		}
	}
	return nil
}
