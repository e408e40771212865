package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/andrewpaige1/quizset-api/models"
)

// QuestionInput is a question as submitted by a client. Set is either a set id
// or a set name.
type QuestionInput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Set           string   `json:"set"`
}

// QuestionService stores questions and resolves the set each one belongs to.
type QuestionService struct {
	db   *gorm.DB
	sets *SetService
}

func NewQuestionService(db *gorm.DB, sets *SetService) *QuestionService {
	return &QuestionService{db: db, sets: sets}
}

// List returns every question, newest first, with its set resolved.
func (s *QuestionService) List(ctx context.Context) ([]models.PopulatedQuestion, error) {
	var questions []models.Question
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return s.populate(ctx, questions)
}

// ListBySet returns the questions of one set. Questions of an inactive set are
// hidden unless includeInactive is set.
func (s *QuestionService) ListBySet(ctx context.Context, setID string, includeInactive bool) ([]models.PopulatedQuestion, error) {
	set, err := s.sets.Get(ctx, setID)
	if err != nil {
		return nil, err
	}
	out := []models.PopulatedQuestion{}
	if !includeInactive && !set.IsActive {
		return out, nil
	}
	var questions []models.Question
	if err := s.db.WithContext(ctx).Where("set_id = ?", set.ID).Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	for i := range questions {
		out = append(out, questions[i].Populate(set))
	}
	return out, nil
}

// Create validates every input before storing any of them. Rows are then
// inserted independently so one failed insert does not block the others.
// batch selects the wording of validation messages.
func (s *QuestionService) Create(ctx context.Context, inputs []QuestionInput, batch bool) ([]models.PopulatedQuestion, error) {
	if len(inputs) == 0 {
		return nil, validationError(requiredMessage(batch))
	}
	pending := make([]models.Question, 0, len(inputs))
	for _, in := range inputs {
		if err := validateQuestion(in, batch); err != nil {
			return nil, err
		}
		set, err := s.resolveSet(ctx, in.Set, " Please create the set first.")
		if err != nil {
			return nil, err
		}
		pending = append(pending, models.Question{
			Question:      in.Question,
			Options:       in.Options,
			CorrectAnswer: in.CorrectAnswer,
			SetID:         set.ID,
		})
	}

	db := s.db.WithContext(ctx)
	saved := make([]models.Question, 0, len(pending))
	var firstErr error
	for i := range pending {
		if err := db.Create(&pending[i]).Error; err != nil {
			log.Printf("QuestionService.Create: failed to insert question %d of %d: %v", i+1, len(pending), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		saved = append(saved, pending[i])
	}
	if len(saved) == 0 {
		return nil, firstErr
	}
	return s.populate(ctx, saved)
}

// Update replaces every field of a question.
func (s *QuestionService) Update(ctx context.Context, id string, in QuestionInput) (*models.PopulatedQuestion, error) {
	if err := validateQuestion(in, false); err != nil {
		return nil, err
	}
	set, err := s.resolveSet(ctx, in.Set, "")
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	question, err := getQuestion(db, id)
	if err != nil {
		return nil, err
	}
	question.Question = in.Question
	question.Options = in.Options
	question.CorrectAnswer = in.CorrectAnswer
	question.SetID = set.ID
	if err := db.Save(question).Error; err != nil {
		return nil, err
	}
	populated := question.Populate(set)
	return &populated, nil
}

// ToggleSetStatus flips the active flag of the question's set. It does not go
// through Activate, so other sets keep their state.
func (s *QuestionService) ToggleSetStatus(ctx context.Context, id string) (*models.PopulatedQuestion, *models.Set, error) {
	question, err := getQuestion(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, nil, err
	}
	if question.SetID == "" {
		return nil, nil, validationError("Question has no associated set")
	}
	set, err := s.sets.Toggle(ctx, question.SetID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, validationError("Associated set not found")
	}
	if err != nil {
		return nil, nil, err
	}
	populated := question.Populate(set)
	return &populated, set, nil
}

// Delete removes a question and returns it with whatever set it still resolves to.
func (s *QuestionService) Delete(ctx context.Context, id string) (*models.PopulatedQuestion, error) {
	db := s.db.WithContext(ctx)
	question, err := getQuestion(db, id)
	if err != nil {
		return nil, err
	}
	result := db.Delete(&models.Question{}, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, notFoundError("Question not found")
	}
	populated, err := s.populate(ctx, []models.Question{*question})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// DeleteBySet removes every question of a set and returns how many were removed.
func (s *QuestionService) DeleteBySet(ctx context.Context, setID string) (int64, error) {
	set, err := s.sets.Get(ctx, setID)
	if err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("set_id = ?", set.ID).Delete(&models.Question{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// resolveSet turns a set reference into a set. Anything shaped like an id is
// looked up by id, everything else by exact name. hint is appended to the
// message for an unknown name.
func (s *QuestionService) resolveSet(ctx context.Context, ref, hint string) (*models.Set, error) {
	ref = strings.TrimSpace(ref)
	if models.LooksLikeID(ref) {
		set, err := s.sets.Get(ctx, strings.ToLower(ref))
		if errors.Is(err, ErrNotFound) {
			return nil, validationError(fmt.Sprintf("Set with ID %q not found.", ref))
		}
		return set, err
	}
	set, err := s.sets.FindByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, validationError(fmt.Sprintf("Set %q not found.", ref) + hint)
	}
	return set, nil
}

func (s *QuestionService) populate(ctx context.Context, questions []models.Question) ([]models.PopulatedQuestion, error) {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.SetID)
	}
	sets, err := s.sets.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.PopulatedQuestion, 0, len(questions))
	for i := range questions {
		out = append(out, questions[i].Populate(sets[questions[i].SetID]))
	}
	return out, nil
}

func validateQuestion(in QuestionInput, batch bool) error {
	if strings.TrimSpace(in.Question) == "" || in.Options == nil ||
		strings.TrimSpace(in.CorrectAnswer) == "" || strings.TrimSpace(in.Set) == "" {
		return validationError(requiredMessage(batch))
	}
	if len(in.Options) < 2 {
		if batch {
			return validationError("Each question must have at least two options")
		}
		return validationError("At least two options are required")
	}
	if !slices.Contains(in.Options, in.CorrectAnswer) {
		return validationError("Correct answer must be one of the options")
	}
	return nil
}

func requiredMessage(batch bool) string {
	if batch {
		return "Each question must include question, options, correctAnswer, and set"
	}
	return "All fields (including set) are required"
}

func getQuestion(db *gorm.DB, id string) (*models.Question, error) {
	var question models.Question
	err := db.Where("id = ?", id).First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundError("Question not found")
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}
