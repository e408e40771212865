package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/andrewpaige1/quizset-api/services"
	"github.com/andrewpaige1/quizset-api/utils"
)

// GET /api/questions
func (db *DBHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := db.Questions.List(r.Context())
	if err != nil {
		writeServiceError(w, "GetQuestions", err, "Failed to fetch questions")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// GET /api/questions/by-set/{setID}?includeInactive=true
func (db *DBHandler) GetQuestionsBySet(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")
	includeInactive := utils.QueryBool(r, "includeInactive")

	questions, err := db.Questions.ListBySet(r.Context(), setID, includeInactive)
	if err != nil {
		writeServiceError(w, "GetQuestionsBySet", err, "Failed to fetch questions by set")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// POST /api/questions accepts one question or an array of them.
func (db *DBHandler) CreateQuestions(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		invalidBody(w, "CreateQuestions", err)
		return
	}
	inputs, batch, err := decodeOneOrMany[services.QuestionInput](body)
	if err != nil {
		invalidBody(w, "CreateQuestions", err)
		return
	}

	saved, err := db.Questions.Create(r.Context(), inputs, batch)
	if err != nil {
		writeServiceError(w, "CreateQuestions", err, "Error saving question(s)")
		return
	}
	log.Printf("CreateQuestions: saved %d of %d question(s)", len(saved), len(inputs))

	if batch {
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message":   "Questions added",
			"questions": saved,
		})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Question added",
		"question": saved[0],
	})
}

// PUT /api/questions/{questionID} replaces every field of the question.
func (db *DBHandler) UpdateQuestionByID(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("questionID")
	body, err := readBody(w, r)
	if err != nil {
		invalidBody(w, "UpdateQuestionByID", err)
		return
	}
	inputs, batch, err := decodeOneOrMany[services.QuestionInput](body)
	if err != nil {
		invalidBody(w, "UpdateQuestionByID", err)
		return
	}
	if batch {
		writeError(w, http.StatusBadRequest, "All fields (including set) are required")
		return
	}

	question, err := db.Questions.Update(r.Context(), questionID, inputs[0])
	if err != nil {
		writeServiceError(w, "UpdateQuestionByID", err, "Error updating question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Question updated",
		"question": question,
	})
}

// PUT /api/questions/{questionID}/toggle-set-status
func (db *DBHandler) ToggleQuestionSetStatus(w http.ResponseWriter, r *http.Request) {
	question, set, err := db.Questions.ToggleSetStatus(r.Context(), r.PathValue("questionID"))
	if err != nil {
		writeServiceError(w, "ToggleQuestionSetStatus", err, "Error toggling set status")
		return
	}
	state := "deactivated"
	if set.IsActive {
		state = "activated"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Set " + state,
		"question": question,
		"set":      set,
	})
}

// DELETE /api/questions/{questionID}
func (db *DBHandler) DeleteQuestionByID(w http.ResponseWriter, r *http.Request) {
	question, err := db.Questions.Delete(r.Context(), r.PathValue("questionID"))
	if err != nil {
		writeServiceError(w, "DeleteQuestionByID", err, "Error deleting question")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Question deleted",
		"question": question,
	})
}

// DELETE /api/questions/by-set/{setID}
func (db *DBHandler) DeleteQuestionsBySet(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")
	deleted, err := db.Questions.DeleteBySet(r.Context(), setID)
	if err != nil {
		writeServiceError(w, "DeleteQuestionsBySet", err, "Error deleting questions by set")
		return
	}
	log.Printf("DeleteQuestionsBySet: deleted %d questions for setID=%s", deleted, setID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      fmt.Sprintf("Deleted %d questions from set", deleted),
		"deletedCount": deleted,
	})
}
