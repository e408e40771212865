package handlers

import (
	"log"
	"net/http"
)

type setNameRequest struct {
	Name string `json:"name"`
}

// GET /api/sets
func (db *DBHandler) GetSets(w http.ResponseWriter, r *http.Request) {
	sets, err := db.Sets.List(r.Context())
	if err != nil {
		writeServiceError(w, "GetSets", err, "Failed to fetch sets")
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

// GET /api/sets/active
func (db *DBHandler) GetActiveSet(w http.ResponseWriter, r *http.Request) {
	set, err := db.Sets.Active(r.Context())
	if err != nil {
		writeServiceError(w, "GetActiveSet", err, "Failed to fetch active set")
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// POST /api/sets accepts one {name} object or an array of them.
func (db *DBHandler) CreateSets(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		invalidBody(w, "CreateSets", err)
		return
	}
	reqs, _, err := decodeOneOrMany[setNameRequest](body)
	if err != nil {
		invalidBody(w, "CreateSets", err)
		return
	}
	names := make([]string, len(reqs))
	for i, req := range reqs {
		names[i] = req.Name
	}

	sets, err := db.Sets.Create(r.Context(), names)
	if err != nil {
		writeServiceError(w, "CreateSets", err, "Error saving set(s)")
		return
	}
	log.Printf("CreateSets: created %d set(s)", len(sets))
	writeJSON(w, http.StatusCreated, sets)
}

// PUT /api/sets/{setID}
func (db *DBHandler) UpdateSetByID(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")
	body, err := readBody(w, r)
	if err != nil {
		invalidBody(w, "UpdateSetByID", err)
		return
	}
	reqs, batch, err := decodeOneOrMany[setNameRequest](body)
	if err != nil || batch {
		writeError(w, http.StatusBadRequest, "Set name is required")
		return
	}

	set, err := db.Sets.Rename(r.Context(), setID, reqs[0].Name)
	if err != nil {
		writeServiceError(w, "UpdateSetByID", err, "Error updating set")
		return
	}
	log.Printf("UpdateSetByID: renamed setID=%s to %q", setID, set.Name)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Set updated",
		"set":     set,
	})
}

// PUT /api/sets/{setID}/activate
func (db *DBHandler) ActivateSetByID(w http.ResponseWriter, r *http.Request) {
	set, err := db.Sets.Activate(r.Context(), r.PathValue("setID"))
	if err != nil {
		writeServiceError(w, "ActivateSetByID", err, "Error activating set")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Set activated successfully",
		"set":     set,
	})
}

// PUT /api/sets/deactivate
func (db *DBHandler) DeactivateSets(w http.ResponseWriter, r *http.Request) {
	if err := db.Sets.DeactivateAll(r.Context()); err != nil {
		writeServiceError(w, "DeactivateSets", err, "Error deactivating sets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All sets deactivated successfully"})
}

// DELETE /api/sets/{setID}
func (db *DBHandler) DeleteSetByID(w http.ResponseWriter, r *http.Request) {
	setID := r.PathValue("setID")
	set, wasActive, err := db.Sets.Delete(r.Context(), setID)
	if err != nil {
		writeServiceError(w, "DeleteSetByID", err, "Error deleting set")
		return
	}
	log.Printf("DeleteSetByID: deleted setID=%s wasActive=%t", setID, wasActive)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Set deleted",
		"set":       set,
		"wasActive": wasActive,
	})
}
