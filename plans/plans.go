package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/mq"
	"wayfare/userdata"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/plans/create
func CreatePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var plan models.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	plan.PlanID = utils.GetUUID()
	plan.UserID = userID
	if plan.Status == "" {
		plan.Status = models.PlanStatusPlanning
	}
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := ValidatePlan(&plan); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.PlansCollection.InsertOne(ctx, plan); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error inserting plan")
		return
	}

	userdata.SetUserData("plan", plan.PlanID, userID, "", "")
	go mq.Emit(r.Context(), "plan-created", models.Index{
		EntityType: "plan", EntityId: plan.PlanID, Method: "POST",
	})

	utils.SendResponse(w, http.StatusCreated, plan, "Plan created", nil)
}

// GET /api/plans/:planid
func GetPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var plan models.Plan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID}).Decode(&plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}

	utils.SendResponse(w, http.StatusOK, plan, "", nil)
}

// GET /api/plans — the requesting user's plans.
func GetMyPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"user_id": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	plans, err := utils.FindAndDecode[models.Plan](r.Context(), db.PlansCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching plans")
		return
	}

	utils.SendResponse(w, http.StatusOK, plans, "", nil)
}

// PUT /api/plans/:planid — full update including status; status
// transitions are caller-specified and never rejected beyond enum checking.
func UpdatePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Plan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if existing.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var updated models.Plan
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fillUnsetFields(&updated, existing)
	updated.UpdatedAt = time.Now()

	if err := ValidatePlan(&updated); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := bson.M{"$set": bson.M{
		"title":       updated.Title,
		"description": updated.Description,
		"start_date":  updated.StartDate,
		"end_date":    updated.EndDate,
		"destination": updated.Destination,
		"activities":  updated.Activities,
		"status":      updated.Status,
		"budget":      updated.Budget,
		"tags":        updated.Tags,
		"updated_at":  updated.UpdatedAt,
	}}

	if _, err := db.PlansCollection.UpdateOne(ctx, bson.M{"planid": planID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating plan")
		return
	}

	go mq.Emit(r.Context(), "plan-edited", models.Index{
		EntityType: "plan", EntityId: planID, Method: "PUT",
	})

	utils.SendResponse(w, http.StatusOK, updated, "Plan updated", nil)
}

// DELETE /api/plans/:planid — reviews referencing the plan are left in
// place; their plan link simply stops resolving.
func DeletePlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var plan models.Plan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID}).Decode(&plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if plan.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if _, err := db.PlansCollection.DeleteOne(ctx, bson.M{"planid": planID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting plan")
		return
	}

	userdata.DelUserData("plan", planID, userID)
	go mq.Emit(r.Context(), "plan-deleted", models.Index{
		EntityType: "plan", EntityId: planID, Method: "DELETE",
	})

	utils.SendResponse(w, http.StatusOK, nil, "Plan deleted", nil)
}

// fillUnsetFields carries identity and backfills every omitted field from
// the stored plan so partial updates validate against the effective result
// and never erase what the caller left out.
func fillUnsetFields(updated *models.Plan, existing models.Plan) {
	updated.PlanID = existing.PlanID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	if updated.Title == "" {
		updated.Title = existing.Title
	}
	if updated.Description == "" {
		updated.Description = existing.Description
	}
	if updated.StartDate.IsZero() {
		updated.StartDate = existing.StartDate
	}
	if updated.EndDate.IsZero() {
		updated.EndDate = existing.EndDate
	}
	if updated.Destination.Name == "" {
		updated.Destination = existing.Destination
	}
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if updated.Activities == nil {
		updated.Activities = existing.Activities
	}
	if updated.Budget == (models.Budget{}) {
		updated.Budget = existing.Budget
	}
	if updated.Tags == nil {
		updated.Tags = existing.Tags
	}
}
