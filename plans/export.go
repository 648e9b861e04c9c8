package plans

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"sort"

	"wayfare/db"
	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// SharePayload returns a signed share string: planid|owner|signature.
// The QR on the exported PDF carries it so a shared itinerary can be
// verified as untampered.
func SharePayload(planID, userID string) string {
	data := fmt.Sprintf("%s|%s", planID, userID)

	h := hmac.New(sha256.New, shareSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifySharePayload checks the signature on a share string.
func VerifySharePayload(payload string) bool {
	idx := lastPipe(payload)
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, shareSecret())
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(sig), []byte(expected))
}

func lastPipe(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '|' {
			return i
		}
	}
	return -1
}

func shareSecret() []byte {
	if s := os.Getenv("SHARE_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-share-secret")
}

// GET /api/plans/:planid/export — itinerary as PDF with a share QR.
func ExportPlanPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	planID := ps.ByName("planid")

	var plan models.Plan
	err := db.PlansCollection.FindOne(r.Context(), bson.M{"planid": planID}).Decode(&plan)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if plan.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	qrPNG, err := qrcode.Encode(SharePayload(plan.PlanID, plan.UserID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, plan.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Destination: %s", plan.Destination.Name))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("%s - %s",
		plan.StartDate.Format("Jan 2, 2006"), plan.EndDate.Format("Jan 2, 2006")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", plan.Status))
	pdf.Ln(12)

	activities := make([]models.Activity, len(plan.Activities))
	copy(activities, plan.Activities)
	sort.SliceStable(activities, func(i, j int) bool {
		if !activities[i].Date.Equal(activities[j].Date) {
			return activities[i].Date.Before(activities[j].Date)
		}
		return activities[i].StartTime < activities[j].StartTime
	})

	lastDay := ""
	for _, activity := range activities {
		day := activity.Date.Format("Monday, Jan 2")
		if day != lastDay {
			pdf.SetFont("Arial", "B", 12)
			pdf.Cell(0, 8, day)
			pdf.Ln(8)
			lastDay = day
		}
		pdf.SetFont("Arial", "", 11)
		line := activity.Name
		if activity.StartTime != "" {
			line = fmt.Sprintf("%s-%s  %s", activity.StartTime, activity.EndTime, activity.Name)
		}
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=plan-"+plan.PlanID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
