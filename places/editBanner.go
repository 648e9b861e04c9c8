package places

import (
	"fmt"
	"net/http"
	"path/filepath"

	"wayfare/db"
	"wayfare/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const bannerDir = "./static/placepic"
const bannerWidth = 1200

// POST /api/places/:placeid/banner — multipart upload, resized on disk.
func UploadBanner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	placeID := ps.ByName("placeid")

	place, ok := loadOwnedPlace(w, r, placeID, userID)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Banner file is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	if err := utils.EnsureDir(bannerDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	filename := fmt.Sprintf("%s.jpg", place.PlaceID)
	destPath := filepath.Join(bannerDir, filename)

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unreadable image")
		return
	}
	if img.Bounds().Dx() > bannerWidth {
		img = imaging.Resize(img, bannerWidth, 0, imaging.Lanczos)
	}
	if err := imaging.Save(img, destPath, imaging.JPEGQuality(85)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save banner")
		return
	}

	bannerURL := "/static/placepic/" + filename
	_, err = db.PlacesCollection.UpdateOne(r.Context(),
		bson.M{"placeid": place.PlaceID},
		bson.M{"$set": bson.M{"banner": bannerURL}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store banner reference")
		return
	}

	invalidateCache()
	utils.SendResponse(w, http.StatusOK, map[string]string{"banner": bannerURL}, "Banner updated", nil)
}
