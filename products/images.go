package products

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"vendora/db"
	"vendora/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	productPicDir = "static/productpic"
	thumbWidth    = 200
)

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadProductImage stores a product photo and a resized thumbnail, and
// appends the filename to the product's image list. Owner only.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	product, ok := loadOwnedProduct(ctx, w, userID, ps.ByName("productid"))
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	if !supportedImageTypes[header.Header.Get("Content-Type")] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image type")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	if err := os.MkdirAll(filepath.Join(productPicDir, "thumb"), 0755); err != nil {
		log.Println("UploadProductImage mkdir error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	name := fmt.Sprintf("%s.jpg", utils.GetUUID())
	if err := imaging.Save(img, filepath.Join(productPicDir, name)); err != nil {
		log.Println("UploadProductImage save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos) // maintain aspect ratio
	if err := imaging.Save(thumb, filepath.Join(productPicDir, "thumb", name)); err != nil {
		log.Println("UploadProductImage thumbnail error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	_, err = db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": product.ProductID},
		bson.M{
			"$push": bson.M{"images": name},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		log.Println("UploadProductImage update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"image": name})
}
