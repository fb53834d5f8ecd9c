package productControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/api"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/config"
	"github.com/Shivam-Gusain1999/Pahadi-Bazaar/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type addProductData struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description []string `json:"description"`
	Price       float64  `json:"price"`
	OfferPrice  float64  `json:"offerPrice"`
}

// POST /api/product/add (seller)
//
// Multipart form: "productData" JSON field plus one or more "images" files.
// Images land on local disk and are served from the uploads route.
func Add(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data addProductData
		if err := json.Unmarshal([]byte(c.PostForm("productData")), &data); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Invalid product data format"))
			return
		}
		if data.Name == "" || data.Category == "" || data.OfferPrice <= 0 {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Name, category and offer price are required"))
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "At least one product image is required"))
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			api.Abort(c, api.NewError(http.StatusBadRequest, "At least one product image is required"))
			return
		}

		saveDir := filepath.Join(cfg.UploadsDir, "products")
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			api.Abort(c, err)
			return
		}

		var imageURLs models.StringList
		for _, file := range files {
			filename := uuid.NewString() + filepath.Ext(strings.ReplaceAll(file.Filename, " ", "_"))
			if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
				api.Abort(c, err)
				return
			}
			imageURLs = append(imageURLs, fmt.Sprintf("/uploads/products/%s", filename))
		}

		product := models.Product{
			Name:        data.Name,
			Category:    data.Category,
			Description: models.StringList(data.Description),
			Image:       imageURLs,
			Price:       data.Price,
			OfferPrice:  data.OfferPrice,
			InStock:     true,
		}
		if err := db.Create(&product).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusCreated, product, "Product added successfully")
	}
}

type ChangeStockRequest struct {
	ID      uint  `json:"id" binding:"required"`
	InStock *bool `json:"inStock" binding:"required"`
}

// POST /api/product/stock (seller)
//
// InStock is a manually toggled flag, not a count; order placement never
// touches it.
func ChangeStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangeStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Abort(c, api.NewError(http.StatusBadRequest, "Product ID is required"))
			return
		}

		var product models.Product
		if err := db.First(&product, req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				api.Abort(c, api.NewError(http.StatusNotFound, "Product not found"))
				return
			}
			api.Abort(c, err)
			return
		}

		if err := db.Model(&product).Update("in_stock", *req.InStock).Error; err != nil {
			api.Abort(c, err)
			return
		}

		api.OK(c, http.StatusOK, gin.H{"product": product}, "Stock updated successfully")
	}
}
