package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"maison/db"
	"maison/inventory"
	"maison/models"
	"maison/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts runs the composed catalog query. Count and fetch share the
// same filter so total/pages always agree with the returned page.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := ParseQuery(r)
	filter := q.Filter()

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		log.Println("GetProducts CountDocuments error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	opts := options.Find().SetSort(q.SortDoc()).SetSkip(q.Skip).SetLimit(q.Limit)
	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, filter, opts)
	if err != nil {
		log.Println("GetProducts Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":  true,
		"products": products,
		"page":     q.Skip/q.Limit + 1,
		"pages":    Pages(total, q.Limit),
		"total":    total,
	})
}

var hexID = regexp.MustCompile(`^[0-9a-fA-F-]{24,36}$`)

// GetProduct looks a product up by id, falling back to slug when the path
// segment does not look like an id (the storefront sometimes omits /slug/).
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")

	var product models.Product
	if hexID.MatchString(id) {
		if err := db.ProductCollection.FindOne(ctx, bson.M{"productId": id}).Decode(&product); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "product": product})
			return
		}
	}

	err := db.ProductCollection.FindOne(ctx, bson.M{"slug": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "product": product})
}

func GetProductBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"slug": ps.ByName("slug")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "product": product})
}

// CreateProduct is the admin write path: generates the slug, synthesizes
// missing variant SKUs, resolves category names to ids, and seeds the
// inventory ledger from the variant stock counts.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product payload")
		return
	}
	if product.Title == "" || len(product.Variants) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and at least one variant are required")
		return
	}

	product.ProductID = utils.GetUUID()
	product.Slug = utils.Slugify(product.Title)
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = models.ProductLive
	}

	if product.CategoryID != "" {
		catID, err := resolveCategory(ctx, product.CategoryID, "", 0)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		subID := ""
		if product.SubCategoryID != "" {
			if subID, err = resolveCategory(ctx, product.SubCategoryID, catID, 1); err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
		product.CategoryID = catID
		product.SubCategoryID = subID
	}

	for i := range product.Variants {
		v := &product.Variants[i]
		if v.SKU == "" {
			v.SKU = strings.ToLower(fmt.Sprintf("%s-%s-%s-%d", product.Slug, v.Color, v.Size, now.UnixNano()%10000))
		}
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Product creation failed")
		return
	}

	for _, v := range product.Variants {
		if err := inventory.Seed(ctx, v.SKU, v.Stock); err != nil {
			log.Println("CreateProduct inventory seed error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "product": product})
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productId": ps.ByName("id")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Product removed"})
}

// resolveCategory accepts either a category id or a bare name; names are
// found or created on the fly so admin imports stay one call.
func resolveCategory(ctx context.Context, idOrName, parentID string, level int) (string, error) {
	var existing models.Category
	err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryId": idOrName}).Decode(&existing)
	if err == nil {
		return existing.CategoryID, nil
	}
	if err != mongo.ErrNoDocuments {
		return "", err
	}

	filter := bson.M{"name": idOrName}
	if parentID != "" {
		filter["parent"] = parentID
	}
	if err := db.CategoryCollection.FindOne(ctx, filter).Decode(&existing); err == nil {
		return existing.CategoryID, nil
	} else if err != mongo.ErrNoDocuments {
		return "", err
	}

	cat := models.Category{
		CategoryID: utils.GetUUID(),
		Name:       idOrName,
		Slug:       utils.Slugify(idOrName),
		ParentID:   parentID,
		Level:      level,
		CreatedAt:  time.Now(),
	}
	if _, err := db.CategoryCollection.InsertOne(ctx, cat); err != nil {
		return "", err
	}
	if parentID != "" {
		// keep the parent's denormalized children list in sync
		_, err := db.CategoryCollection.UpdateOne(ctx,
			bson.M{"categoryId": parentID},
			bson.M{"$addToSet": bson.M{"children": cat.CategoryID}})
		if err != nil {
			return "", err
		}
	}
	return cat.CategoryID, nil
}

