package categories

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"maison/db"
	"maison/models"
	"maison/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCategories lists root categories.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cats, err := utils.FindAndDecode[models.Category](ctx, db.CategoryCollection, bson.M{"parent": ""}, opts)
	if err != nil {
		log.Println("GetCategories Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "categories": cats})
}

// GetSubCategories lists the children of a parent.
func GetSubCategories(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cats, err := utils.FindAndDecode[models.Category](ctx, db.CategoryCollection, bson.M{"parent": ps.ByName("parentId")})
	if err != nil {
		log.Println("GetSubCategories Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch subcategories")
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "categories": cats})
}

// GetCategoryTree returns roots with children expanded one level deep.
func GetCategoryTree(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	all, err := utils.FindAndDecode[models.Category](ctx, db.CategoryCollection, bson.M{})
	if err != nil {
		log.Println("GetCategoryTree Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch category tree")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "categories": BuildTree(all)})
}

// BuildTree assembles the parent/child forest from a flat category list.
func BuildTree(all []models.Category) []models.CategoryNode {
	byParent := make(map[string][]models.Category)
	for _, c := range all {
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}

	var build func(parent string) []models.CategoryNode
	build = func(parent string) []models.CategoryNode {
		var nodes []models.CategoryNode
		for _, c := range byParent[parent] {
			nodes = append(nodes, models.CategoryNode{Category: c, Subs: build(c.CategoryID)})
		}
		return nodes
	}

	roots := build("")
	if roots == nil {
		roots = []models.CategoryNode{}
	}
	return roots
}

// CreateCategory is the admin write path. When a parent is given, the
// parent's denormalized children list is updated in the same request, since
// the database does not maintain it.
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var cat models.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category payload")
		return
	}
	if cat.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	cat.CategoryID = utils.GetUUID()
	if cat.Slug == "" {
		cat.Slug = utils.Slugify(cat.Name)
	}
	cat.CreatedAt = time.Now()

	if cat.ParentID != "" {
		var parent models.Category
		if err := db.CategoryCollection.FindOne(ctx, bson.M{"categoryId": cat.ParentID}).Decode(&parent); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Parent category not found")
			return
		}
		cat.Level = parent.Level + 1
		if parent.Path != "" {
			cat.Path = parent.Path + "," + parent.CategoryID
		} else {
			cat.Path = parent.CategoryID
		}
	}

	if _, err := db.CategoryCollection.InsertOne(ctx, cat); err != nil {
		log.Println("CreateCategory InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Category creation failed")
		return
	}

	if cat.ParentID != "" {
		_, err := db.CategoryCollection.UpdateOne(ctx,
			bson.M{"categoryId": cat.ParentID},
			bson.M{"$addToSet": bson.M{"children": cat.CategoryID}})
		if err != nil {
			log.Println("CreateCategory parent update error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to link parent category")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "category": cat})
}
