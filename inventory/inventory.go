package inventory

import (
	"context"
	"fmt"

	"maison/apperr"
	"maison/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seed upserts the ledger entry for a SKU with its opening stock.
func Seed(ctx context.Context, sku string, stock int) error {
	opts := options.Update().SetUpsert(true)
	_, err := db.InventoryCollection.UpdateOne(ctx,
		bson.M{"sku": sku},
		bson.M{
			"$setOnInsert": bson.M{"reservedStock": 0},
			"$set":         bson.M{"availableStock": stock},
		}, opts)
	return err
}

// Reserve moves qty units from available to reserved in one conditional
// update; it fails without mutating anything when stock is short.
func Reserve(ctx context.Context, sku string, qty int) error {
	if qty < 1 {
		return apperr.Validation("reserve quantity must be at least 1")
	}
	res, err := db.InventoryCollection.UpdateOne(ctx,
		bson.M{"sku": sku, "availableStock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"availableStock": -qty, "reservedStock": qty}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.Conflict(fmt.Sprintf("insufficient stock for sku %s", sku))
	}
	return nil
}

// Release returns reserved units to the available pool, capped at what is
// actually reserved.
func Release(ctx context.Context, sku string, qty int) error {
	if qty < 1 {
		return apperr.Validation("release quantity must be at least 1")
	}
	res, err := db.InventoryCollection.UpdateOne(ctx,
		bson.M{"sku": sku, "reservedStock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"availableStock": qty, "reservedStock": -qty}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.Conflict(fmt.Sprintf("nothing reserved for sku %s", sku))
	}
	return nil
}

// Commit consumes a reservation after delivery handoff; the units leave the
// ledger entirely.
func Commit(ctx context.Context, sku string, qty int) error {
	if qty < 1 {
		return apperr.Validation("commit quantity must be at least 1")
	}
	res, err := db.InventoryCollection.UpdateOne(ctx,
		bson.M{"sku": sku, "reservedStock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"reservedStock": -qty}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.Conflict(fmt.Sprintf("nothing reserved for sku %s", sku))
	}
	return nil
}
