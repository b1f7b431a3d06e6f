package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	ProductCollection   *mongo.Collection
	CategoryCollection  *mongo.Collection
	OrderCollection     *mongo.Collection
	PaymentCollection   *mongo.Collection
	CartCollection      *mongo.Collection
	InventoryCollection *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ClientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), ClientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "maisondb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ProductCollection = Client.Database(dbName).Collection("products")
	CategoryCollection = Client.Database(dbName).Collection("categories")
	OrderCollection = Client.Database(dbName).Collection("orders")
	PaymentCollection = Client.Database(dbName).Collection("payments")
	CartCollection = Client.Database(dbName).Collection("carts")
	InventoryCollection = Client.Database(dbName).Collection("inventory")
}
